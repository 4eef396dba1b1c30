package mockapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/psds-microservice/suptec-client/internal/config"
	"github.com/psds-microservice/suptec-client/internal/database"
	"github.com/psds-microservice/suptec-client/internal/logging"
)

// Server — HTTP-сервер заглушки (suptec mock-api).
type Server struct {
	cfg     *config.Config
	httpSrv *http.Server
	log     *slog.Logger
}

// OpenStore выбирает хранилище по MOCK_STORE. Для postgres применяет
// миграции перед подключением.
func OpenStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (Store, error) {
	switch cfg.MockAPI.Store {
	case "postgres":
		if err := database.MigrateUp(ctx, cfg.DatabaseURL(), log); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		db, err := database.Open(cfg.DSN())
		if err != nil {
			return nil, fmt.Errorf("database: %w", err)
		}
		return NewGormStore(db), nil
	default:
		return NewMemoryStore(), nil
	}
}

// New создаёт сервер; store уже открыт (см. OpenStore).
func New(ctx context.Context, cfg *config.Config, store Store, log *slog.Logger) (*Server, error) {
	if err := cfg.ValidateMockAPI(); err != nil {
		return nil, err
	}
	log = logging.Component(log, "mock_api")
	if cfg.MockAPI.Seed {
		if err := Seed(ctx, store, time.Now()); err != nil {
			return nil, err
		}
	}
	tokens := NewTokens(cfg.MockAPI.JWTSecret, cfg.API.NameClaim)
	h := NewHandler(store, tokens, log)

	httpSrv := &http.Server{
		Addr:              cfg.MockAPIAddr(),
		Handler:           NewRouter(h, tokens, log),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return &Server{cfg: cfg, httpSrv: httpSrv, log: log}, nil
}

// Run слушает порт и блокируется до отмены ctx.
func (s *Server) Run(ctx context.Context) error {
	host := s.cfg.MockAPI.Host
	if host == "0.0.0.0" || host == "" {
		host = "localhost"
	}
	base := "http://" + host + ":" + s.cfg.MockAPI.Port
	s.log.Info("mock api listening",
		"addr", s.httpSrv.Addr,
		"api", base+APIPrefix+"/",
		"swagger", base+PathSwagger,
		"health", base+PathHealth,
		"store", s.cfg.MockAPI.Store)
	if s.cfg.MockAPI.Seed {
		s.log.Info("seeded manager", "email", SeedManagerEmail, "password", SeedManagerPassword)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

// Handler — корневой http.Handler (для httptest).
func (s *Server) Handler() http.Handler { return s.httpSrv.Handler }

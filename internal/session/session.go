package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"

	"github.com/psds-microservice/suptec-client/internal/apiclient"
	"github.com/psds-microservice/suptec-client/internal/logging"
)

const (
	DefaultLoginEndpoint = "AuthDesktop/LoginDesktop"
	DefaultNameClaim     = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/name"
	// Placeholder — имя и e-mail, когда сессии нет.
	Placeholder = "Usuário"
)

type Options struct {
	LoginEndpoint string
	NameClaim     string
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"senha"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Session хранит токен и данные вошедшего менеджера. Создаётся явно и
// передаётся сервисам; безопасна для конкурентного использования.
type Session struct {
	api           apiclient.Doer
	loginEndpoint string
	nameClaim     string
	log           *slog.Logger

	mu         sync.RWMutex
	token      string
	email      string
	name       string
	lastStatus int
}

func New(api apiclient.Doer, opts Options, log *slog.Logger) *Session {
	if opts.LoginEndpoint == "" {
		opts.LoginEndpoint = DefaultLoginEndpoint
	}
	if opts.NameClaim == "" {
		opts.NameClaim = DefaultNameClaim
	}
	return &Session{
		api:           api,
		loginEndpoint: opts.LoginEndpoint,
		nameClaim:     opts.NameClaim,
		log:           logging.Component(log, "session"),
	}
}

// Login проверяет учётные данные менеджера. При неудаче состояние сессии
// не меняется.
func (s *Session) Login(ctx context.Context, email, password string) bool {
	body, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		s.log.Error("marshal login request", "error", err)
		return false
	}
	resp := s.api.Do(ctx, http.MethodPost, s.loginEndpoint, body, "")

	s.mu.Lock()
	s.lastStatus = resp.StatusCode
	s.mu.Unlock()

	switch {
	case resp.TransportFailed():
		s.log.Warn("login: api unreachable")
		return false
	case !resp.OK():
		s.log.Warn("login rejected", "status", resp.StatusCode)
		return false
	case len(strings.TrimSpace(string(resp.Body))) == 0:
		s.log.Warn("login: empty response body")
		return false
	}

	var lr loginResponse
	if err := json.Unmarshal(resp.Body, &lr); err != nil || strings.TrimSpace(lr.Token) == "" {
		s.log.Warn("login: response has no token")
		return false
	}

	name := displayName(lr.Token, s.nameClaim, email)
	s.mu.Lock()
	s.token = lr.Token
	s.email = email
	s.name = name
	s.mu.Unlock()
	s.log.Info("login ok", "user", name)
	return true
}

func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.email, s.name = "", "", ""
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Email — e-mail вошедшего менеджера для показа; без сессии Placeholder.
func (s *Session) Email() string {
	if e := s.LoginEmail(); e != "" {
		return e
	}
	return Placeholder
}

// LoginEmail — e-mail, с которым выполнен вход, или пустая строка.
// Для сравнения с записями пользователей.
func (s *Session) LoginEmail() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.email
}

func (s *Session) DisplayName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.name == "" {
		return Placeholder
	}
	return s.name
}

func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// LastStatus — код ответа последней попытки входа (-1 — сервер недоступен).
func (s *Session) LastStatus() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastStatus
}

// displayName достаёт имя из полезной нагрузки токена без проверки подписи;
// иначе — локальная часть e-mail с заглавной буквы, иначе Placeholder.
func displayName(token, claim, email string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err == nil {
		for _, key := range []string{claim, "name"} {
			if v, ok := claims[key].(string); ok && strings.TrimSpace(v) != "" {
				return v
			}
		}
	}
	return nameFromEmail(email)
}

func nameFromEmail(email string) string {
	local, _, _ := strings.Cut(strings.TrimSpace(email), "@")
	if local == "" {
		return Placeholder
	}
	r, size := utf8.DecodeRuneInString(local)
	return string(unicode.ToUpper(r)) + local[size:]
}

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAPIBaseURL    = "http://localhost:5165/api/"
	DefaultAPITimeout    = 30 * time.Second
	DefaultLoginEndpoint = "AuthDesktop/LoginDesktop"
	// DefaultNameClaim — claim с именем пользователя в токенах ASP.NET Identity.
	DefaultNameClaim = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/name"
	DefaultFile      = "suptec.yaml"
)

type Config struct {
	AppEnv   string `yaml:"app_env"`
	LogLevel string `yaml:"log_level"`
	// LogFile — куда писать лог в режиме TUI (пусто — лог отключён).
	LogFile string `yaml:"log_file"`

	API struct {
		BaseURL       string        `yaml:"base_url"`
		Timeout       time.Duration `yaml:"timeout"`
		LoginEndpoint string        `yaml:"login_endpoint"`
		NameClaim     string        `yaml:"name_claim"`
	} `yaml:"api"`

	// MockAPI — локальная заглушка SUPTEC API для разработки (suptec mock-api).
	MockAPI struct {
		Host      string `yaml:"host"`
		Port      string `yaml:"port"`
		JWTSecret string `yaml:"jwt_secret"`
		// Store: memory | postgres
		Store string `yaml:"store"`
		Seed  bool   `yaml:"seed"`
	} `yaml:"mock_api"`

	DB struct {
		Host     string `yaml:"host"`
		Port     string `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Database string `yaml:"database"`
		SSLMode  string `yaml:"ssl_mode"`
	} `yaml:"db"`
}

// Load собирает конфигурацию: значения по умолчанию, затем YAML-файл
// (если есть), затем переменные окружения (в том числе из .env).
// path пустой — используется SUPTEC_CONFIG или suptec.yaml в текущем каталоге.
func Load(path string) (*Config, error) {
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	cfg := defaults()

	explicit := path != ""
	if path == "" {
		path = getEnv("SUPTEC_CONFIG", DefaultFile)
		explicit = os.Getenv("SUPTEC_CONFIG") != ""
	}
	if err := cfg.loadFile(path, explicit); err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.API.BaseURL = normalizeBaseURL(cfg.API.BaseURL)
	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{
		AppEnv:   "development",
		LogLevel: "info",
	}
	cfg.API.BaseURL = DefaultAPIBaseURL
	cfg.API.Timeout = DefaultAPITimeout
	cfg.API.LoginEndpoint = DefaultLoginEndpoint
	cfg.API.NameClaim = DefaultNameClaim
	cfg.MockAPI.Host = "0.0.0.0"
	cfg.MockAPI.Port = "5165"
	cfg.MockAPI.JWTSecret = "suptec-dev-secret"
	cfg.MockAPI.Store = "memory"
	cfg.MockAPI.Seed = true
	cfg.DB.Host = "localhost"
	cfg.DB.Port = "5432"
	cfg.DB.User = "postgres"
	cfg.DB.Password = "postgres"
	cfg.DB.Database = "suptec_mock"
	cfg.DB.SSLMode = "disable"
	return cfg
}

func (c *Config) loadFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.AppEnv = getEnv("APP_ENV", c.AppEnv)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFile = getEnv("SUPTEC_LOG_FILE", c.LogFile)

	c.API.BaseURL = firstEnv("SUPTEC_API_URL", "API_BASE_URL", c.API.BaseURL)
	if v := os.Getenv("SUPTEC_API_TIMEOUT"); v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			return fmt.Errorf("config: SUPTEC_API_TIMEOUT: %w", err)
		}
		c.API.Timeout = d
	}
	c.API.LoginEndpoint = getEnv("SUPTEC_LOGIN_ENDPOINT", c.API.LoginEndpoint)
	c.API.NameClaim = getEnv("SUPTEC_NAME_CLAIM", c.API.NameClaim)

	c.MockAPI.Host = getEnv("MOCK_API_HOST", c.MockAPI.Host)
	c.MockAPI.Port = firstEnv("MOCK_API_PORT", "APP_PORT", c.MockAPI.Port)
	c.MockAPI.JWTSecret = getEnv("MOCK_JWT_SECRET", c.MockAPI.JWTSecret)
	c.MockAPI.Store = getEnv("MOCK_STORE", c.MockAPI.Store)
	if v := os.Getenv("MOCK_SEED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: MOCK_SEED: %w", err)
		}
		c.MockAPI.Seed = b
	}

	c.DB.Host = getEnv("DB_HOST", c.DB.Host)
	c.DB.Port = getEnv("DB_PORT", c.DB.Port)
	c.DB.User = getEnv("DB_USER", c.DB.User)
	c.DB.Password = getEnv("DB_PASSWORD", c.DB.Password)
	c.DB.Database = getEnv("DB_DATABASE", c.DB.Database)
	c.DB.SSLMode = getEnv("DB_SSLMODE", c.DB.SSLMode)
	return nil
}

// parseTimeout принимает и "45s", и просто число секунд ("30"), как в
// application.properties исходного клиента.
func parseTimeout(v string) (time.Duration, error) {
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(v)
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config: invalid api base url %q", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return errors.New("config: api timeout must be positive")
	}
	if strings.TrimSpace(c.API.LoginEndpoint) == "" {
		return errors.New("config: login endpoint is required")
	}
	return nil
}

// ValidateMockAPI проверяет настройки заглушки API.
func (c *Config) ValidateMockAPI() error {
	switch c.MockAPI.Store {
	case "memory":
	case "postgres":
		if c.DB.Host == "" || c.DB.Database == "" {
			return errors.New("config: DB_HOST and DB_DATABASE are required")
		}
		if c.AppEnv == "production" && c.DB.Password == "" {
			return errors.New("config: in production DB_PASSWORD is required")
		}
	default:
		return fmt.Errorf("config: unknown MOCK_STORE %q (memory|postgres)", c.MockAPI.Store)
	}
	if c.MockAPI.JWTSecret == "" {
		return errors.New("config: MOCK_JWT_SECRET is required")
	}
	return nil
}

func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host, c.DB.Port, c.DB.User, c.DB.Password, c.DB.Database, c.DB.SSLMode)
}

func (c *Config) DatabaseURL() string {
	pass := url.QueryEscape(c.DB.Password)
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DB.User, pass, c.DB.Host, c.DB.Port, c.DB.Database, c.DB.SSLMode)
}

func (c *Config) MockAPIAddr() string {
	return c.MockAPI.Host + ":" + c.MockAPI.Port
}

func normalizeBaseURL(s string) string {
	s = strings.TrimSpace(s)
	if s != "" && !strings.HasSuffix(s, "/") {
		s += "/"
	}
	return s
}

func firstEnv(keysAndDef ...string) string {
	if len(keysAndDef) == 0 {
		return ""
	}
	def := keysAndDef[len(keysAndDef)-1]
	for _, k := range keysAndDef[:len(keysAndDef)-1] {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return def
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

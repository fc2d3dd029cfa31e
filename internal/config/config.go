package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Store    StoreConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Server   ServerConfig
	OAuth    OAuthConfig
	Render   RenderConfig
	Books    BooksConfig
}

// StoreConfig selects the document-store backend.
type StoreConfig struct {
	// Backend is "postgres" or "memory". The memory backend is for local
	// development only; it loses everything on restart.
	Backend string
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string //nolint:gosec // G117: DB connection config
	DBName   string
	SSLMode  string
	MaxConns int
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string
	Password string //nolint:gosec // G117: Redis connection config
	DB       int
}

// JWTConfig holds session token settings.
type JWTConfig struct {
	Secret     string //nolint:gosec // G117: JWT signing secret config
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CORSOrigins  []string
}

// OAuthConfig holds the Google identity-provider settings. Empty client id
// disables the OAuth login routes.
type OAuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

// RenderConfig holds PDF renderer settings.
type RenderConfig struct {
	// BrowserBin optionally pins the Chromium binary; empty lets the
	// renderer resolve one.
	BrowserBin string
	Timeout    time.Duration
}

// BooksConfig holds the bookkeeping policy switches.
type BooksConfig struct {
	// DeletePolicy is "block" (refuse deleting catalog entries that have
	// transaction history) or "unconditional".
	DeletePolicy string
	// ReferenceResolution is "allow-dangling" (sentinel substitution on
	// missing references) or "strict".
	ReferenceResolution string
}

// Load reads configuration from environment variables.
// Defaults are safe for local development only. In production,
// sensitive values (JWT secret, DB password) must be set explicitly.
func Load() (*Config, error) {
	dbPort, err := getEnvInt("CADERNO_DB_PORT", 5432)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	dbMaxConns, err := getEnvInt("CADERNO_DB_MAX_CONNS", 25)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	redisDB, err := getEnvInt("CADERNO_REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	accessTTL, err := getEnvDuration("CADERNO_JWT_ACCESS_TTL", 15*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	refreshTTL, err := getEnvDuration("CADERNO_JWT_REFRESH_TTL", 7*24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	readTimeout, err := getEnvDuration("CADERNO_SERVER_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	writeTimeout, err := getEnvDuration("CADERNO_SERVER_WRITE_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	renderTimeout, err := getEnvDuration("CADERNO_RENDER_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	corsOrigins := getEnvList("CADERNO_CORS_ORIGINS", []string{"http://localhost:5173"})

	cfg := &Config{
		Store: StoreConfig{
			Backend: getEnv("CADERNO_STORE", "postgres"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("CADERNO_DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("CADERNO_DB_USER", "caderno"),
			Password: getEnv("CADERNO_DB_PASSWORD", ""),
			DBName:   getEnv("CADERNO_DB_NAME", "caderno_dev"),
			SSLMode:  getEnv("CADERNO_DB_SSLMODE", "disable"),
			MaxConns: dbMaxConns,
		},
		Redis: RedisConfig{
			Addr:     getEnv("CADERNO_REDIS_ADDR", "localhost:6379"),
			Password: getEnv("CADERNO_REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		JWT: JWTConfig{
			Secret:     getEnv("CADERNO_JWT_SECRET", ""),
			AccessTTL:  accessTTL,
			RefreshTTL: refreshTTL,
		},
		Server: ServerConfig{
			Addr:         getEnv("CADERNO_SERVER_ADDR", ":8080"),
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			CORSOrigins:  corsOrigins,
		},
		OAuth: OAuthConfig{
			GoogleClientID:     getEnv("CADERNO_GOOGLE_CLIENT_ID", ""),
			GoogleClientSecret: getEnv("CADERNO_GOOGLE_CLIENT_SECRET", ""),
			GoogleRedirectURL:  getEnv("CADERNO_GOOGLE_REDIRECT_URL", ""),
		},
		Render: RenderConfig{
			BrowserBin: getEnv("CADERNO_RENDER_BROWSER_BIN", ""),
			Timeout:    renderTimeout,
		},
		Books: BooksConfig{
			DeletePolicy:        getEnv("CADERNO_DELETE_POLICY", "block"),
			ReferenceResolution: getEnv("CADERNO_REFERENCE_RESOLUTION", "allow-dangling"),
		},
	}

	err = cfg.validate()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	return cfg, nil
}

// validate checks required fields and value bounds.
func (c *Config) validate() error {
	// JWT secret is required (no insecure default).
	if c.JWT.Secret == "" {
		return errors.New("CADERNO_JWT_SECRET is required")
	}
	if len(c.JWT.Secret) < 32 {
		return errors.New("CADERNO_JWT_SECRET must be at least 32 characters")
	}

	switch c.Store.Backend {
	case "postgres", "memory":
	default:
		return fmt.Errorf("CADERNO_STORE must be postgres or memory, got %q", c.Store.Backend)
	}
	if c.Store.Backend == "memory" {
		log.Warn().Msg("CADERNO_STORE=memory loses all data on restart; development only")
	}

	switch c.Books.DeletePolicy {
	case "block", "unconditional":
	default:
		return fmt.Errorf("CADERNO_DELETE_POLICY must be block or unconditional, got %q", c.Books.DeletePolicy)
	}
	switch c.Books.ReferenceResolution {
	case "allow-dangling", "strict":
	default:
		return fmt.Errorf("CADERNO_REFERENCE_RESOLUTION must be allow-dangling or strict, got %q", c.Books.ReferenceResolution)
	}

	// Bounds checks.
	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("CADERNO_DB_PORT must be 1-65535, got %d", c.Database.Port)
	}
	if c.Database.MaxConns < 1 {
		return fmt.Errorf("CADERNO_DB_MAX_CONNS must be >= 1, got %d", c.Database.MaxConns)
	}
	if c.JWT.AccessTTL <= 0 {
		return fmt.Errorf("CADERNO_JWT_ACCESS_TTL must be positive, got %s", c.JWT.AccessTTL)
	}
	if c.JWT.RefreshTTL <= 0 {
		return fmt.Errorf("CADERNO_JWT_REFRESH_TTL must be positive, got %s", c.JWT.RefreshTTL)
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("CADERNO_SERVER_READ_TIMEOUT must be positive, got %s", c.Server.ReadTimeout)
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("CADERNO_SERVER_WRITE_TIMEOUT must be positive, got %s", c.Server.WriteTimeout)
	}
	if c.Render.Timeout <= 0 {
		return fmt.Errorf("CADERNO_RENDER_TIMEOUT must be positive, got %s", c.Render.Timeout)
	}

	return nil
}

// DSN returns the PostgreSQL connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as int: %w", key, v, err)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as duration: %w", key, v, err)
	}
	return d, nil
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	// Environment
	GoEnv string `env:"GO_ENV" envDefault:"development"`

	// HTTP
	HTTPHost        string        `env:"HTTP_HOST" envDefault:"127.0.0.1"`
	HTTPPort        int           `env:"HTTP_PORT" envDefault:"8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	CORSOrigins     []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	CookieSecure    bool          `env:"COOKIE_SECURE" envDefault:"false"`

	// Database
	DBDriver    string `env:"DB_DRIVER" envDefault:"postgres"`
	DatabaseURL string `env:"DATABASE_URL" envDefault:"host=localhost user=editorial password=editorial dbname=editorial port=5432 sslmode=disable"`

	// Authentication
	JWTSecret  string        `env:"JWT_SECRET,required,notEmpty"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// Redis session store, empty URL keeps sessions in memory
	RedisURL      string `env:"REDIS_URL"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	// File Storage
	MediaRoot      string `env:"MEDIA_ROOT" envDefault:"./media"`
	UploadMaxBytes int64  `env:"UPLOAD_MAX_BYTES" envDefault:"10485760"`

	// Rate limiting for login, register and contact
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"1"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"5"`

	// Mail
	SMTPHost          string   `env:"SMTP_HOST"`
	SMTPPort          int      `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser          string   `env:"SMTP_USER"`
	SMTPPass          string   `env:"SMTP_PASS"`
	SMTPFrom          string   `env:"SMTP_FROM"`
	SMTPSkipTLSVerify bool     `env:"SMTP_SKIP_TLS_VERIFY" envDefault:"false"`
	AdminNotifyEmails []string `env:"ADMIN_NOTIFY_EMAILS" envSeparator:","`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// LoadConfig loads configuration from the optional .env file and the process environment.
func LoadConfig() (*Config, error) {
	// a missing .env is fine, the process environment still applies
	_ = godotenv.Load(".env")

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	for i, origin := range cfg.CORSOrigins {
		cfg.CORSOrigins[i] = strings.TrimSpace(origin)
	}
	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	return &cfg, nil
}

// Validate performs validation on the loaded configuration
func (c *Config) Validate() error {
	var errors []string

	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		errors = append(errors, "HTTP_PORT must be between 1 and 65535")
	}

	validDrivers := []string{"postgres", "mysql", "sqlite"}
	if !slices.Contains(validDrivers, c.DBDriver) {
		errors = append(errors, fmt.Sprintf("DB_DRIVER must be one of: %s", strings.Join(validDrivers, ", ")))
	}
	if c.DatabaseURL == "" {
		errors = append(errors, "DATABASE_URL is required")
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLogLevels, c.LogLevel) {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: %s", strings.Join(validLogLevels, ", ")))
	}

	validLogFormats := []string{"text", "json"}
	if !slices.Contains(validLogFormats, c.LogFormat) {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be one of: %s", strings.Join(validLogFormats, ", ")))
	}

	// HS256 needs a reasonably long secret
	if len(c.JWTSecret) < 32 {
		errors = append(errors, "JWT_SECRET should be at least 32 characters long")
	}
	if c.SessionTTL <= 0 {
		errors = append(errors, "SESSION_TTL must be positive")
	}

	if c.MediaRoot == "" {
		errors = append(errors, "MEDIA_ROOT is required")
	}
	if c.UploadMaxBytes <= 0 {
		errors = append(errors, "UPLOAD_MAX_BYTES must be positive")
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst < 1 {
		errors = append(errors, "RATE_LIMIT_RPS must be positive and RATE_LIMIT_BURST at least 1")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errors, "; "))
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// MailEnabled reports whether enough SMTP settings are present to send mail.
func (c *Config) MailEnabled() bool {
	return c.SMTPHost != "" && c.SMTPFrom != ""
}

// HTTPAddr returns the listen address of the API server.
func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.HTTPHost, c.HTTPPort)
}

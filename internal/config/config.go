// Package config reads the service settings from the environment, loading a
// local .env file first when one exists.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

type StoreKind string

const (
	StorePostgres StoreKind = "postgres"
	StoreMongo    StoreKind = "mongo"
)

type Config struct {
	Port string `env:"PORT,default=5000"`

	DatabaseURL   string `env:"DATABASE_URL,required"`
	MongoDatabase string `env:"MONGO_DATABASE,default=leadmail"`

	JWTSecret string        `env:"JWT_SECRET,required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,default=1h"`

	Mail       MailConfig
	Generation GenerationConfig

	NotificationDelay       time.Duration `env:"NOTIFICATION_DELAY,default=30s"`
	StaleNotificationAfter  time.Duration `env:"STALE_NOTIFICATION_AFTER,default=10m"`
	PublicBaseURL           string        `env:"PUBLIC_BASE_URL,default=http://localhost:5000"`
	ConfirmationRedirectURL string        `env:"CONFIRMATION_REDIRECT_URL"`

	Admin AdminConfig

	RabbitMQURL          string `env:"RABBITMQ_URL"`
	RedisURL             string `env:"REDIS_URL"`
	InboundWebhookSecret string `env:"INBOUND_WEBHOOK_SECRET"`

	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS,default=*"`

	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=json"`
}

type MailConfig struct {
	Host     string `env:"MAIL_HOST"`
	Port     int    `env:"MAIL_PORT,default=587"`
	User     string `env:"MAIL_USER"`
	Password string `env:"MAIL_PASS"`
	From     string `env:"MAIL_FROM"`
}

type GenerationConfig struct {
	APIKey   string        `env:"GENERATION_API_KEY,required"`
	BaseURL  string        `env:"GENERATION_URL,default=https://generativelanguage.googleapis.com/v1beta"`
	Model    string        `env:"GENERATION_MODEL,default=gemini-1.5-flash"`
	Attempts int           `env:"GENERATION_ATTEMPTS,default=3"`
	Backoff  time.Duration `env:"GENERATION_BACKOFF,default=1s"`
}

type AdminConfig struct {
	Name     string `env:"ADMIN_NAME,default=Admin"`
	Email    string `env:"ADMIN_EMAIL"`
	Password string `env:"ADMIN_PASSWORD"`
}

// Load reads .env (if any) and decodes the environment into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := envdecode.StrictDecode(&cfg); err != nil {
		return nil, fmt.Errorf("decode environment: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return errors.New("JWT_SECRET must not be blank")
	}
	if _, err := c.Store(); err != nil {
		return err
	}
	if c.Generation.Attempts < 1 {
		return fmt.Errorf("GENERATION_ATTEMPTS must be at least 1, got %d", c.Generation.Attempts)
	}
	if c.Generation.Backoff < 0 || c.NotificationDelay < 0 {
		return errors.New("GENERATION_BACKOFF and NOTIFICATION_DELAY must not be negative")
	}

	base, err := url.Parse(c.PublicBaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return fmt.Errorf("PUBLIC_BASE_URL %q is not an absolute URL", c.PublicBaseURL)
	}
	c.PublicBaseURL = strings.TrimRight(c.PublicBaseURL, "/")
	if c.ConfirmationRedirectURL == "" {
		c.ConfirmationRedirectURL = c.PublicBaseURL + "/interest-confirmed"
	}
	if (c.Admin.Email == "") != (c.Admin.Password == "") {
		return errors.New("ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}
	if c.Mail.From == "" {
		c.Mail.From = c.Mail.User
	}
	if !strings.HasPrefix(c.Port, ":") {
		c.Port = ":" + c.Port
	}
	return nil
}

// Store picks the repository backend from the DATABASE_URL scheme.
func (c *Config) Store() (StoreKind, error) {
	switch {
	case strings.HasPrefix(c.DatabaseURL, "postgres://"), strings.HasPrefix(c.DatabaseURL, "postgresql://"):
		return StorePostgres, nil
	case strings.HasPrefix(c.DatabaseURL, "mongodb://"), strings.HasPrefix(c.DatabaseURL, "mongodb+srv://"):
		return StoreMongo, nil
	default:
		return "", fmt.Errorf("DATABASE_URL must start with postgres:// or mongodb://")
	}
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS on commas.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// AdminConfigured reports whether an admin account should be seeded. Without
// one, every admin-only route answers 403.
func (c *Config) AdminConfigured() bool {
	return c.Admin.Email != "" && c.Admin.Password != ""
}

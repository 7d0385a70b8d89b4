package config

import (
	"fmt"
	"strings"
	"time"

	"worldforge-server/internal/utils"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
)

// Config holds every runtime setting of the server. Plain values come
// from the environment; credentials come from Docker secrets.
type Config struct {
	Env         string `envconfig:"ENV" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogEncoding string `envconfig:"LOG_ENCODING" default:"json"`
	ServerPort  string `envconfig:"SERVER_PORT" default:"8080"`

	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"-"`
	DBName     string `envconfig:"DB_NAME" default:"worldforge"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"-"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	JWTSecret       string        `envconfig:"-"`
	AccessTokenTTL  time.Duration `envconfig:"ACCESS_TOKEN_TTL" default:"168h"`
	RefreshTokenTTL time.Duration `envconfig:"REFRESH_TOKEN_TTL" default:"720h"`

	IdentityProviderURL string `envconfig:"IDENTITY_PROVIDER_URL" required:"true"`
	IdentityServiceKey  string `envconfig:"-"`

	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

// Load reads the configuration from the environment and the secrets
// store. A missing .env file is fine outside development.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		zap.L().Debug("No .env file found, relying on process environment")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	var err error
	if cfg.DBPassword, err = utils.ReadSecret("db_password"); err != nil {
		return nil, fmt.Errorf("failed to load database password: %w", err)
	}
	if cfg.JWTSecret, err = utils.ReadSecret("jwt_secret"); err != nil {
		return nil, fmt.Errorf("failed to load JWT secret: %w", err)
	}
	if cfg.IdentityServiceKey, err = utils.ReadSecret("identity_service_key"); err != nil {
		return nil, fmt.Errorf("failed to load identity service key: %w", err)
	}
	// Redis auth is optional in development setups.
	if password, err := utils.ReadSecret("redis_password"); err == nil {
		cfg.RedisPassword = password
	}

	return &cfg, nil
}

// DatabaseDSN renders the Postgres connection string.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// GetAllowedOrigins splits the configured CORS origin list.
func (c *Config) GetAllowedOrigins() []string {
	parts := strings.Split(c.CORSAllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if origin := strings.TrimSpace(part); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	return strings.ToLower(c.Env) != "production"
}

// Package config loads service settings from the environment.
package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=5000"`
	Env      string `env:"ENV,       default=production"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWT      JWTConfig
	Database DatabaseConfig
	Redis    RedisConfig
	OMDb     OMDbConfig
	HTTP     HTTPConfig
}

type JWTConfig struct {
	Secret       string        `env:"JWT_SECRET_KEY, required"`
	AccessTTL    time.Duration `env:"JWT_ACCESS_TOKEN_TTL, default=15m"`
	CookieName   string        `env:"JWT_COOKIE_NAME, default=access_token_cookie"`
	CookieSecure bool          `env:"JWT_COOKIE_SECURE, default=true"`
}

type DatabaseConfig struct {
	URL     string `env:"DATABASE_URL, default=sqlite://movieverse.db"`
	MongoDB string `env:"MONGO_DB,     default=movieverse"`
}

// RedisConfig is optional; an empty address selects the in-memory rate limiter.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

type OMDbConfig struct {
	APIKey  string        `env:"OMDB_API_KEY, required"`
	BaseURL string        `env:"OMDB_BASE_URL, default=http://www.omdbapi.com/"`
	Timeout time.Duration `env:"OMDB_TIMEOUT, default=10s"`
}

type HTTPConfig struct {
	CORSOrigins      []string `env:"CORS_ORIGINS, default=*"`
	RateLimitEnabled bool     `env:"RATE_LIMIT_ENABLED, default=true"`
}

// Load reads configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration from an arbitrary lookuper. Tests use
// envconfig.MapLookuper.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// IsDevelopment reports whether human-friendly logs should be used.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func (c *Config) validate() error {
	if c.JWT.AccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TOKEN_TTL must be positive")
	}
	if c.OMDb.Timeout <= 0 {
		return fmt.Errorf("OMDB_TIMEOUT must be positive")
	}
	return nil
}

// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the server.
type Config struct {
	AppAddr         string        `envconfig:"APP_ADDR" default:":8080"`
	AppReadTimeout  time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	DBPath string `envconfig:"DB_PATH" default:"./data/dahira.db"`

	// CacheTTL bounds how long a cached collection is served; 0 means until the next write.
	CacheTTL time.Duration `envconfig:"CACHE_TTL" default:"0s"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"24h"`

	// LoginRateLimit is the number of login attempts allowed per IP per minute.
	LoginRateLimit int `envconfig:"LOGIN_RATE_LIMIT" default:"10"`

	// GotenbergURL enables PDF reports when set.
	GotenbergURL string `envconfig:"GOTENBERG_URL"`

	// ArchiveCode and ResetCode seed the security codes on first start.
	ArchiveCode string `envconfig:"ARCHIVE_CODE"`
	ResetCode   string `envconfig:"RESET_CODE"`

	SeedDemoUsers bool `envconfig:"SEED_DEMO_USERS" default:"true"`

	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings envconfig cannot express.
func (c *Config) Validate() error {
	if len(c.JWTSecret) < 16 {
		return errors.New("jwt secret must be at least 16 characters")
	}
	if c.TokenTTL <= 0 {
		return errors.New("token ttl must be positive")
	}
	if c.LoginRateLimit <= 0 {
		return errors.New("login rate limit must be positive")
	}
	switch strings.ToLower(c.LogFormat) {
	case "pretty", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}

// PDFEnabled reports whether a Gotenberg endpoint is configured.
func (c *Config) PDFEnabled() bool {
	return c != nil && c.GotenbergURL != ""
}

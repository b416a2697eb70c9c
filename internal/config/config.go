package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port string `env:"PORT" envDefault:"8080"`
	Env  string `env:"ENV" envDefault:"development"`

	// Empty disables the metrics listener.
	MetricsAddr string `env:"METRICS_ADDR"`

	RedisURL  string `env:"REDIS_URL"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	RateLimitPerMinute int `env:"RATE_LIMIT_PER_MINUTE" envDefault:"0"`
	RateLimitBurst     int `env:"RATE_LIMIT_BURST" envDefault:"10"`

	RNGSource       string        `env:"RNG_SOURCE" envDefault:"crypto"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads an optional .env file and then parses the process environment.
// Variables already set in the environment win over the file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must not be negative, got %d", c.RateLimitPerMinute)
	}
	if c.RateLimitPerMinute > 0 && c.RateLimitBurst < 1 {
		return fmt.Errorf("RATE_LIMIT_BURST must be at least 1 when rate limiting is enabled")
	}

	switch c.RNGSource {
	case "crypto", "fast":
	default:
		return fmt.Errorf("invalid RNG_SOURCE: %s", c.RNGSource)
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) RateLimitEnabled() bool {
	return c.RateLimitPerMinute > 0
}

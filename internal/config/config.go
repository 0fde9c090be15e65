// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the root configuration. The two signing secrets are required and
// must differ; they are handed to the token codec at construction time and
// never read again.
type Config struct {
	Addr string `env:"SHOWCASE_ADDR" envDefault:":8080"`

	// Empty DSN runs the server on the in-memory stores.
	PostgresDSN string `env:"SHOWCASE_PG_DSN"`

	AccessSecret  string        `env:"SHOWCASE_ACCESS_SECRET,required"`
	RefreshSecret string        `env:"SHOWCASE_REFRESH_SECRET,required"`
	AccessTTL     time.Duration `env:"SHOWCASE_ACCESS_TTL" envDefault:"1h"`
	RefreshTTL    time.Duration `env:"SHOWCASE_REFRESH_TTL" envDefault:"168h"`

	CORSOrigins []string `env:"SHOWCASE_CORS_ORIGINS" envSeparator:","`

	RateBurst  int `env:"SHOWCASE_RATE_BURST" envDefault:"20"`
	RatePerSec int `env:"SHOWCASE_RATE_PER_SEC" envDefault:"10"`

	MaxBodyBytes int64 `env:"SHOWCASE_MAX_BODY_BYTES" envDefault:"10240"`
}

// Load parses configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		return Config{}, fmt.Errorf("access and refresh secrets must differ")
	}
	return cfg, nil
}

package server

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the gateway settings, read from RECIPEBOXD_* variables.
type Config struct {
	Addr            string        `env:"ADDR"             envDefault:":8080"`
	DBPath          string        `env:"DB"               envDefault:"recipebox.db"`
	UploadDir       string        `env:"UPLOAD_DIR"       envDefault:"uploads"`
	AllowedOrigins  []string      `env:"ALLOWED_ORIGINS"  envDefault:"*" envSeparator:","`
	RateRPS         float64       `env:"RATE_RPS"         envDefault:"20"`
	RateBurst       int           `env:"RATE_BURST"       envDefault:"40"`
	MaxUploadMB     int64         `env:"MAX_UPLOAD_MB"    envDefault:"8"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT"  envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	Debug           bool          `env:"DEBUG"            envDefault:"false"`
}

const envPrefix = "RECIPEBOXD_"

// LoadConfig parses the process environment.
func LoadConfig() (Config, error) {
	return parseConfig(env.Options{Prefix: envPrefix})
}

// LoadConfigFrom parses vars instead of the process environment.
func LoadConfigFrom(vars map[string]string) (Config, error) {
	return parseConfig(env.Options{Prefix: envPrefix, Environment: vars})
}

func parseConfig(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}
	if cfg.RateRPS <= 0 || cfg.RateBurst <= 0 {
		return Config{}, fmt.Errorf("config: rate limit must be positive (rps=%v burst=%d)", cfg.RateRPS, cfg.RateBurst)
	}
	if cfg.MaxUploadMB <= 0 {
		return Config{}, fmt.Errorf("config: max upload size must be positive, got %d", cfg.MaxUploadMB)
	}
	return cfg, nil
}

func (c Config) maxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

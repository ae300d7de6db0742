package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"recipebox/internal/recipe"
)

// DefaultAPIOrigin is used when no origin is configured anywhere.
const DefaultAPIOrigin = "http://localhost:8080"

// Config holds CLI configuration.
type Config struct {
	APIOrigin   string        `env:"API"`
	RecipesPath string        `env:"RECIPES_PATH" envDefault:"/recipes"`
	UploadPath  string        `env:"UPLOAD_PATH"  envDefault:"/upload"`
	Timeout     time.Duration `env:"TIMEOUT"      envDefault:"10s"`
	ConfigDir   string        `env:"CONFIG_DIR"`
	LogPath     string        `env:"LOG"`
	Debug       bool          `env:"DEBUG"`
	ShowVersion bool
	Version     string
}

// ErrVersionRequested is returned after -version printed the version.
var ErrVersionRequested = errors.New("version requested")

// ParseFlags loads .env files, the RECIPEBOX_* environment and the command
// line, then runs first-run onboarding if no API origin was configured.
func ParseFlags(version string) (*Config, error) {
	// .env never overrides variables that are already set.
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	config, err := parse(flag.CommandLine, os.Args[1:], env.Options{Prefix: "RECIPEBOX_"})
	if err != nil {
		return nil, err
	}
	config.Version = version
	if config.ShowVersion {
		fmt.Fprintf(os.Stdout, "recipebox %s\n", version)
		return config, ErrVersionRequested
	}

	if err := os.MkdirAll(config.ConfigDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	settings, err := loadOnboardingSettings(config.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load onboarding settings: %w", err)
	}

	if config.APIOrigin == "" && shouldRunOnboarding(settings) {
		settings, err = runOnboarding(config.ConfigDir)
		if err != nil {
			return nil, fmt.Errorf("failed to run onboarding: %w", err)
		}
	}
	config.applySettings(settings)

	return config, nil
}

// parse reads the environment through opts and then the flags in args, which
// take precedence.
func parse(fs *flag.FlagSet, args []string, opts env.Options) (*Config, error) {
	config := &Config{}
	if err := env.ParseWithOptions(config, opts); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	fs.StringVar(&config.APIOrigin, "api", config.APIOrigin, "Recipe API origin (default "+DefaultAPIOrigin+", or set RECIPEBOX_API)")
	fs.StringVar(&config.RecipesPath, "recipes-path", config.RecipesPath, "Path of the recipes endpoint")
	fs.StringVar(&config.UploadPath, "upload-path", config.UploadPath, "Path of the image upload endpoint")
	fs.DurationVar(&config.Timeout, "timeout", config.Timeout, "Timeout of each API request")
	fs.StringVar(&config.ConfigDir, "config-dir", config.ConfigDir, "Directory for settings and logs (default: ~/.recipebox)")
	fs.StringVar(&config.LogPath, "log", config.LogPath, "Log file path (default: <config-dir>/recipebox.log)")
	fs.BoolVar(&config.Debug, "debug", config.Debug, "Log at debug level")
	fs.BoolVar(&config.ShowVersion, "version", false, "Print the version and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	config.APIOrigin = strings.TrimSuffix(strings.TrimSpace(config.APIOrigin), "/")
	if config.APIOrigin != "" && !recipe.IsValidURL(config.APIOrigin) {
		return nil, fmt.Errorf("invalid API origin %q: want scheme://host[:port]", config.APIOrigin)
	}
	if config.Timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive, got %s", config.Timeout)
	}

	if config.ConfigDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		config.ConfigDir = filepath.Join(home, ".recipebox")
	}
	if config.LogPath == "" {
		config.LogPath = filepath.Join(config.ConfigDir, "recipebox.log")
	}

	return config, nil
}

func (c *Config) applySettings(settings OnboardingSettings) {
	if c.APIOrigin == "" {
		c.APIOrigin = strings.TrimSuffix(settings.APIOrigin, "/")
	}
	if c.APIOrigin == "" {
		c.APIOrigin = DefaultAPIOrigin
	}
}

// OpenLog opens the log file for appending.
func (c *Config) OpenLog() (io.WriteCloser, error) {
	if err := os.MkdirAll(filepath.Dir(c.LogPath), 0700); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(c.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

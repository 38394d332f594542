// SPDX-License-Identifier: MIT

// Package config reads rowtrace settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/katalvlaran/rowtrace/elimination"
	"github.com/katalvlaran/rowtrace/notation"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the process configuration. Every field maps to one
// ROWTRACE_* variable.
type Config struct {
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat        string        `env:"LOG_FORMAT" envDefault:"console"`
	DBPath           string        `env:"DB_PATH" envDefault:"rowtrace.db"`
	SessionCacheSize int           `env:"SESSION_CACHE_SIZE" envDefault:"128"`
	PartialPivoting  bool          `env:"PARTIAL_PIVOTING" envDefault:"true"`
	Mode             string        `env:"MODE" envDefault:"RREF"`
	Locale           string        `env:"LOCALE" envDefault:"en"`
	MetricsAddr      string        `env:"METRICS_ADDR"`
	PlaybackInterval time.Duration `env:"PLAYBACK_INTERVAL" envDefault:"800ms"`
}

// Prefix is prepended to every variable name.
const Prefix = "ROWTRACE_"

// Load reads the .env files (missing files are skipped, set variables win)
// and parses the environment into a validated Config.
func Load(dotenv ...string) (Config, error) {
	if err := loadDotenv(dotenv); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: Prefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func loadDotenv(files []string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	if err := godotenv.Load(present...); err != nil {
		return fmt.Errorf("load dotenv: %w", err)
	}

	return nil
}

// Validate checks every field.
func (c Config) Validate() error {
	var errs []error
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("%w: log level %q", ErrInvalid, c.LogLevel))
	}
	switch strings.ToLower(strings.TrimSpace(c.LogFormat)) {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("%w: log format %q", ErrInvalid, c.LogFormat))
	}
	if strings.TrimSpace(c.DBPath) == "" {
		errs = append(errs, fmt.Errorf("%w: db path is empty", ErrInvalid))
	}
	if c.SessionCacheSize < 1 {
		errs = append(errs, fmt.Errorf("%w: session cache size %d", ErrInvalid, c.SessionCacheSize))
	}
	if _, err := elimination.ParseMode(c.Mode); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalid, err))
	}
	if _, err := notation.ParseLocale(c.Locale); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalid, err))
	}
	if c.PlaybackInterval <= 0 {
		errs = append(errs, fmt.Errorf("%w: playback interval %s", ErrInvalid, c.PlaybackInterval))
	}

	return errors.Join(errs...)
}

// EliminationConfig returns the elimination settings. Call after Validate.
func (c Config) EliminationConfig() elimination.Config {
	mode, _ := elimination.ParseMode(c.Mode)

	return elimination.Config{PartialPivoting: c.PartialPivoting, Mode: mode}
}

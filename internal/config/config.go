// Package config loads application settings from defaults, an optional .env
// file and SCREENTIME_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const (
	EnvPrefix = "SCREENTIME_"

	DefaultDatasetURL   = "https://raw.githubusercontent.com/kjahanvi/indian-kids-screentime-2025/main/indian_kids_screentime_2025.csv"
	DefaultFetchTimeout = 30 * time.Second
	DefaultWindowWidth  = 600
	DefaultWindowHeight = 400
)

type Config struct {
	Dataset DatasetConfig `koanf:"dataset"`
	Fetch   FetchConfig   `koanf:"fetch"`
	Log     LogConfig     `koanf:"log"`
	Window  WindowConfig  `koanf:"window"`
}

type DatasetConfig struct {
	URL string `koanf:"url"`
}

type FetchConfig struct {
	Timeout time.Duration `koanf:"timeout"`
}

type LogConfig struct {
	Level string `koanf:"level"`
	JSON  bool   `koanf:"json"`
}

type WindowConfig struct {
	Width  float32 `koanf:"width"`
	Height float32 `koanf:"height"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"dataset.url":   DefaultDatasetURL,
		"fetch.timeout": DefaultFetchTimeout.String(),
		"log.level":     "info",
		"log.json":      false,
		"window.width":  DefaultWindowWidth,
		"window.height": DefaultWindowHeight,
	}
}

// Load builds the configuration. dotenvFiles are read in order before the
// environment is consulted; files that do not exist are skipped.
func Load(dotenvFiles ...string) (*Config, error) {
	for _, path := range dotenvFiles {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	}

	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// SCREENTIME_FETCH_TIMEOUT -> fetch.timeout
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if os.Getenv("DEBUG") == "1" {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the application cannot start with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Dataset.URL) == "" {
		return errors.New("dataset.url must not be empty")
	}
	if c.Fetch.Timeout <= 0 {
		return fmt.Errorf("fetch.timeout must be positive, got %s", c.Fetch.Timeout)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %.0fx%.0f", c.Window.Width, c.Window.Height)
	}
	return nil
}

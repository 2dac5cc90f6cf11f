// Package config loads adapter configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds process-level settings for the adapter. Defaults are safe for
// local development; production deployments typically only set GEMINI_API_KEY.
type Config struct {
	// APIKey is the Gemini API bearer credential.
	APIKey string `env:"GEMINI_API_KEY"`
	// Model is the default model identifier used when an input does not
	// name one.
	Model string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash-image-preview"`
	// FetchTimeout bounds remote image downloads.
	FetchTimeout time.Duration `env:"GEMINI_FETCH_TIMEOUT" envDefault:"30s"`
	// MaxImageBytes caps the size of a fetched remote image.
	MaxImageBytes int64 `env:"GEMINI_MAX_IMAGE_BYTES" envDefault:"15728640"`
	// LogLevel selects the logging verbosity (debug, info, warn, error).
	LogLevel string `env:"GEMINI_LOG_LEVEL" envDefault:"info"`
}

// Load parses configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

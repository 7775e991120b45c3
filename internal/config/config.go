// Package config defines service configuration structures and loading hooks.
//
// Conventions:
//   - Defaults live in New; Load layers a .env file, an optional YAML file
//     and ECHO_* environment variables on top.
//   - External errors are wrapped with this package's sentinel errors.
package config

import (
	"fmt"
	"runtime"
)

// Log output formats.
const (
	LogFormatText   = "text"
	LogFormatPretty = "pretty"
	LogFormatJSON   = "json"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text, pretty or json log output.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":3000".
	Addr string `koanf:"addr"`

	// QueueSize bounds the batch job queue. Jobs that do not fit run inline.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of batch workers.
	WorkerCount int `koanf:"worker_count"`

	// CacheSize bounds the result cache. Zero or less disables caching.
	CacheSize int `koanf:"cache_size"`

	// HistoryLimit bounds the analysis history. Zero or less keeps everything.
	HistoryLimit int `koanf:"history_limit"`

	// MaxBatchSize caps the number of sequences per batch request.
	MaxBatchSize int `koanf:"max_batch_size"`

	// CORSAllowedOrigins lists origins allowed by CORS. ECHO_CORS_ALLOWED_ORIGINS
	// takes a comma-separated list.
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`

	// UIEnabled serves the browser front end at /.
	UIEnabled bool `koanf:"ui_enabled"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          LogFormatText,
		Addr:               ":3000",
		QueueSize:          10_000,
		WorkerCount:        runtime.NumCPU() * 2,
		CacheSize:          10_000,
		HistoryLimit:       0,
		MaxBatchSize:       1000,
		CORSAllowedOrigins: []string{"*"},
		UIEnabled:          true,
	}
}

// Validate reports the first invalid setting, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch c.LogFormat {
	case LogFormatText, LogFormatPretty, LogFormatJSON:
	default:
		return fmt.Errorf("%w: unknown log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	if c.MaxBatchSize < 1 {
		return fmt.Errorf("%w: max_batch_size must be positive, got %d", ErrInvalidConfig, c.MaxBatchSize)
	}
	return nil
}

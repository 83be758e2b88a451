// Wayfinder - Learning Content Recommendations over Topic Trees
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinder-learn/wayfinder

// Package config loads and validates the service configuration from
// layered sources: built-in defaults, an optional YAML file, and
// environment variables, in ascending precedence.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config is the complete service configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Tree      TreeConfig      `koanf:"tree"`
	Database  DatabaseConfig  `koanf:"database"`
	Recommend RecommendConfig `koanf:"recommend"`
	API       APIConfig       `koanf:"api"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	// Host is the listen address.
	Host string `koanf:"host" validate:"required"`

	// Port is the listen port.
	Port int `koanf:"port" validate:"min=1,max=65535"`

	// ReadTimeout bounds request header+body reads.
	ReadTimeout time.Duration `koanf:"read_timeout" validate:"min=1s"`

	// WriteTimeout bounds response writes.
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"min=1s"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"min=1s"`
}

// TreeConfig configures the topic tree source.
type TreeConfig struct {
	// Path is the topic tree JSON file.
	Path string `koanf:"path" validate:"required"`

	// RefreshInterval rebuilds the catalog periodically. Zero disables
	// periodic rebuilds; the reload endpoint still works.
	RefreshInterval time.Duration `koanf:"refresh_interval" validate:"min=0"`
}

// DatabaseConfig configures the activity log store.
type DatabaseConfig struct {
	// Path is the DuckDB database file. ":memory:" for ephemeral, "" to
	// use the in-memory store instead of DuckDB.
	Path string `koanf:"path"`

	// SeedMockData loads demonstration learners and activity at startup.
	SeedMockData bool `koanf:"seed_mock_data"`
}

// RecommendConfig configures the recommendation strategies.
type RecommendConfig struct {
	// Seed drives Explore sampling. Fixed by default so suggestions are
	// reproducible across restarts.
	Seed int64 `koanf:"seed"`
}

// APIConfig configures the HTTP middleware stack.
type APIConfig struct {
	// CORSOrigins lists allowed CORS origins. Empty disables cross-origin
	// access.
	CORSOrigins []string `koanf:"cors_origins"`

	// RateLimitRequests is the per-IP request budget per window.
	RateLimitRequests int `koanf:"rate_limit_requests" validate:"min=1"`

	// RateLimitWindow is the rate limit window.
	RateLimitWindow time.Duration `koanf:"rate_limit_window" validate:"min=1s"`

	// RateLimitDisabled turns rate limiting off entirely.
	RateLimitDisabled bool `koanf:"rate_limit_disabled"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is one of trace, debug, info, warn, error.
	Level string `koanf:"level" validate:"oneof=trace debug info warn error"`

	// Format is json or console.
	Format string `koanf:"format" validate:"oneof=json console"`

	// Caller includes file:line in log events.
	Caller bool `koanf:"caller"`
}

// Validate checks the configuration for structural errors.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return fmt.Errorf("invalid configuration struct: %w", err)
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

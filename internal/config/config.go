// Salescope - E-commerce Sales Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salescope

// Package config provides layered configuration for Salescope using Koanf v2.
// Precedence: environment variables > YAML config file > built-in defaults.
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for both the transform pipeline and the
// query service.
type Config struct {
	Pipeline PipelineConfig `koanf:"pipeline"`
	Server   ServerConfig   `koanf:"server"`
	API      APIConfig      `koanf:"api"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// PipelineConfig controls the transform pipeline.
type PipelineConfig struct {
	// InputDir is the directory of raw per-month sales export CSVs.
	InputDir string `koanf:"input_dir"`

	// OutputDir receives the star-schema CSV artifacts and the data
	// model documentation.
	OutputDir string `koanf:"output_dir"`

	// DatabasePath is the DuckDB file the pipeline writes and the query
	// service reads.
	DatabasePath string `koanf:"database_path"`

	// TargetYear filters the canonical dataset; only records from this
	// calendar year are retained.
	TargetYear int `koanf:"target_year"`
}

// ServerConfig controls the HTTP query service.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`
}

// APIConfig controls request parameter bounds.
type APIConfig struct {
	// DefaultTopN is the number of rows returned by top-N endpoints when
	// no limit parameter is given.
	DefaultTopN int `koanf:"default_top_n"`

	// MaxTopN caps the limit parameter on top-N endpoints.
	MaxTopN int `koanf:"max_top_n"`

	// RateLimitRequests/RateLimitWindow bound requests per client IP.
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`

	// CORSOrigins lists allowed CORS origins for the dashboard frontend.
	CORSOrigins []string `koanf:"cors_origins"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Validate checks the configuration for values that would fail at runtime.
func (c *Config) Validate() error {
	if c.Pipeline.InputDir == "" {
		return fmt.Errorf("pipeline.input_dir must not be empty")
	}
	if c.Pipeline.OutputDir == "" {
		return fmt.Errorf("pipeline.output_dir must not be empty")
	}
	if c.Pipeline.DatabasePath == "" {
		return fmt.Errorf("pipeline.database_path must not be empty")
	}
	if c.Pipeline.TargetYear < 1970 || c.Pipeline.TargetYear > 9999 {
		return fmt.Errorf("pipeline.target_year %d out of range", c.Pipeline.TargetYear)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive")
	}
	if c.API.DefaultTopN < 1 {
		return fmt.Errorf("api.default_top_n must be at least 1")
	}
	if c.API.MaxTopN < c.API.DefaultTopN {
		return fmt.Errorf("api.max_top_n %d below default_top_n %d", c.API.MaxTopN, c.API.DefaultTopN)
	}
	switch c.Logging.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("logging.format %q must be json or console", c.Logging.Format)
	}
	return nil
}

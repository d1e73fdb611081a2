// SPDX-License-Identifier: MIT

// Package config loads the symla command configuration from SYMLA_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/katalvlaran/symla/internal/logging"
	"github.com/katalvlaran/symla/matrix"
)

// Prefix is the environment variable prefix.
const Prefix = "symla"

// ErrInvalid is returned by Validate (and Load) for unusable values.
var ErrInvalid = errors.New("config: invalid value")

// Config holds the command configuration.
type Config struct {
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`
	LogDevelopment bool   `envconfig:"LOG_DEVELOPMENT" default:"false"`
	DetMethod      string `envconfig:"DET_METHOD" default:"bareiss"`
	InverseMethod  string `envconfig:"INVERSE_METHOD" default:"GE"`
	Output         string `envconfig:"OUTPUT" default:"json"`
	Metrics        bool   `envconfig:"METRICS" default:"false"`
	Check          bool   `envconfig:"CHECK" default:"false"`
}

// Load loads configuration from environment variables and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		LogLevel:      "info",
		DetMethod:     matrix.DefaultDetMethod.String(),
		InverseMethod: matrix.DefaultInverseMethod.String(),
		Output:        "json",
	}
}

// Validate checks method names and the output format.
func (c *Config) Validate() error {
	if _, err := matrix.ParseDetMethod(c.DetMethod); err != nil {
		return fmt.Errorf("%w: SYMLA_DET_METHOD: %v", ErrInvalid, err)
	}
	if _, err := matrix.ParseInverseMethod(c.InverseMethod); err != nil {
		return fmt.Errorf("%w: SYMLA_INVERSE_METHOD: %v", ErrInvalid, err)
	}
	switch strings.ToLower(c.Output) {
	case "json", "yaml":
	default:
		return fmt.Errorf("%w: SYMLA_OUTPUT %q (want json or yaml)", ErrInvalid, c.Output)
	}
	return nil
}

// EngineOptions translates the method settings into engine options. c must
// be valid.
func (c *Config) EngineOptions() []matrix.Option {
	det, _ := matrix.ParseDetMethod(c.DetMethod)
	inv, _ := matrix.ParseInverseMethod(c.InverseMethod)

	return []matrix.Option{matrix.WithDetMethod(det), matrix.WithInverseMethod(inv)}
}

// Logging returns the logger configuration.
func (c *Config) Logging() logging.Config {
	cfg := logging.DefaultConfig()
	if c.LogDevelopment {
		cfg = logging.DevelopmentConfig()
	}
	if c.LogLevel != "" {
		cfg.Level = c.LogLevel
	}
	return cfg
}

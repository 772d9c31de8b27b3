// Clickrec - Click-Based Item Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickrec

package recommend

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is returned (wrapped) when a Config fails validation.
var ErrInvalidConfig = errors.New("invalid recommend config")

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Limits contains request limits applied by callers of the engine.
	Limits LimitsConfig `json:"limits"`

	// SlowPopulationThreshold is the duration above which a similarity cache
	// population is logged at warn level. Zero disables the warning.
	// Default: 250ms.
	SlowPopulationThreshold time.Duration `json:"slow_population_threshold"`
}

// LimitsConfig contains operational limits.
//
// The engine itself honours any topN it is given; these limits are used by
// transport layers (HTTP, events) to normalize untrusted input before it
// reaches the engine.
type LimitsConfig struct {
	// DefaultTopN is the number of recommendations returned when a request
	// does not specify one.
	// Default: 10.
	DefaultTopN int `json:"default_top_n"`

	// MaxTopN caps the number of recommendations a request may ask for.
	// Default: 100.
	MaxTopN int `json:"max_top_n"`

	// MaxBatchSize caps the number of clicks accepted in one batch.
	// Default: 10000.
	MaxBatchSize int `json:"max_batch_size"`
}

// DefaultConfig returns a Config with sensible production defaults.
func DefaultConfig() *Config {
	return &Config{
		Limits: LimitsConfig{
			DefaultTopN:  10,
			MaxTopN:      100,
			MaxBatchSize: 10000,
		},
		SlowPopulationThreshold: 250 * time.Millisecond,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Limits.DefaultTopN < 1 {
		return fmt.Errorf("%w: limits.default_top_n must be positive, got %d", ErrInvalidConfig, c.Limits.DefaultTopN)
	}
	if c.Limits.MaxTopN < c.Limits.DefaultTopN {
		return fmt.Errorf("%w: limits.max_top_n must be >= limits.default_top_n, got %d < %d",
			ErrInvalidConfig, c.Limits.MaxTopN, c.Limits.DefaultTopN)
	}
	if c.Limits.MaxBatchSize < 1 {
		return fmt.Errorf("%w: limits.max_batch_size must be positive, got %d", ErrInvalidConfig, c.Limits.MaxBatchSize)
	}
	if c.SlowPopulationThreshold < 0 {
		return fmt.Errorf("%w: slow_population_threshold must be non-negative, got %v",
			ErrInvalidConfig, c.SlowPopulationThreshold)
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	// All fields are value types.
	clone := *c
	return &clone
}

// ClampTopN caps a requested topN at MaxTopN.
// Non-positive values are passed through unchanged so the engine returns an
// empty result for them.
func (l LimitsConfig) ClampTopN(requested int) int {
	if requested > l.MaxTopN {
		return l.MaxTopN
	}
	return requested
}

// MarshalJSON implements custom JSON marshaling for duration fields.
func (c *Config) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Limits                  LimitsConfig `json:"limits"`
		SlowPopulationThreshold string       `json:"slow_population_threshold"`
	}{
		Limits:                  c.Limits,
		SlowPopulationThreshold: c.SlowPopulationThreshold.String(),
	})
}

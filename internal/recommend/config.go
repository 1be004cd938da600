// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

package recommend

import (
	"fmt"
	"time"

	"github.com/tomtom215/kanjigraph/internal/cache"
	"github.com/tomtom215/kanjigraph/internal/recommend/algorithms"
)

// Config contains all configuration for the engine.
type Config struct {
	// Decay configures RankedSimilar.
	Decay algorithms.DecayConfig `json:"decay"`

	// Bounded configures DeepSimilar.
	Bounded algorithms.BoundedConfig `json:"bounded"`

	// Primary configures PrimarySimilar and Neighborhood.
	Primary algorithms.PrimaryConfig `json:"primary"`

	// Filter configures SimilarKanji.
	Filter FilterConfig `json:"filter"`

	// Cache contains result caching parameters.
	Cache CacheConfig `json:"cache"`
}

// FilterConfig contains post-processing parameters.
type FilterConfig struct {
	// MaxScore drops ranked items scoring above it.
	// Default: 1.0.
	MaxScore float64 `json:"max_score"`
}

// CacheConfig contains caching parameters.
type CacheConfig struct {
	// Enabled turns on result caching.
	Enabled bool `json:"enabled"`

	// TTL is how long cached results stay valid.
	// Default: 5 minutes.
	TTL time.Duration `json:"ttl"`

	// MaxEntries caps the number of cached results.
	// Default: 10000.
	MaxEntries int `json:"max_entries"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		Decay:   algorithms.DefaultDecayConfig(),
		Bounded: algorithms.DefaultBoundedConfig(),
		Primary: algorithms.DefaultPrimaryConfig(),
		Filter: FilterConfig{
			MaxScore: 1.0,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        cache.DefaultTTL,
			MaxEntries: cache.DefaultCapacity,
		},
	}
}

// Validate checks configuration for errors.
func (c *Config) Validate() error {
	if c.Decay.DepthLimit < 0 {
		return fmt.Errorf("decay depth_limit must be non-negative, got %v", c.Decay.DepthLimit)
	}
	if c.Decay.DegreeScale <= 0 {
		return fmt.Errorf("decay degree_scale must be positive, got %v", c.Decay.DegreeScale)
	}
	if c.Decay.MaxSteps <= 0 {
		return fmt.Errorf("decay max_steps must be positive, got %d", c.Decay.MaxSteps)
	}
	if c.Bounded.DepthLimit < 0 {
		return fmt.Errorf("bounded depth_limit must be non-negative, got %d", c.Bounded.DepthLimit)
	}
	if c.Bounded.MaxSteps <= 0 {
		return fmt.Errorf("bounded max_steps must be positive, got %d", c.Bounded.MaxSteps)
	}
	if c.Primary.MaxResults <= 0 {
		return fmt.Errorf("primary max_results must be positive, got %d", c.Primary.MaxResults)
	}
	if c.Filter.MaxScore < 0 {
		return fmt.Errorf("filter max_score must be non-negative, got %v", c.Filter.MaxScore)
	}
	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache ttl must be positive, got %v", c.Cache.TTL)
		}
		if c.Cache.MaxEntries <= 0 {
			return fmt.Errorf("cache max_entries must be positive, got %d", c.Cache.MaxEntries)
		}
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

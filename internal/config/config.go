// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

package config

import (
	"time"

	"github.com/tomtom215/kanjigraph/internal/recommend"
	"github.com/tomtom215/kanjigraph/internal/recommend/algorithms"
)

// Graph artifact formats accepted by graph.format.
const (
	FormatAuto     = "auto"
	FormatGEXF     = "gexf"
	FormatCSV      = "csv"
	FormatSnapshot = "snapshot"
	FormatRecords  = "records"
)

// Config holds all application configuration
type Config struct {
	Graph     GraphConfig     `koanf:"graph"`
	Recommend RecommendConfig `koanf:"recommend"`
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
	Database  DatabaseConfig  `koanf:"database"`
	MCP       MCPConfig       `koanf:"mcp"`
}

// GraphConfig locates the graph artifact.
type GraphConfig struct {
	// Path is the artifact: a .gexf file, the nodes CSV of a CSV pair, a
	// badger snapshot directory, or an extraction records .json file.
	Path string `koanf:"path"`

	// Format is one of auto, gexf, csv, snapshot, records.
	// Default: auto (by extension; directories are snapshots)
	Format string `koanf:"format"`

	// EdgesPath is the edges CSV. Only used by the csv format.
	// Default: derived from Path ("nodes" replaced by "edges")
	EdgesPath string `koanf:"edges_path"`

	// CommonWordsPath is the common words text. Only used by the records format.
	CommonWordsPath string `koanf:"common_words_path"`

	// ReloadInterval is how often the artifact is checked for changes.
	// Zero disables hot reload.
	// Default: 1m
	ReloadInterval time.Duration `koanf:"reload_interval"`
}

// RecommendConfig holds traversal and caching parameters.
type RecommendConfig struct {
	Decay   DecayConfig   `koanf:"decay"`
	Bounded BoundedConfig `koanf:"bounded"`
	Primary PrimaryConfig `koanf:"primary"`
	Filter  FilterConfig  `koanf:"filter"`
	Cache   CacheConfig   `koanf:"cache"`
}

// DecayConfig holds decay walk parameters.
type DecayConfig struct {
	DepthLimit  float64 `koanf:"depth_limit"`
	DegreeScale float64 `koanf:"degree_scale"`
	MaxSteps    int     `koanf:"max_steps"`
}

// BoundedConfig holds bounded walk parameters.
type BoundedConfig struct {
	DepthLimit int `koanf:"depth_limit"`
	LevelLimit int `koanf:"level_limit"`
	MaxSteps   int `koanf:"max_steps"`
}

// PrimaryConfig holds primary component selector parameters.
type PrimaryConfig struct {
	MaxResults int `koanf:"max_results"`
	LevelLimit int `koanf:"level_limit"`
}

// FilterConfig holds SimilarKanji post-processing parameters.
type FilterConfig struct {
	MaxScore float64 `koanf:"max_score"`
}

// CacheConfig holds result cache parameters.
type CacheConfig struct {
	Enabled    bool          `koanf:"enabled"`
	TTL        time.Duration `koanf:"ttl"`
	MaxEntries int           `koanf:"max_entries"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// SecurityConfig holds CORS and rate limiting settings
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// DatabaseConfig tunes the in-memory DuckDB engine used for CSV artifacts.
type DatabaseConfig struct {
	// MaxMemory is passed to SET memory_limit. Empty keeps DuckDB's default.
	MaxMemory string `koanf:"max_memory"`

	// Threads is passed to SET threads. Zero keeps DuckDB's default.
	Threads int `koanf:"threads"`
}

// MCPConfig throttles the MCP tool server.
type MCPConfig struct {
	// RateLimit is the sustained tool calls per second.
	RateLimit float64 `koanf:"rate_limit"`

	// Burst is the number of calls allowed above RateLimit.
	Burst int `koanf:"burst"`
}

// EngineConfig converts the recommend section to the engine's config type.
func (c *Config) EngineConfig() *recommend.Config {
	r := c.Recommend
	return &recommend.Config{
		Decay: algorithms.DecayConfig{
			DepthLimit:  r.Decay.DepthLimit,
			DegreeScale: r.Decay.DegreeScale,
			MaxSteps:    r.Decay.MaxSteps,
		},
		Bounded: algorithms.BoundedConfig{
			DepthLimit: r.Bounded.DepthLimit,
			LevelLimit: r.Bounded.LevelLimit,
			MaxSteps:   r.Bounded.MaxSteps,
		},
		Primary: algorithms.PrimaryConfig{
			MaxResults: r.Primary.MaxResults,
			LevelLimit: r.Primary.LevelLimit,
		},
		Filter: recommend.FilterConfig{MaxScore: r.Filter.MaxScore},
		Cache: recommend.CacheConfig{
			Enabled:    r.Cache.Enabled,
			TTL:        r.Cache.TTL,
			MaxEntries: r.Cache.MaxEntries,
		},
	}
}

// Load reads configuration from defaults, an optional YAML file and the
// environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

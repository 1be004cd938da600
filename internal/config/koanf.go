// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/kanjigraph/config.yaml",
	"/etc/kanjigraph/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Graph: GraphConfig{
			Path:           "data/kanji_digraph.gexf",
			Format:         FormatAuto,
			ReloadInterval: time.Minute,
		},
		Recommend: RecommendConfig{
			Decay: DecayConfig{
				DepthLimit:  0.9,
				DegreeScale: 100,
				MaxSteps:    1_000_000,
			},
			Bounded: BoundedConfig{
				DepthLimit: 2,
				LevelLimit: 0,
				MaxSteps:   1_000_000,
			},
			Primary: PrimaryConfig{
				MaxResults: 2,
				LevelLimit: 0,
			},
			Filter: FilterConfig{
				MaxScore: 1.0,
			},
			Cache: CacheConfig{
				Enabled:    true,
				TTL:        5 * time.Minute,
				MaxEntries: 10000,
			},
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            3857,
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Database: DatabaseConfig{
			MaxMemory: "",
			Threads:   0,
		},
		MCP: MCPConfig{
			RateLimit: 20,
			Burst:     40,
		},
	}
}

// LoadWithKoanf loads configuration in layers:
//
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// GRAPH_PATH -> graph.path, DECAY_DEPTH_LIMIT -> recommend.decay.depth_limit
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Post-process slice fields from comma-separated strings
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// ConfigFilePath returns the config file Load would read, or "".
func ConfigFilePath() string {
	return findConfigFile()
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
var envMappings = map[string]string{
	// Graph artifact
	"graph_path":              "graph.path",
	"graph_format":            "graph.format",
	"graph_edges_path":        "graph.edges_path",
	"graph_common_words_path": "graph.common_words_path",
	"graph_reload_interval":   "graph.reload_interval",

	// Traversals
	"decay_depth_limit":   "recommend.decay.depth_limit",
	"decay_degree_scale":  "recommend.decay.degree_scale",
	"decay_max_steps":     "recommend.decay.max_steps",
	"bounded_depth_limit": "recommend.bounded.depth_limit",
	"bounded_level_limit": "recommend.bounded.level_limit",
	"bounded_max_steps":   "recommend.bounded.max_steps",
	"primary_max_results": "recommend.primary.max_results",
	"primary_level_limit": "recommend.primary.level_limit",
	"filter_max_score":    "recommend.filter.max_score",

	// Result cache
	"cache_enabled":     "recommend.cache.enabled",
	"cache_ttl":         "recommend.cache.ttl",
	"cache_max_entries": "recommend.cache.max_entries",

	// Server
	"http_host":             "server.host",
	"http_port":             "server.port",
	"server_timeout":        "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",

	// Security
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// DuckDB
	"duckdb_max_memory": "database.max_memory",
	"duckdb_threads":    "database.threads",

	// MCP
	"mcp_rate_limit": "mcp.rate_limit",
	"mcp_burst":      "mcp.burst",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - GRAPH_PATH -> graph.path
//   - HTTP_PORT -> server.port
//   - DISABLE_RATE_LIMIT -> security.rate_limit_disabled
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}

	// Unmapped keys are skipped so random environment variables cannot
	// pollute the config.
	return ""
}

// WatchConfigFile calls callback whenever the file at path changes.
// The caller is responsible for reloading and synchronizing.
//
//	err := config.WatchConfigFile(path, func() {
//	    cfg, err := config.Load()
//	    if err != nil {
//	        logging.Warn().Err(err).Msg("config reload failed")
//	        return
//	    }
//	    _ = logging.SetLevelString(cfg.Logging.Level)
//	})
func WatchConfigFile(path string, callback func()) error {
	provider := file.Provider(path)

	return provider.Watch(func(event interface{}, err error) {
		if err != nil {
			return
		}
		callback()
	})
}

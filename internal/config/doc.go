// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

/*
Package config provides centralized configuration management for kanjigraph.

# Configuration Sources

Configuration is layered with koanf, later layers overriding earlier ones:

 1. Built-in defaults (defaultConfig)
 2. Optional YAML file: $CONFIG_PATH, config.yaml, config.yml,
    /etc/kanjigraph/config.yaml
 3. Environment variables, mapped explicitly by envTransformFunc

# Environment Variables

Graph artifact (GraphConfig):
  - GRAPH_PATH: Artifact path (default: data/kanji_digraph.gexf)
  - GRAPH_FORMAT: auto, gexf, csv, snapshot, records (default: auto)
  - GRAPH_EDGES_PATH: Edges CSV for the csv format
  - GRAPH_COMMON_WORDS_PATH: Common words text for the records format
  - GRAPH_RELOAD_INTERVAL: Change poll interval, 0 disables (default: 1m)

Traversals (RecommendConfig):
  - DECAY_DEPTH_LIMIT (0.9), DECAY_DEGREE_SCALE (100), DECAY_MAX_STEPS (1000000)
  - BOUNDED_DEPTH_LIMIT (2), BOUNDED_LEVEL_LIMIT (0), BOUNDED_MAX_STEPS (1000000)
  - PRIMARY_MAX_RESULTS (2), PRIMARY_LEVEL_LIMIT (0)
  - FILTER_MAX_SCORE (1.0)
  - CACHE_ENABLED (true), CACHE_TTL (5m), CACHE_MAX_ENTRIES (10000)

HTTP Server (ServerConfig):
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_PORT: Listen port (default: 3857)
  - SERVER_TIMEOUT: Read/write timeout (default: 30s)
  - HTTP_SHUTDOWN_TIMEOUT: Graceful shutdown deadline (default: 10s)

Security (SecurityConfig):
  - CORS_ORIGINS: Comma-separated allowed origins (default: *)
  - RATE_LIMIT_REQUESTS: Requests per window per IP (default: 100)
  - RATE_LIMIT_WINDOW: Window length (default: 1m)
  - DISABLE_RATE_LIMIT: Turn rate limiting off (default: false)

Logging (LoggingConfig):
  - LOG_LEVEL (info), LOG_FORMAT (json), LOG_CALLER (false)

DuckDB (DatabaseConfig):
  - DUCKDB_MAX_MEMORY, DUCKDB_THREADS

MCP (MCPConfig):
  - MCP_RATE_LIMIT: Tool calls per second (default: 20)
  - MCP_BURST: Burst size (default: 40)

# Usage

	cfg, err := config.Load()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	engine, err := recommend.NewEngine(cfg.EngineConfig(), logger)
*/
package config

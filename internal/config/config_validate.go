// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/tomtom215/kanjigraph/internal/logging"
)

var validFormats = []string{FormatAuto, FormatGEXF, FormatCSV, FormatSnapshot, FormatRecords}

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateGraph(); err != nil {
		return err
	}
	if err := c.EngineConfig().Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateMCP(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateGraph() error {
	if strings.TrimSpace(c.Graph.Path) == "" {
		return fmt.Errorf("GRAPH_PATH is required")
	}
	if !slices.Contains(validFormats, c.Graph.Format) {
		return fmt.Errorf("GRAPH_FORMAT must be one of %s, got %q", strings.Join(validFormats, ", "), c.Graph.Format)
	}
	if c.Graph.ReloadInterval < 0 {
		return fmt.Errorf("GRAPH_RELOAD_INTERVAL must be non-negative, got %v", c.Graph.ReloadInterval)
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("SERVER_TIMEOUT must be positive, got %v", c.Server.Timeout)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must be positive, got %v", c.Server.ShutdownTimeout)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %v", c.Security.RateLimitWindow)
	}
	return nil
}

// ShouldWarnAboutCORS reports whether any origin is allowed.
func (c *Config) ShouldWarnAboutCORS() bool {
	return slices.Contains(c.Security.CORSOrigins, "*")
}

func (c *Config) validateDatabase() error {
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must be non-negative, got %d", c.Database.Threads)
	}
	return nil
}

func (c *Config) validateMCP() error {
	if c.MCP.RateLimit <= 0 {
		return fmt.Errorf("MCP_RATE_LIMIT must be positive, got %v", c.MCP.RateLimit)
	}
	if c.MCP.Burst < 1 {
		return fmt.Errorf("MCP_BURST must be at least 1, got %d", c.MCP.Burst)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	switch c.Logging.Format {
	case "json", "console":
		return nil
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
}

// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

// Package metrics defines the Prometheus instrumentation for kanjigraph.
//
// All collectors are registered with the default registry through promauto
// and exposed by the HTTP server at /metrics.
//
// # Metric Families
//
//   - api_*: request counts, latency and in-flight requests
//   - kanjigraph_traversal_*: walk duration, expansions and step-cap hits
//   - kanjigraph_queries_total: engine queries by operation and cache result
//   - kanjigraph_graph_*: live graph size, artifact loads and reloads
//   - duckdb_*: CSV artifact statements
//   - kanjigraph_mcp_tool_calls_total: MCP tool usage
//
// Record* helpers wrap the collectors so callers do not depend on label order.
package metrics

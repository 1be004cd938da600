// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Cache result label values for QueriesTotal.
const (
	CacheHit      = "hit"
	CacheMiss     = "miss"
	CacheDisabled = "disabled"
)

// Reload result label values for GraphReloads.
const (
	ReloadSuccess   = "success"
	ReloadFailure   = "failure"
	ReloadUnchanged = "unchanged"
	ReloadRejected  = "rejected"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Traversal Metrics
	TraversalDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kanjigraph_traversal_duration_seconds",
			Help:    "Duration of graph walks in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"algorithm"},
	)

	TraversalSteps = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kanjigraph_traversal_steps",
			Help:    "Number of node expansions per graph walk",
			Buckets: prometheus.ExponentialBuckets(1, 4, 12),
		},
		[]string{"algorithm"},
	)

	TraversalTruncations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kanjigraph_traversal_truncations_total",
			Help: "Total number of graph walks stopped by the step cap",
		},
		[]string{"algorithm"},
	)

	// Query Metrics
	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kanjigraph_queries_total",
			Help: "Total number of engine queries by operation and cache result",
		},
		[]string{"operation", "cache"},
	)

	QueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kanjigraph_query_errors_total",
			Help: "Total number of engine queries that failed",
		},
		[]string{"operation"},
	)

	CacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "kanjigraph_cache_entries",
			Help: "Current number of cached query results",
		},
	)

	// Graph Metrics
	GraphNodes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "kanjigraph_graph_nodes",
			Help: "Number of nodes in the live graph",
		},
	)

	GraphEdges = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "kanjigraph_graph_edges",
			Help: "Number of edges in the live graph",
		},
	)

	GraphLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kanjigraph_graph_load_duration_seconds",
			Help:    "Duration of artifact loads in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"format"},
	)

	GraphLoadErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kanjigraph_graph_load_errors_total",
			Help: "Total number of failed artifact loads",
		},
		[]string{"format"},
	)

	GraphReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kanjigraph_graph_reloads_total",
			Help: "Total number of graph reload attempts by result",
		},
		[]string{"result"},
	)

	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation"},
	)

	// MCP Metrics
	MCPToolCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kanjigraph_mcp_tool_calls_total",
			Help: "Total number of MCP tool calls by tool and result",
		},
		[]string{"tool", "result"},
	)

	// Worksheet Metrics
	WorksheetRows = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kanjigraph_worksheet_rows_total",
			Help: "Total number of worksheet rows produced",
		},
		[]string{"kind"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit records a request rejected by the rate limiter.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordTraversal records one graph walk.
func RecordTraversal(algorithm string, duration time.Duration, steps int, truncated bool) {
	TraversalDuration.WithLabelValues(algorithm).Observe(duration.Seconds())
	TraversalSteps.WithLabelValues(algorithm).Observe(float64(steps))
	if truncated {
		TraversalTruncations.WithLabelValues(algorithm).Inc()
	}
}

// RecordQuery records an engine query and how the cache served it.
func RecordQuery(operation, cacheResult string) {
	QueriesTotal.WithLabelValues(operation, cacheResult).Inc()
}

// RecordQueryError records a failed engine query.
func RecordQueryError(operation string) {
	QueryErrors.WithLabelValues(operation).Inc()
}

// SetCacheEntries updates the cached result gauge.
func SetCacheEntries(n int) {
	CacheEntries.Set(float64(n))
}

// SetGraphSize updates the live graph gauges.
func SetGraphSize(nodes, edges int) {
	GraphNodes.Set(float64(nodes))
	GraphEdges.Set(float64(edges))
}

// RecordGraphLoad records an artifact load.
func RecordGraphLoad(format string, duration time.Duration, err error) {
	GraphLoadDuration.WithLabelValues(format).Observe(duration.Seconds())
	if err != nil {
		GraphLoadErrors.WithLabelValues(format).Inc()
	}
}

// RecordReload records the outcome of a reload attempt.
func RecordReload(result string) {
	GraphReloads.WithLabelValues(result).Inc()
}

// RecordDBQuery records a DuckDB statement.
func RecordDBQuery(operation string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation).Inc()
	}
}

// RecordMCPToolCall records an MCP tool invocation. result is "ok",
// "error" or "rate_limited".
func RecordMCPToolCall(tool, result string) {
	MCPToolCalls.WithLabelValues(tool, result).Inc()
}

// RecordWorksheetRows records worksheet rows produced for kind
// ("kanji_list" or "study_list").
func RecordWorksheetRows(kind string, n int) {
	WorksheetRows.WithLabelValues(kind).Add(float64(n))
}

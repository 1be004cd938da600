// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

/*
Package middleware provides HTTP middleware for the kanjigraph API.

Components:

  - RequestID: UUID-based request tracking, integrated with internal/logging
  - PrometheusMetrics: request count, latency and in-flight gauges labelled
    by chi route pattern
  - AccessLog: one zerolog entry per request, escalated for slow or failed
    requests

All middleware uses the http.HandlerFunc shape. The api package adapts
them to chi with its chiMiddleware helper:

	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chiMiddleware(middleware.PrometheusMetrics))
	r.Use(chiMiddleware(middleware.AccessLog(250 * time.Millisecond)))

See Also:

  - internal/api: router and handlers
  - internal/metrics: Prometheus metric definitions
*/
package middleware

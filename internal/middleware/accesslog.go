// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

package middleware

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/kanjigraph/internal/logging"
)

// AccessLog writes one structured entry per request. Requests that take
// longer than slow are logged at warn level; 5xx responses at error level.
// Must run inside RequestID so entries carry request_id.
func AccessLog(slow time.Duration) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapper := &metricsResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next(wrapper, r)

			elapsed := time.Since(start)
			var event *zerolog.Event
			logger := logging.Ctx(r.Context())
			switch {
			case wrapper.statusCode >= http.StatusInternalServerError:
				event = logger.Error()
			case slow > 0 && elapsed > slow:
				event = logger.Warn()
			default:
				event = logger.Debug()
			}
			event.
				Str("method", r.Method).
				Str("route", routeLabel(r)).
				Int("status", wrapper.statusCode).
				Float64("latency_ms", float64(elapsed.Microseconds())/1000).
				Msg("http request")
		}
	}
}

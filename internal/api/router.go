// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/kanjigraph/internal/middleware"
)

// slowRequest is the latency above which requests are logged at warn level.
const slowRequest = 500 * time.Millisecond

// Router wires handlers and middleware into a chi mux.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. A nil mw uses DefaultChiMiddlewareConfig.
func NewRouter(handler *Handler, mw *ChiMiddleware) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{handler: handler, chiMiddleware: mw}
}

// SetupChi builds the HTTP handler with every route.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to every route in order.
	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // must be global for OPTIONS preflight

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		r.Use(chiMiddleware(middleware.AccessLog(slowRequest)))

		r.Get("/graph/stats", router.handler.GraphStats)

		r.Route("/kanji/{kanji}", func(r chi.Router) {
			r.Get("/", router.handler.KanjiInfo)
			r.Get("/similar", router.handler.Similar)
			r.Get("/similar/deep", router.handler.DeepSimilar)
			r.Get("/primary", router.handler.PrimarySimilar)
			r.Get("/neighborhood", router.handler.Neighborhood)
			r.Get("/breakdown", router.handler.Breakdown)
			r.Get("/projection", router.handler.Projection)
		})

		r.With(router.chiMiddleware.RateLimitWorksheet()).Post("/worksheet", router.handler.Worksheet)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}

// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/kanjigraph/internal/models"
	"github.com/tomtom215/kanjigraph/internal/recommend"
	"github.com/tomtom215/kanjigraph/internal/worksheet"
)

// DefaultQueryTimeout bounds a single engine query.
const DefaultQueryTimeout = 10 * time.Second

// Handler serves the API endpoints.
type Handler struct {
	engine       *recommend.Engine
	exporter     *worksheet.Exporter
	queryTimeout time.Duration
	version      string
	startTime    time.Time
}

// NewHandler creates a handler. A non-positive queryTimeout uses
// DefaultQueryTimeout.
func NewHandler(engine *recommend.Engine, exporter *worksheet.Exporter, queryTimeout time.Duration, version string) *Handler {
	if queryTimeout <= 0 {
		queryTimeout = DefaultQueryTimeout
	}
	return &Handler{
		engine:       engine,
		exporter:     exporter,
		queryTimeout: queryTimeout,
		version:      version,
		startTime:    time.Now(),
	}
}

func (h *Handler) queryContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), h.queryTimeout)
}

func intPtr(n int) *int {
	return &n
}

// HealthLive reports that the process is alive.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: models.StatusSuccess,
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	})
}

// HealthReady answers 200 once a graph is loaded and 503 before.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	health := models.HealthStatus{
		Status:  "ready",
		Version: h.version,
		Uptime:  time.Since(h.startTime).Seconds(),
	}
	statusCode := http.StatusOK

	if stats, err := h.engine.Stats(); err == nil {
		health.GraphLoaded = true
		health.Nodes = stats.Nodes
		health.Edges = stats.Edges
		health.LoadedAt = stats.LoadedAt
	} else {
		health.Status = "not_ready"
		statusCode = http.StatusServiceUnavailable
	}

	respondJSON(w, statusCode, &models.APIResponse{
		Status:   health.Status,
		Data:     health,
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	})
}

// GraphStats returns the size and origin of the live graph.
func (h *Handler) GraphStats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	stats, err := h.engine.Stats()
	if err != nil {
		respondQueryError(w, err)
		return
	}
	respondSuccess(w, r, start, stats, nil)
}

// KanjiInfo returns the node description of {kanji}.
func (h *Handler) KanjiInfo(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req := KanjiRequest{Kanji: kanjiParam(r)}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondErrorDetails(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	info, err := h.engine.Info(req.Kanji)
	if err != nil {
		respondQueryError(w, err)
		return
	}
	respondSuccess(w, r, start, info, nil)
}

// Similar returns the raw ranked list, or with distinct=true the list with
// the query kanji, duplicates and scores above max_score removed.
func (h *Handler) Similar(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	cfg := h.engine.Config()
	req := SimilarRequest{
		Kanji:      kanjiParam(r),
		DepthLimit: getFloatParam(r, "depth_limit", cfg.Decay.DepthLimit),
		Distinct:   getBoolParam(r, "distinct", false),
		MaxScore:   getFloatParam(r, "max_score", cfg.Filter.MaxScore),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondErrorDetails(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	ctx, cancel := h.queryContext(r)
	defer cancel()

	var (
		items []recommend.Similar
		err   error
	)
	if req.Distinct {
		items, err = h.engine.SimilarKanji(ctx, req.Kanji, req.DepthLimit, req.MaxScore)
	} else {
		items, err = h.engine.RankedSimilar(ctx, req.Kanji, req.DepthLimit)
	}
	if err != nil {
		respondQueryError(w, err)
		return
	}
	respondSuccess(w, r, start, items, intPtr(len(items)))
}

// DeepSimilar returns the bounded walk from {kanji}.
func (h *Handler) DeepSimilar(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	cfg := h.engine.Config()
	req := DeepRequest{
		Kanji:      kanjiParam(r),
		DepthLimit: getIntParam(r, "depth_limit", cfg.Bounded.DepthLimit),
		LevelLimit: getIntParam(r, "level_limit", cfg.Bounded.LevelLimit),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondErrorDetails(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	ctx, cancel := h.queryContext(r)
	defer cancel()

	items, err := h.engine.DeepSimilar(ctx, req.Kanji, req.DepthLimit, req.LevelLimit)
	if err != nil {
		respondQueryError(w, err)
		return
	}
	respondSuccess(w, r, start, items, intPtr(len(items)))
}

// PrimarySimilar returns the capped sibling list of {kanji}.
func (h *Handler) PrimarySimilar(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req := LevelRequest{
		Kanji:      kanjiParam(r),
		LevelLimit: getIntParam(r, "level_limit", h.engine.Config().Primary.LevelLimit),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondErrorDetails(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	ctx, cancel := h.queryContext(r)
	defer cancel()

	items, err := h.engine.PrimarySimilar(ctx, req.Kanji, req.LevelLimit)
	if err != nil {
		respondQueryError(w, err)
		return
	}
	respondSuccess(w, r, start, items, intPtr(len(items)))
}

// Neighborhood returns components, compounds and uncapped siblings.
func (h *Handler) Neighborhood(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req := LevelRequest{
		Kanji:      kanjiParam(r),
		LevelLimit: getIntParam(r, "level_limit", h.engine.Config().Primary.LevelLimit),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondErrorDetails(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	ctx, cancel := h.queryContext(r)
	defer cancel()

	nb, err := h.engine.Neighborhood(ctx, req.Kanji, req.LevelLimit)
	if err != nil {
		respondQueryError(w, err)
		return
	}
	respondSuccess(w, r, start, nb, nil)
}

// Breakdown returns the siblings of each component of {kanji}.
func (h *Handler) Breakdown(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req := KanjiRequest{Kanji: kanjiParam(r)}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondErrorDetails(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	ctx, cancel := h.queryContext(r)
	defer cancel()

	items, err := h.engine.Breakdown(ctx, req.Kanji)
	if err != nil {
		respondQueryError(w, err)
		return
	}
	respondSuccess(w, r, start, items, intPtr(len(items)))
}

// Projection returns the weighted projection of the ranked list.
func (h *Handler) Projection(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req := ProjectionRequest{
		Kanji:      kanjiParam(r),
		DepthLimit: getFloatParam(r, "depth_limit", h.engine.Config().Decay.DepthLimit),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondErrorDetails(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	ctx, cancel := h.queryContext(r)
	defer cancel()

	proj, err := h.engine.Projection(ctx, req.Kanji, req.DepthLimit)
	if err != nil {
		respondQueryError(w, err)
		return
	}
	respondSuccess(w, r, start, proj, nil)
}

// Worksheet returns the study list for the posted text.
func (h *Handler) Worksheet(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req WorksheetRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondError(w, http.StatusRequestEntityTooLarge, ErrCodeBadRequest, "Request body too large", nil)
			return
		}
		respondError(w, http.StatusBadRequest, ErrCodeBadRequest, "Invalid JSON body", nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondErrorDetails(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	ctx, cancel := h.queryContext(r)
	defer cancel()

	entries, err := h.exporter.StudyList(ctx, req.Text, req.Level)
	if err != nil {
		respondQueryError(w, err)
		return
	}
	respondSuccess(w, r, start, entries, intPtr(len(entries)))
}

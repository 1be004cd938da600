// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"

	"github.com/tomtom215/kanjigraph/internal/graph"
	"github.com/tomtom215/kanjigraph/internal/metrics"
	"github.com/tomtom215/kanjigraph/internal/recommend"
)

// GraphLoader reads the configured artifact.
type GraphLoader interface {
	Load(ctx context.Context) (*graph.Store, recommend.Source, error)
	ModTime() (time.Time, error)
}

// GraphTarget receives reloaded graphs.
type GraphTarget interface {
	SetGraph(store *graph.Store, src recommend.Source)
}

// ReloadConfig configures GraphReloadService.
type ReloadConfig struct {
	// Interval between modification time checks.
	// Default: 1m
	Interval time.Duration

	// MaxFailures is the number of consecutive failed reloads that opens
	// the breaker.
	// Default: 3
	MaxFailures uint32

	// OpenTimeout is how long the breaker stays open before a trial reload.
	// Default: 5m
	OpenTimeout time.Duration
}

// GraphReloadService hot-reloads the graph when its artifact changes.
//
// A failed reload keeps the live graph. The modification time is only
// recorded after a successful swap, so a broken artifact is retried on the
// next tick until the breaker opens.
type GraphReloadService struct {
	loader  GraphLoader
	target  GraphTarget
	config  ReloadConfig
	breaker *gobreaker.CircuitBreaker[*loadedGraph]
	logger  zerolog.Logger

	lastMod time.Time
}

type loadedGraph struct {
	store *graph.Store
	src   recommend.Source
}

// NewGraphReloadService creates the service. lastMod is the modification
// time of the artifact already loaded at startup.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewGraphReloadService(loader GraphLoader, target GraphTarget, cfg ReloadConfig, lastMod time.Time, logger zerolog.Logger) *GraphReloadService {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = 3
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 5 * time.Minute
	}

	s := &GraphReloadService{
		loader:  loader,
		target:  target,
		config:  cfg,
		logger:  logger.With().Str("service", "graph-reload").Logger(),
		lastMod: lastMod,
	}
	s.breaker = gobreaker.NewCircuitBreaker[*loadedGraph](gobreaker.Settings{
		Name:        "graph-reload",
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			s.logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("reload circuit breaker state changed")
		},
	})
	return s
}

// Serve implements suture.Service.
func (s *GraphReloadService) Serve(ctx context.Context) error {
	s.logger.Info().Dur("interval", s.config.Interval).Msg("graph reload service starting")

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("graph reload service stopping")
			return ctx.Err()
		case <-ticker.C:
			s.Check(ctx)
		}
	}
}

// Check runs one reload cycle and returns its outcome, one of the
// metrics.Reload* values.
func (s *GraphReloadService) Check(ctx context.Context) string {
	result := s.check(ctx)
	metrics.RecordReload(result)
	return result
}

func (s *GraphReloadService) check(ctx context.Context) string {
	mod, err := s.loader.ModTime()
	if err != nil {
		s.logger.Warn().Err(err).Msg("cannot stat graph artifact")
		return metrics.ReloadFailure
	}
	if !mod.After(s.lastMod) {
		return metrics.ReloadUnchanged
	}

	loaded, err := s.breaker.Execute(func() (*loadedGraph, error) {
		store, src, err := s.loader.Load(ctx)
		if err != nil {
			return nil, err
		}
		return &loadedGraph{store: store, src: src}, nil
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		s.logger.Debug().Msg("reload skipped while circuit breaker is open")
		return metrics.ReloadRejected
	}
	if err != nil {
		s.logger.Error().Err(err).Time("modified", mod).Msg("graph reload failed, keeping current graph")
		return metrics.ReloadFailure
	}

	s.target.SetGraph(loaded.store, loaded.src)
	s.lastMod = mod
	s.logger.Info().
		Str("path", loaded.src.Path).
		Int("nodes", loaded.store.Len()).
		Int("edges", loaded.store.EdgeCount()).
		Msg("graph reloaded")
	return metrics.ReloadSuccess
}

// State returns the breaker state.
func (s *GraphReloadService) State() gobreaker.State {
	return s.breaker.State()
}

// String implements fmt.Stringer.
func (s *GraphReloadService) String() string {
	return fmt.Sprintf("graph-reload(%s)", s.config.Interval)
}

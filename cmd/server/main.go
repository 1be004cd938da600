// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/kanjigraph/internal/api"
	"github.com/tomtom215/kanjigraph/internal/artifact"
	"github.com/tomtom215/kanjigraph/internal/config"
	"github.com/tomtom215/kanjigraph/internal/logging"
	"github.com/tomtom215/kanjigraph/internal/recommend"
	"github.com/tomtom215/kanjigraph/internal/recommend/reranking"
	"github.com/tomtom215/kanjigraph/internal/supervisor"
	"github.com/tomtom215/kanjigraph/internal/supervisor/services"
	"github.com/tomtom215/kanjigraph/internal/worksheet"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})
	logging.Info().Str("version", version).Msg("Starting kanjigraph with supervisor tree")

	if path := config.ConfigFilePath(); path != "" {
		if err := config.WatchConfigFile(path, reapplyLogLevel); err != nil {
			logging.Warn().Err(err).Str("path", path).Msg("Config file watch disabled")
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loader := artifact.NewLoader(cfg.Graph, cfg.Database, logging.Logger())
	store, src, err := loader.Load(ctx)
	if err != nil {
		logging.Fatal().Err(err).Str("path", cfg.Graph.Path).Msg("Failed to load kanji graph")
	}
	loadedMod, err := loader.ModTime()
	if err != nil {
		logging.Warn().Err(err).Msg("Cannot read artifact modification time")
	}

	engine, err := recommend.NewEngine(cfg.EngineConfig(), logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create similarity engine")
	}
	reranking.RegisterDefaults(engine)
	engine.SetGraph(store, src)

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}
	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS allows any origin (CORS_ORIGINS=*); set explicit origins in production")
	}

	exporter := worksheet.NewExporter(engine, 0, logging.Logger())
	handler := api.NewHandler(engine, exporter, cfg.Server.Timeout, version)
	chiMiddleware := api.NewChiMiddlewareFromSecurity(
		cfg.Security.CORSOrigins,
		cfg.Security.RateLimitReqs,
		cfg.Security.RateLimitWindow,
		cfg.Security.RateLimitDisabled,
	)
	router := api.NewRouter(handler, chiMiddleware)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(logging.WithComponent("supervisor")), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	// Data layer
	if cfg.Graph.ReloadInterval > 0 {
		tree.AddDataService(services.NewGraphReloadService(loader, engine, services.ReloadConfig{
			Interval: cfg.Graph.ReloadInterval,
		}, loadedMod, logging.Logger()))
		logging.Info().Dur("interval", cfg.Graph.ReloadInterval).Msg("Graph hot reload enabled")
	}

	// Query layer
	if cfg.Recommend.Cache.Enabled {
		tree.AddQueryService(services.NewCacheJanitorService(engine, cfg.Recommend.Cache.TTL, logging.Logger()))
	}

	// API layer
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logging.Logger()))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("kanjigraph stopped gracefully")
}

// reapplyLogLevel reloads the configuration after a config file change and
// applies the new log level. Other settings need a restart.
func reapplyLogLevel() {
	cfg, err := config.Load()
	if err != nil {
		logging.Warn().Err(err).Msg("Config reload failed, keeping current settings")
		return
	}
	if err := logging.SetLevelString(cfg.Logging.Level); err != nil {
		logging.Warn().Err(err).Msg("Invalid log level in reloaded config")
		return
	}
	logging.Info().Str("level", cfg.Logging.Level).Msg("Log level updated from config file")
}

// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

/*
Package supervisor provides process supervision for kanjigraph using suture v4.

The supervisor tree organizes long-running services into three layers:

	RootSupervisor ("kanjigraph")
	├── DataSupervisor ("data-layer")
	│   └── GraphReloadService (if graph.reload_interval > 0)
	├── QuerySupervisor ("query-layer")
	│   └── CacheJanitorService (if the result cache is enabled)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A failing reload never takes the HTTP server down with it: each layer counts
failures and backs off on its own.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(logger), supervisor.TreeConfig{
	    ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddDataService(services.NewGraphReloadService(loader, engine, reloadCfg, logger))
	tree.AddQueryService(services.NewCacheJanitorService(engine, ttl, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    logging.Error().Err(err).Msg("supervisor stopped")
	}

Supervisor events (restarts, backoff, timeouts) are logged through
sutureslog, which takes an *slog.Logger; logging.NewSlogLogger bridges it to
zerolog.
*/
package supervisor

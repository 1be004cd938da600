// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

// Package main is the entry point for the kanjigraph HTTP server.
//
// # Startup Order
//
//  1. Configuration: defaults, config.yaml, environment (Koanf v2)
//  2. Logging: zerolog, level re-applied when the config file changes
//  3. Graph: the configured artifact is loaded; failure is fatal
//  4. Engine: similarity engine with the default reranking chain
//  5. HTTP: chi router with CORS, rate limiting, request IDs and metrics
//  6. Supervisor tree: HTTP server, graph hot reload, cache janitor
//
// # Configuration
//
// Every key can be set in config.yaml or as an environment variable, for
// example GRAPH_PATH=/data/kanji.gexf or HTTP_PORT=8080. See
// internal/config for the full list.
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the root context. The HTTP server drains for
// server.shutdown_timeout before the process exits.
package main

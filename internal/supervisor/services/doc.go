// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

// Package services adapts kanjigraph components to suture's Serve(ctx) model.
//
//   - HTTPServerService runs an *http.Server and shuts it down gracefully.
//   - GraphReloadService polls the graph artifact and hot-swaps the engine's
//     graph behind a circuit breaker.
//   - CacheJanitorService evicts expired result cache entries.
//
// Every service implements fmt.Stringer so suture logs name it.
package services

// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

// Package logging provides centralized zerolog-based logging for kanjigraph.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Str("path", p).Msg("loading graph")
//	logging.Ctx(ctx).Debug().Str("kanji", k).Msg("query served")
//
// Long-lived components take a zerolog.Logger and tag it with their name
// (see WithComponent). HTTP middleware stores request_id and correlation_id
// in the request context, and Ctx adds them to every entry.
//
// SlogHandler adapts zerolog for libraries that only accept *slog.Logger.
//
// # Best Practices
//
// Always terminate log chains with .Msg() or .Send():
//
//	logging.Info().Int("nodes", n).Msg("graph loaded") // Correct
//	logging.Info().Int("nodes", n)                      // WRONG - log not emitted
package logging

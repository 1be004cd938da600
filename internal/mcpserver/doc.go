// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

// Package mcpserver exposes the similarity engine as Model Context Protocol
// tools, served over stdio by default.
//
// Tools: ranked_similar, primary_similar, deep_similar, kanji_info and
// neighborhood. Results are JSON text content. Invalid arguments, unknown
// kanji (kanji_info only), a missing graph and throttled calls are reported
// as tool errors (IsError) rather than protocol errors, so the calling model
// can read and react to them.
package mcpserver

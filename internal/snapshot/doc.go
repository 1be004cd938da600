// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

// Package snapshot persists a kanji graph in a BadgerDB directory.
//
// Layout:
//
//	meta:info       Info (JSON)
//	node:%08d       graph.Node (JSON), keyed by insertion sequence
//	edge:%08d       graph.Edge (JSON), keyed by insertion sequence
//
// Badger iterates keys in byte order, so the zero-padded sequence restores
// the original insertion order on load. Writing a snapshot replaces any
// previous content of the directory's database.
package snapshot

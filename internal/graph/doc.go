// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

// Package graph holds the in-memory kanji decomposition graph.
//
// Nodes are kanji or graphical components identified by their symbol. Edges
// point from a component to the compound it helps compose. A Store is built
// once (through a Builder or one of the artifact readers) and is read-only
// afterwards, so a single Store can be shared by any number of concurrent
// queries without locking.
//
// # Fallbacks
//
// Attribute accessors never fail:
//
//   - Level returns -1 for unknown nodes (the "not a tracked kanji" sentinel)
//   - Strokes returns 1 when the stroke count is unknown
//   - Readings returns empty lists for absent or malformed encodings
//   - Predecessors and Successors return nil for unknown nodes
//
// # Ordering
//
// Predecessor and successor lists preserve edge insertion order, and Nodes
// preserves node insertion order. Traversals built on top of the Store rely
// on this for deterministic output.
package graph

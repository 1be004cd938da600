// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

// Package algorithms implements the graph walks behind kanji similarity.
//
// # Algorithms
//
//   - DecayWalk: bidirectional walk that scores neighbors by accumulated
//     commonality penalty. Lower scores are more similar.
//   - BoundedWalk: exhaustive walk bounded by an integer step count that
//     also tracks the net decompose/compose direction of each neighbor.
//   - PrimarySelector: sibling kanji that share the highest-stroke component.
//
// # Thread Safety
//
// Walks only read the Graph. Every call owns its own frame stack and visited
// set, so one walker may serve concurrent queries against a shared graph.
package algorithms

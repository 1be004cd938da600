// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

// Package recommend answers kanji similarity queries over a component graph.
//
// # Architecture
//
// The Engine owns the live *graph.Store and three traversals from the
// algorithms subpackage:
//
//   - DecayWalk: ranked neighbors scored by degree-weighted cost (RankedSimilar)
//   - BoundedWalk: neighbors within a fixed step count (DeepSimilar)
//   - PrimarySelector: siblings via the component with most strokes (PrimarySimilar)
//
// Derived views (Neighborhood, Breakdown, Projection) are built from the same
// primitives. SimilarKanji applies the registered Reranker chain to the
// ranked list; the reranking subpackage provides the standard filters.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	engine.SetGraph(store, recommend.Source{Path: path, Format: "gexf"})
//	reranking.RegisterDefaults(engine)
//
//	ranked, err := engine.RankedSimilar(ctx, "時", 0.9)
//	similar, err := engine.SimilarKanji(ctx, "時", 0.9, 1.0)
//
// # Thread Safety
//
// The graph is immutable and swapped atomically by SetGraph. Each query
// walks its own frame stack and visited set, so queries never contend.
// Cached results are keyed by graph generation and copied on return.
//
// Unknown kanji are not errors: similarity queries return empty lists, and
// only Info reports ErrKanjiNotFound.
package recommend

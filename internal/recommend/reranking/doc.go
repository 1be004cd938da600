// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

// Package reranking implements post-processing for ranked similarity lists.
//
// A ranked list from the decay walk may contain the query kanji, repeat a
// neighbor at several scores, and run out to the full cost budget. The
// rerankers here turn it into a clean recommendation list:
//
//   - ScoreCeiling: drop items scoring above RerankRequest.MaxScore
//   - ExcludeQuery: drop the query kanji
//   - Distinct: keep the first (lowest scoring) occurrence of each kanji
//
// # Interface
//
// All rerankers implement the recommend.Reranker interface:
//
//	type Reranker interface {
//	    Name() string
//	    Rerank(ctx context.Context, req RerankRequest, items []Similar) []Similar
//	}
//
// # Usage Example
//
//	reranking.RegisterDefaults(engine)
//	similar, err := engine.SimilarKanji(ctx, "持", 0.9, 1.0)
//
// # Thread Safety
//
// All rerankers are stateless and safe for concurrent use. Each returns a
// new slice and never modifies its input.
package reranking

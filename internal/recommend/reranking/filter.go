// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

package reranking

import (
	"context"

	"github.com/tomtom215/kanjigraph/internal/recommend"
)

// ScoreCeiling drops items whose score exceeds the request's MaxScore.
type ScoreCeiling struct{}

// Name returns the reranker identifier.
func (ScoreCeiling) Name() string { return "score_ceiling" }

// Rerank keeps items with Score <= req.MaxScore.
func (ScoreCeiling) Rerank(_ context.Context, req recommend.RerankRequest, items []recommend.Similar) []recommend.Similar {
	return filter(items, func(it recommend.Similar) bool {
		return it.Score <= req.MaxScore
	})
}

// ExcludeQuery drops the query kanji, which the walk reaches again through
// its own neighbors.
type ExcludeQuery struct{}

// Name returns the reranker identifier.
func (ExcludeQuery) Name() string { return "exclude_query" }

// Rerank removes every item equal to req.Kanji.
func (ExcludeQuery) Rerank(_ context.Context, req recommend.RerankRequest, items []recommend.Similar) []recommend.Similar {
	return filter(items, func(it recommend.Similar) bool {
		return it.Kanji != req.Kanji
	})
}

// Distinct keeps the first occurrence of each kanji. On a list sorted by
// score that is the best score.
type Distinct struct{}

// Name returns the reranker identifier.
func (Distinct) Name() string { return "distinct" }

// Rerank removes repeated kanji, preserving order.
func (Distinct) Rerank(_ context.Context, _ recommend.RerankRequest, items []recommend.Similar) []recommend.Similar {
	seen := make(map[string]struct{}, len(items))
	return filter(items, func(it recommend.Similar) bool {
		if _, dup := seen[it.Kanji]; dup {
			return false
		}
		seen[it.Kanji] = struct{}{}
		return true
	})
}

// Registrar accepts rerankers; *recommend.Engine implements it.
type Registrar interface {
	RegisterReranker(rr recommend.Reranker)
}

// Defaults returns the standard chain in application order.
func Defaults() []recommend.Reranker {
	return []recommend.Reranker{ScoreCeiling{}, ExcludeQuery{}, Distinct{}}
}

// RegisterDefaults registers the standard chain on r.
func RegisterDefaults(r Registrar) {
	for _, rr := range Defaults() {
		r.RegisterReranker(rr)
	}
}

func filter(items []recommend.Similar, keep func(recommend.Similar) bool) []recommend.Similar {
	out := make([]recommend.Similar, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

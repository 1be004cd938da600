// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Tool names.
const (
	ToolRankedSimilar  = "ranked_similar"
	ToolPrimarySimilar = "primary_similar"
	ToolDeepSimilar    = "deep_similar"
	ToolKanjiInfo      = "kanji_info"
	ToolNeighborhood   = "neighborhood"
)

// RankedSimilarArgs are the ranked_similar arguments. Nil optionals take the
// engine's configured defaults.
type RankedSimilarArgs struct {
	Kanji      string   `json:"kanji" jsonschema:"the kanji to find look-alikes for" validate:"required,max=16"`
	DepthLimit *float64 `json:"depth_limit,omitempty" jsonschema:"maximum accumulated walk cost" validate:"omitempty,gte=0,lte=10"`
	Distinct   bool     `json:"distinct,omitempty" jsonschema:"drop the query kanji and repeated kanji, keep scores up to max_score"`
	MaxScore   *float64 `json:"max_score,omitempty" jsonschema:"score ceiling applied when distinct is set" validate:"omitempty,gte=0"`
}

// PrimarySimilarArgs are the primary_similar arguments.
type PrimarySimilarArgs struct {
	Kanji      string `json:"kanji" jsonschema:"the kanji whose primary component siblings are wanted" validate:"required,max=16"`
	LevelLimit *int   `json:"level_limit,omitempty" jsonschema:"only return kanji at or above this level; -1 includes untracked components" validate:"omitempty,min=-1,max=1000"`
}

// DeepSimilarArgs are the deep_similar arguments.
type DeepSimilarArgs struct {
	Kanji      string `json:"kanji" jsonschema:"the kanji to start the bounded walk from" validate:"required,max=16"`
	DepthLimit *int   `json:"depth_limit,omitempty" jsonschema:"maximum number of component steps" validate:"omitempty,min=0,max=8"`
	LevelLimit *int   `json:"level_limit,omitempty" jsonschema:"only return kanji at or above this level; -1 includes untracked components" validate:"omitempty,min=-1,max=1000"`
}

// KanjiArgs identify a single kanji.
type KanjiArgs struct {
	Kanji string `json:"kanji" jsonschema:"a single kanji or component" validate:"required,max=16"`
}

// NeighborhoodArgs are the neighborhood arguments.
type NeighborhoodArgs struct {
	Kanji      string `json:"kanji" jsonschema:"the kanji to describe" validate:"required,max=16"`
	LevelLimit *int   `json:"level_limit,omitempty" jsonschema:"level filter for the similar list" validate:"omitempty,min=-1,max=1000"`
}

func (s *Server) registerTools() {
	cfg := s.engine.Config()

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        ToolRankedSimilar,
		Description: "Ranks kanji that look like the given kanji by walking shared components. Lower scores are more similar.",
	}, call(s, ToolRankedSimilar, func(ctx context.Context, a *RankedSimilarArgs) (any, error) {
		depth := valueOr(a.DepthLimit, cfg.Decay.DepthLimit)
		if a.Distinct {
			return s.engine.SimilarKanji(ctx, a.Kanji, depth, valueOr(a.MaxScore, cfg.Filter.MaxScore))
		}
		return s.engine.RankedSimilar(ctx, a.Kanji, depth)
	}))

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        ToolPrimarySimilar,
		Description: "Returns up to two kanji sharing the given kanji's most complex component, at or above a level.",
	}, call(s, ToolPrimarySimilar, func(ctx context.Context, a *PrimarySimilarArgs) (any, error) {
		return s.engine.PrimarySimilar(ctx, a.Kanji, valueOr(a.LevelLimit, cfg.Primary.LevelLimit))
	}))

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        ToolDeepSimilar,
		Description: "Walks up to depth_limit component steps from the kanji and lists the kanji reached with their depth.",
	}, call(s, ToolDeepSimilar, func(ctx context.Context, a *DeepSimilarArgs) (any, error) {
		return s.engine.DeepSimilar(ctx, a.Kanji,
			valueOr(a.DepthLimit, cfg.Bounded.DepthLimit),
			valueOr(a.LevelLimit, cfg.Bounded.LevelLimit))
	}))

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        ToolKanjiInfo,
		Description: "Describes a kanji: level, stroke count, readings, example word, components and compounds.",
	}, call(s, ToolKanjiInfo, func(_ context.Context, a *KanjiArgs) (any, error) {
		return s.engine.Info(a.Kanji)
	}))

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        ToolNeighborhood,
		Description: "Lists a kanji's components by stroke count, its compounds, and every kanji sharing its primary component.",
	}, call(s, ToolNeighborhood, func(ctx context.Context, a *NeighborhoodArgs) (any, error) {
		return s.engine.Neighborhood(ctx, a.Kanji, valueOr(a.LevelLimit, cfg.Primary.LevelLimit))
	}))
}

func valueOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

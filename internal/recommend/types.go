// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

package recommend

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNoGraph is returned by queries issued before a graph was loaded.
	ErrNoGraph = errors.New("no graph loaded")

	// ErrKanjiNotFound is returned by lookups that need the node to exist.
	// Similarity queries return empty results for unknown kanji instead.
	ErrKanjiNotFound = errors.New("kanji not found")
)

// Similar is one entry of a ranked similarity list. Lower Score is more
// similar; the start kanji's direct neighbors score 0.
type Similar struct {
	Kanji string  `json:"kanji"`
	Score float64 `json:"score"`
}

// DeepSimilar is one entry of the bounded walk.
type DeepSimilar struct {
	Kanji   string `json:"kanji"`
	Depth   int    `json:"depth"`
	Balance int    `json:"balance"`
}

// KanjiInfo describes a single node with its adjacency.
type KanjiInfo struct {
	Kanji      string   `json:"kanji"`
	Level      int      `json:"level"`
	Tracked    bool     `json:"tracked"`
	Strokes    *int     `json:"strokes,omitempty"`
	ReadingOn  []string `json:"reading_on"`
	ReadingKun []string `json:"reading_kun"`
	CommonWord *string  `json:"common_word,omitempty"`
	Components []string `json:"components"`
	Compounds  []string `json:"compounds"`
}

// Neighborhood is a kanji's components (by stroke count, descending), its
// compounds, and the uncapped sibling list of its primary component.
type Neighborhood struct {
	Kanji      string   `json:"kanji"`
	Components []string `json:"components"`
	Compounds  []string `json:"compounds"`
	Similar    []string `json:"similar"`
}

// Relation compares a sibling's level with the queried kanji's level.
// Higher levels are easier.
type Relation string

const (
	RelationEasier Relation = "easier"
	RelationHarder Relation = "harder"
	RelationSame   Relation = "same"
)

func relationOf(sibling, kanji int) Relation {
	switch {
	case sibling > kanji:
		return RelationEasier
	case sibling < kanji:
		return RelationHarder
	default:
		return RelationSame
	}
}

// BreakdownSibling is another kanji sharing a component.
type BreakdownSibling struct {
	Kanji      string   `json:"kanji"`
	Level      int      `json:"level"`
	Relation   Relation `json:"relation"`
	ReadingOn  []string `json:"reading_on"`
	ReadingKun []string `json:"reading_kun"`
}

// ComponentBreakdown lists the siblings reachable through one component,
// sorted by level descending.
type ComponentBreakdown struct {
	Component string             `json:"component"`
	Strokes   int                `json:"strokes"`
	Siblings  []BreakdownSibling `json:"siblings"`
}

// ProjectionEdge is an undirected weighted edge of a similarity projection.
type ProjectionEdge struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Weight float64 `json:"weight"`
}

// Projection is the star-shaped weighted graph around a kanji used by
// force-directed layouts. Weight is 1/(score+0.1).
type Projection struct {
	Kanji string           `json:"kanji"`
	Nodes []string         `json:"nodes"`
	Edges []ProjectionEdge `json:"edges"`
}

// Source identifies where the live graph came from.
type Source struct {
	Path   string `json:"source"`
	Format string `json:"format"`
}

// GraphStats summarizes the live graph.
type GraphStats struct {
	Nodes    int       `json:"nodes"`
	Edges    int       `json:"edges"`
	Source   string    `json:"source"`
	Format   string    `json:"format"`
	LoadedAt time.Time `json:"loaded_at"`
}

// RerankRequest carries the query parameters rerankers may need.
type RerankRequest struct {
	// Kanji is the query kanji.
	Kanji string

	// MaxScore is the highest score to keep.
	MaxScore float64
}

// Reranker post-processes a ranked similarity list.
type Reranker interface {
	// Name returns the reranker identifier (e.g., "distinct").
	Name() string

	// Rerank returns the filtered or reordered list. Implementations must
	// not modify items in place.
	Rerank(ctx context.Context, req RerankRequest, items []Similar) []Similar
}

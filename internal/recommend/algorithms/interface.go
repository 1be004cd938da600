// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

package algorithms

import (
	"context"
)

// Graph is the read-only view of the decomposition graph used by walks.
// *graph.Store satisfies it.
type Graph interface {
	// Predecessors returns the components of symbol.
	Predecessors(symbol string) []string

	// Successors returns the compounds that contain symbol.
	Successors(symbol string) []string

	// OutDegree returns len(Successors(symbol)).
	OutDegree(symbol string) int

	// Level returns the difficulty tier, -1 when untracked or absent.
	Level(symbol string) int

	// Strokes returns the stroke count, 1 when unknown.
	Strokes(symbol string) int
}

// Direction records which kind of edge the walk followed to reach a node.
type Direction uint8

const (
	// DirectionNone marks the start node.
	DirectionNone Direction = iota
	// DirectionFromPredecessor means the node was reached by stepping to a component.
	DirectionFromPredecessor
	// DirectionFromSuccessor means the node was reached by stepping to a compound.
	DirectionFromSuccessor
)

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case DirectionNone:
		return "none"
	case DirectionFromPredecessor:
		return "from_predecessor"
	case DirectionFromSuccessor:
		return "from_successor"
	default:
		return "unknown"
	}
}

// cancelCheckInterval is how many expansions run between context checks.
const cancelCheckInterval = 1024

// ContextCancelled checks if the context has been canceled.
func ContextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

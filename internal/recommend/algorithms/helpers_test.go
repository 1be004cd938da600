// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

package algorithms

import (
	"fmt"
	"testing"

	"github.com/tomtom215/kanjigraph/internal/graph"
)

// testNode describes a node for buildGraph. strokes <= 0 means unknown.
type testNode struct {
	symbol  string
	level   int
	strokes int
}

// buildGraph creates a store from nodes (inserted first, in order) and
// edges given as source/target pairs.
func buildGraph(t *testing.T, nodes []testNode, edges [][2]string) *graph.Store {
	t.Helper()
	b := graph.NewBuilder()
	for _, n := range nodes {
		var strokes *int
		if n.strokes > 0 {
			strokes = graph.IntPtr(n.strokes)
		}
		b.AddNode(graph.Node{Symbol: n.symbol, Level: n.level, Strokes: strokes})
	}
	for _, e := range edges {
		b.AddEdge(e[0], e[1])
	}
	return b.Build()
}

// chainGraph builds n0 -> n1 -> ... -> n(length-1), all tracked.
func chainGraph(t *testing.T, length int) *graph.Store {
	t.Helper()
	b := graph.NewBuilder()
	for i := 0; i < length; i++ {
		b.AddNode(graph.Node{Symbol: fmt.Sprintf("n%d", i), Level: 5})
	}
	for i := 1; i < length; i++ {
		b.AddEdge(fmt.Sprintf("n%d", i-1), fmt.Sprintf("n%d", i))
	}
	return b.Build()
}

// meshGraph builds a deterministic graph of 10 components shared by 30
// kanji, with a few components that are themselves tracked kanji.
func meshGraph(t *testing.T) *graph.Store {
	t.Helper()
	b := graph.NewBuilder()
	for i := 0; i < 30; i++ {
		b.AddNode(graph.Node{Symbol: fmt.Sprintf("k%d", i), Level: i % 10, Strokes: graph.IntPtr(i%7 + 2)})
	}
	for i := 0; i < 10; i++ {
		level := graph.UntrackedLevel
		if i%3 == 0 {
			level = 8
		}
		b.AddNode(graph.Node{Symbol: fmt.Sprintf("c%d", i), Level: level, Strokes: graph.IntPtr(i + 1)})
	}
	for i := 0; i < 30; i++ {
		k := fmt.Sprintf("k%d", i)
		b.AddEdge(fmt.Sprintf("c%d", (i*7)%10), k)
		b.AddEdge(fmt.Sprintf("c%d", (i*3+1)%10), k)
	}
	// Tracked kanji that also serve as components.
	b.AddEdge("k1", "k12")
	b.AddEdge("k2", "k25")
	return b.Build()
}

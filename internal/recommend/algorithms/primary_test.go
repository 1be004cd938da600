// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

package algorithms

import (
	"slices"
	"testing"
)

func TestPrimarySelector_SharedComponentExample(t *testing.T) {
	t.Parallel()

	g := buildGraph(t,
		[]testNode{{"A", 7, 2}, {"B", 5, 0}, {"C", 5, 0}},
		[][2]string{{"A", "B"}, {"A", "C"}},
	)
	got := NewPrimarySelector(DefaultPrimaryConfig()).Select(g, "B", 5)
	if !slices.Equal(got, []string{"C"}) {
		t.Errorf("Select(B, 5) = %v, want [C]", got)
	}
}

func TestPrimarySelector_Select(t *testing.T) {
	t.Parallel()

	// K is built from P1 (3 strokes), P2 (8 strokes) and P3 (unknown).
	// P2 is shared with S1..S4 at different levels.
	g := buildGraph(t,
		[]testNode{
			{"K", 6, 0},
			{"P1", 4, 3}, {"P2", -1, 8}, {"P3", 2, 0},
			{"S1", 9, 0}, {"S2", 2, 0}, {"S3", 6, 0}, {"S4", 7, 0},
			{"Q", 9, 0},
		},
		[][2]string{
			{"P1", "K"}, {"P2", "K"}, {"P3", "K"},
			{"P2", "S1"}, {"P2", "S2"}, {"P2", "S3"}, {"P2", "S4"},
			{"P1", "Q"},
		},
	)
	sel := NewPrimarySelector(DefaultPrimaryConfig())

	tests := []struct {
		name       string
		kanji      string
		levelLimit int
		want       []string
	}{
		{"caps at two", "K", 0, []string{"S1", "S2"}},
		{"level filter before cap", "K", 5, []string{"S1", "S3"}},
		{"filter leaves one", "K", 8, []string{"S1"}},
		{"filter leaves none", "K", 10, []string{}},
		{"no components", "P2", 0, []string{}},
		{"absent kanji", "missing", 0, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sel.Select(g, tt.kanji, tt.levelLimit)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Select(%s, %d) = %v, want %v", tt.kanji, tt.levelLimit, got, tt.want)
			}
			if len(got) > 2 {
				t.Errorf("Select returned %d items", len(got))
			}
			for _, s := range got {
				if s == tt.kanji {
					t.Errorf("Select included the query kanji")
				}
				if g.Level(s) < tt.levelLimit {
					t.Errorf("Select returned %s below level %d", s, tt.levelLimit)
				}
			}
		})
	}

	if got := Siblings(g, "K", 0); !slices.Equal(got, []string{"S1", "S2", "S3", "S4"}) {
		t.Errorf("Siblings(K, 0) = %v", got)
	}
}

func TestSortedComponents_StableByStrokes(t *testing.T) {
	t.Parallel()

	g := buildGraph(t,
		[]testNode{{"K", 5, 0}, {"a", 5, 4}, {"b", 5, 0}, {"c", 5, 4}, {"d", 5, 9}},
		[][2]string{{"a", "K"}, {"b", "K"}, {"c", "K"}, {"d", "K"}},
	)

	got := SortedComponents(g, "K")
	if want := []string{"d", "a", "c", "b"}; !slices.Equal(got, want) {
		t.Errorf("SortedComponents(K) = %v, want %v", got, want)
	}
	if preds := g.Predecessors("K"); !slices.Equal(preds, []string{"a", "b", "c", "d"}) {
		t.Errorf("sorting mutated the store: %v", preds)
	}

	primary, ok := PrimaryComponent(g, "K")
	if !ok || primary != "d" {
		t.Errorf("PrimaryComponent(K) = %q, %v", primary, ok)
	}
	if _, ok := PrimaryComponent(g, "d"); ok {
		t.Error("PrimaryComponent(d) reported a component")
	}
}

func TestNewPrimarySelector_Defaults(t *testing.T) {
	t.Parallel()

	sel := NewPrimarySelector(PrimaryConfig{})
	if sel.Config().MaxResults != 2 {
		t.Errorf("MaxResults = %d, want 2", sel.Config().MaxResults)
	}
	if sel.Name() != "primary" {
		t.Errorf("Name() = %q", sel.Name())
	}
}

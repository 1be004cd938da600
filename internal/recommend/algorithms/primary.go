// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

package algorithms

import (
	"cmp"
	"slices"
)

// PrimaryConfig contains configuration for the primary component selector.
type PrimaryConfig struct {
	// MaxResults caps the sibling list.
	// Default: 2.
	MaxResults int

	// LevelLimit is the default minimum sibling level.
	// Default: 0.
	LevelLimit int
}

// DefaultPrimaryConfig returns default selector configuration.
func DefaultPrimaryConfig() PrimaryConfig {
	return PrimaryConfig{
		MaxResults: 2,
		LevelLimit: 0,
	}
}

// PrimarySelector picks the structurally dominant component of a kanji, the
// one with the most strokes, and recommends other kanji built on it.
type PrimarySelector struct {
	config PrimaryConfig
}

// NewPrimarySelector creates a selector. A non-positive MaxResults falls
// back to the default.
func NewPrimarySelector(cfg PrimaryConfig) *PrimarySelector {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = DefaultPrimaryConfig().MaxResults
	}
	return &PrimarySelector{config: cfg}
}

// Name returns the algorithm identifier.
func (s *PrimarySelector) Name() string {
	return "primary"
}

// Config returns the selector configuration.
func (s *PrimarySelector) Config() PrimaryConfig {
	return s.config
}

// Select returns at most MaxResults siblings of kanji via its primary
// component, each with level >= levelLimit. The result never contains kanji
// and is empty when kanji has no components.
func (s *PrimarySelector) Select(g Graph, kanji string, levelLimit int) []string {
	siblings := Siblings(g, kanji, levelLimit)
	if len(siblings) > s.config.MaxResults {
		siblings = siblings[:s.config.MaxResults]
	}
	return siblings
}

// SortedComponents returns the components of kanji ordered by stroke count,
// highest first. Equal counts keep graph order. The slice is freshly allocated.
func SortedComponents(g Graph, kanji string) []string {
	components := slices.Clone(g.Predecessors(kanji))
	slices.SortStableFunc(components, func(a, b string) int {
		return cmp.Compare(g.Strokes(b), g.Strokes(a))
	})
	return components
}

// PrimaryComponent returns the highest-stroke component of kanji.
func PrimaryComponent(g Graph, kanji string) (string, bool) {
	components := SortedComponents(g, kanji)
	if len(components) == 0 {
		return "", false
	}
	return components[0], true
}

// ComponentSiblings returns the compounds of component other than kanji, in
// graph order.
func ComponentSiblings(g Graph, component, kanji string) []string {
	succs := g.Successors(component)
	out := make([]string, 0, len(succs))
	for _, s := range succs {
		if s != kanji {
			out = append(out, s)
		}
	}
	return out
}

// Siblings returns every sibling of kanji through its primary component with
// level >= levelLimit, uncapped.
func Siblings(g Graph, kanji string, levelLimit int) []string {
	primary, ok := PrimaryComponent(g, kanji)
	if !ok {
		return []string{}
	}
	candidates := ComponentSiblings(g, primary, kanji)
	out := candidates[:0]
	for _, c := range candidates {
		if g.Level(c) >= levelLimit {
			out = append(out, c)
		}
	}
	return out
}

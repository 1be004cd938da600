// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

package algorithms

import (
	"cmp"
	"context"
	"math"
	"slices"
)

// DecayConfig contains configuration for the decay-weighted walk.
type DecayConfig struct {
	// DepthLimit is the default cost budget. A branch ends once its
	// accumulated cost exceeds it.
	// Default: 0.9.
	DepthLimit float64

	// DegreeScale divides the out-degree before tanh is applied.
	// Default: 100.
	DegreeScale float64

	// MaxSteps caps the number of node expansions per walk.
	// Default: 1,000,000.
	MaxSteps int
}

// DefaultDecayConfig returns default decay walk configuration.
func DefaultDecayConfig() DecayConfig {
	return DecayConfig{
		DepthLimit:  0.9,
		DegreeScale: 100,
		MaxSteps:    1_000_000,
	}
}

// Scored is a neighbor found by the decay walk. Score is the accumulated
// cost at which it was reached; lower is more similar.
type Scored struct {
	Symbol string  `json:"kanji"`
	Score  float64 `json:"score"`
}

// DecayResult is the outcome of one decay walk.
type DecayResult struct {
	// Items are sorted ascending by Score. Ties keep discovery order.
	Items []Scored

	// Steps is the number of nodes expanded.
	Steps int

	// Truncated is set when MaxSteps stopped the walk early.
	Truncated bool
}

// DecayWalk ranks neighbors of a kanji by structural similarity.
//
// Walking through a component costs tanh(outDegree/DegreeScale), so shared
// generic components (large fan-out) cost nearly 1 while rare ones cost
// nearly 0. The walk never immediately reverses the edge that led to a node:
// after stepping to a component it does not step back down to compounds from
// there in the same branch, and vice versa.
//
// The accumulated cost is both the exploration budget and the returned score.
type DecayWalk struct {
	config DecayConfig
}

// NewDecayWalk creates a decay walk. Non-positive fields fall back to defaults.
func NewDecayWalk(cfg DecayConfig) *DecayWalk {
	def := DefaultDecayConfig()
	if cfg.DegreeScale <= 0 {
		cfg.DegreeScale = def.DegreeScale
	}
	if cfg.MaxSteps <= 0 {
		cfg.MaxSteps = def.MaxSteps
	}
	if cfg.DepthLimit < 0 {
		cfg.DepthLimit = def.DepthLimit
	}
	return &DecayWalk{config: cfg}
}

// Name returns the algorithm identifier.
func (w *DecayWalk) Name() string {
	return "decay"
}

// Config returns the walk configuration.
func (w *DecayWalk) Config() DecayConfig {
	return w.config
}

type decayFrame struct {
	node  string
	cost  float64
	from  Direction
	preds []string
	succs []string
	// phase 0 scans preds, phase 1 scans succs.
	phase uint8
	idx   int
}

type scoredKey struct {
	symbol string
	cost   float64
}

// Walk runs the decay walk from start with the given cost budget.
//
// A start node that is absent or isolated yields an empty result. The only
// error is the context error when ctx is canceled mid-walk.
func (w *DecayWalk) Walk(ctx context.Context, g Graph, start string, depthLimit float64) (DecayResult, error) {
	res := DecayResult{Items: []Scored{}}
	seen := make(map[scoredKey]struct{})

	stack := []decayFrame{w.enter(g, start, 0, DirectionNone)}
	res.Steps = 1

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.cost > depthLimit {
			stack = stack[:len(stack)-1]
			continue
		}

		child, ok := w.advance(g, top, seen, &res)
		if !ok {
			stack = stack[:len(stack)-1]
			continue
		}

		if res.Steps >= w.config.MaxSteps {
			res.Truncated = true
			break
		}
		res.Steps++
		if res.Steps%cancelCheckInterval == 0 && ContextCancelled(ctx) {
			return DecayResult{}, ctx.Err()
		}
		stack = append(stack, child)
	}

	slices.SortStableFunc(res.Items, func(a, b Scored) int {
		return cmp.Compare(a.Score, b.Score)
	})
	return res, nil
}

func (w *DecayWalk) enter(g Graph, node string, cost float64, from Direction) decayFrame {
	return decayFrame{
		node:  node,
		cost:  cost,
		from:  from,
		preds: g.Predecessors(node),
		succs: g.Successors(node),
	}
}

// advance scans the frame until it finds a neighbor to descend into.
// It records neighbors along the way and reports false once the frame is
// exhausted.
func (w *DecayWalk) advance(g Graph, f *decayFrame, seen map[scoredKey]struct{}, res *DecayResult) (decayFrame, bool) {
	for f.phase == 0 && f.idx < len(f.preds) {
		c := f.preds[f.idx]
		f.idx++
		if !w.visit(g, c, f.cost, seen, res) {
			continue
		}
		if f.from == DirectionFromSuccessor {
			continue
		}
		penalty := w.penalty(g.OutDegree(c))
		return w.enter(g, c, f.cost+penalty, DirectionFromPredecessor), true
	}
	if f.phase == 0 {
		f.phase, f.idx = 1, 0
	}

	for f.idx < len(f.succs) {
		d := f.succs[f.idx]
		f.idx++
		if !w.visit(g, d, f.cost, seen, res) {
			continue
		}
		if f.from == DirectionFromPredecessor {
			continue
		}
		penalty := w.penalty(g.OutDegree(f.node))
		return w.enter(g, d, f.cost+penalty, DirectionFromSuccessor), true
	}
	return decayFrame{}, false
}

// visit records (symbol, cost) for tracked nodes. It reports false when the
// pair was already recorded, in which case the neighbor is skipped entirely.
func (w *DecayWalk) visit(g Graph, symbol string, cost float64, seen map[scoredKey]struct{}, res *DecayResult) bool {
	key := scoredKey{symbol: symbol, cost: cost}
	if _, dup := seen[key]; dup {
		return false
	}
	if g.Level(symbol) >= 0 {
		res.Items = append(res.Items, Scored{Symbol: symbol, Score: cost})
		seen[key] = struct{}{}
	}
	return true
}

func (w *DecayWalk) penalty(outDegree int) float64 {
	return math.Tanh(float64(outDegree) / w.config.DegreeScale)
}

// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

package algorithms

import (
	"context"
)

// BoundedConfig contains configuration for the bounded integer walk.
type BoundedConfig struct {
	// DepthLimit is the default number of structural steps.
	// Default: 2.
	DepthLimit int

	// LevelLimit is the default minimum level a neighbor needs to be
	// reported. Exploration continues through lower-level nodes.
	// Default: 0.
	LevelLimit int

	// MaxSteps caps the number of node expansions per walk.
	// Default: 1,000,000.
	MaxSteps int
}

// DefaultBoundedConfig returns default bounded walk configuration.
func DefaultBoundedConfig() BoundedConfig {
	return BoundedConfig{
		DepthLimit: 2,
		LevelLimit: 0,
		MaxSteps:   1_000_000,
	}
}

// Step is a neighbor found by the bounded walk.
type Step struct {
	Symbol string `json:"kanji"`

	// Depth is the number of steps taken before the neighbor was reached.
	Depth int `json:"depth"`

	// Balance is the net direction: -1 per step to a component, +1 per step
	// to a compound. Negative values are simpler than the start.
	Balance int `json:"balance"`
}

// BoundedResult is the outcome of one bounded walk.
type BoundedResult struct {
	// Items are in discovery order and may repeat a step.
	Items []Step

	// Steps is the number of nodes expanded.
	Steps int

	// Truncated is set when MaxSteps stopped the walk early.
	Truncated bool
}

// BoundedWalk explores every neighbor within a fixed number of steps.
//
// Unlike DecayWalk it has no backtrack guard and returns results unsorted.
// Components are always recorded and walked into. A compound is skipped
// when a recorded step holds it at the current depth with the current
// (not the stepped) balance. Balance and depth share parity along every
// path while recorded steps carry the opposite parity, so that check never
// matches and nodes reachable along several paths are reported once per
// path.
type BoundedWalk struct {
	config BoundedConfig
}

// NewBoundedWalk creates a bounded walk. A non-positive MaxSteps falls back
// to the default.
func NewBoundedWalk(cfg BoundedConfig) *BoundedWalk {
	if cfg.MaxSteps <= 0 {
		cfg.MaxSteps = DefaultBoundedConfig().MaxSteps
	}
	return &BoundedWalk{config: cfg}
}

// Name returns the algorithm identifier.
func (w *BoundedWalk) Name() string {
	return "bounded"
}

// Config returns the walk configuration.
func (w *BoundedWalk) Config() BoundedConfig {
	return w.config
}

type boundedFrame struct {
	node    string
	depth   int
	balance int
	preds   []string
	succs   []string
	phase   uint8
	idx     int
}

// boundedSeen holds every recorded step for the compound check.
type boundedSeen map[Step]struct{}

func (s boundedSeen) add(st Step) {
	s[st] = struct{}{}
}

// Walk runs the bounded walk from start.
//
// Neighbors with level below levelLimit are walked through but not
// reported. The only error is the context error when ctx is canceled.
func (w *BoundedWalk) Walk(ctx context.Context, g Graph, start string, depthLimit, levelLimit int) (BoundedResult, error) {
	res := BoundedResult{Items: []Step{}}
	seen := make(boundedSeen)

	stack := []boundedFrame{w.enter(g, start, 0, 0)}
	res.Steps = 1

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.depth > depthLimit {
			stack = stack[:len(stack)-1]
			continue
		}

		child, ok := w.advance(g, top, levelLimit, seen, &res)
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
			return BoundedResult{}, ctx.Err()
		}
		stack = append(stack, child)
	}
	return res, nil
}

func (w *BoundedWalk) enter(g Graph, node string, depth, balance int) boundedFrame {
	return boundedFrame{
		node:    node,
		depth:   depth,
		balance: balance,
		preds:   g.Predecessors(node),
		succs:   g.Successors(node),
	}
}

func (w *BoundedWalk) advance(g Graph, f *boundedFrame, levelLimit int, seen boundedSeen, res *BoundedResult) (boundedFrame, bool) {
	for f.phase == 0 && f.idx < len(f.preds) {
		c := f.preds[f.idx]
		f.idx++
		if g.Level(c) >= levelLimit {
			st := Step{Symbol: c, Depth: f.depth, Balance: f.balance - 1}
			res.Items = append(res.Items, st)
			seen.add(st)
		}
		return w.enter(g, c, f.depth+1, f.balance-1), true
	}
	if f.phase == 0 {
		f.phase, f.idx = 1, 0
	}

	for f.idx < len(f.succs) {
		d := f.succs[f.idx]
		f.idx++
		if _, dup := seen[Step{Symbol: d, Depth: f.depth, Balance: f.balance}]; dup {
			continue
		}
		if g.Level(d) >= levelLimit {
			st := Step{Symbol: d, Depth: f.depth, Balance: f.balance + 1}
			res.Items = append(res.Items, st)
			seen.add(st)
		}
		return w.enter(g, d, f.depth+1, f.balance+1), true
	}
	return boundedFrame{}, false
}

// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

package graph

import (
	"errors"
)

// ErrEmptyGraph is returned by artifact readers that decode a graph without nodes.
var ErrEmptyGraph = errors.New("graph has no nodes")

// Edge is a directed component -> compound relation.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Store is an immutable kanji decomposition graph.
// It is safe for concurrent use because no mutation path exists after Build.
type Store struct {
	nodes []Node
	index map[string]int
	preds map[string][]string
	succs map[string][]string
	edges []Edge
}

// Len returns the number of nodes.
func (s *Store) Len() int {
	return len(s.nodes)
}

// EdgeCount returns the number of edges.
func (s *Store) EdgeCount() int {
	return len(s.edges)
}

// Has reports whether the symbol is a node of the graph.
func (s *Store) Has(symbol string) bool {
	_, ok := s.index[symbol]
	return ok
}

// Node returns a copy of the node with the given symbol.
func (s *Store) Node(symbol string) (Node, bool) {
	i, ok := s.index[symbol]
	if !ok {
		return Node{}, false
	}
	return s.nodes[i].clone(), true
}

// Nodes returns copies of all nodes in insertion order.
func (s *Store) Nodes() []Node {
	out := make([]Node, len(s.nodes))
	for i := range s.nodes {
		out[i] = s.nodes[i].clone()
	}
	return out
}

// Symbols returns all node symbols in insertion order.
func (s *Store) Symbols() []string {
	out := make([]string, len(s.nodes))
	for i := range s.nodes {
		out[i] = s.nodes[i].Symbol
	}
	return out
}

// Edges returns all edges in insertion order.
func (s *Store) Edges() []Edge {
	out := make([]Edge, len(s.edges))
	copy(out, s.edges)
	return out
}

// Predecessors returns the components of symbol in edge insertion order.
// The returned slice is shared with the store and must not be modified.
func (s *Store) Predecessors(symbol string) []string {
	return clip(s.preds[symbol])
}

// Successors returns the compounds built from symbol in edge insertion order.
// The returned slice is shared with the store and must not be modified.
func (s *Store) Successors(symbol string) []string {
	return clip(s.succs[symbol])
}

// OutDegree returns the number of compounds built from symbol.
func (s *Store) OutDegree(symbol string) int {
	return len(s.succs[symbol])
}

// Level returns the difficulty tier of symbol, or UntrackedLevel if unknown.
func (s *Store) Level(symbol string) int {
	i, ok := s.index[symbol]
	if !ok {
		return UntrackedLevel
	}
	return s.nodes[i].Level
}

// Strokes returns the stroke count of symbol, or DefaultStrokes if unknown.
func (s *Store) Strokes(symbol string) int {
	i, ok := s.index[symbol]
	if !ok {
		return DefaultStrokes
	}
	return s.nodes[i].StrokeCount()
}

// Readings returns the decoded on and kun readings of symbol.
// Both lists are empty (never nil) when absent.
func (s *Store) Readings(symbol string) (on, kun []string) {
	i, ok := s.index[symbol]
	if !ok {
		return []string{}, []string{}
	}
	n := &s.nodes[i]
	on, kun = []string{}, []string{}
	if n.ReadingOn != nil {
		on = ParseReadings(*n.ReadingOn)
	}
	if n.ReadingKun != nil {
		kun = ParseReadings(*n.ReadingKun)
	}
	return on, kun
}

// CommonWord returns the example word recorded for symbol.
func (s *Store) CommonWord(symbol string) (string, bool) {
	i, ok := s.index[symbol]
	if !ok || s.nodes[i].CommonWord == nil {
		return "", false
	}
	return *s.nodes[i].CommonWord, true
}

// clip limits capacity so appends by callers never write into the store.
func clip(s []string) []string {
	return s[:len(s):len(s)]
}

// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

package graph

// Builder accumulates nodes and edges and freezes them into a Store.
// A Builder is not safe for concurrent use.
type Builder struct {
	nodes    []Node
	index    map[string]int
	preds    map[string][]string
	succs    map[string][]string
	edges    []Edge
	edgeSeen map[Edge]struct{}
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		index:    make(map[string]int),
		preds:    make(map[string][]string),
		succs:    make(map[string][]string),
		edgeSeen: make(map[Edge]struct{}),
	}
}

// Len returns the number of nodes added so far.
func (b *Builder) Len() int {
	return len(b.nodes)
}

// AddNode inserts n, or replaces the attributes of an existing node with the
// same symbol while keeping its original insertion position.
func (b *Builder) AddNode(n Node) {
	if i, ok := b.index[n.Symbol]; ok {
		b.nodes[i] = n
		return
	}
	b.index[n.Symbol] = len(b.nodes)
	b.nodes = append(b.nodes, n)
}

// AddKanji records an examined kanji.
//
// A kanji seen for the first time is inserted with all given attributes. For
// a kanji already present (for instance auto-inserted as a component) level
// and strokes are overwritten, while readings are only overwritten when the
// new value is non-empty.
func (b *Builder) AddKanji(symbol string, level int, readingOn, readingKun string, strokes *int) {
	i, ok := b.index[symbol]
	if !ok {
		b.AddNode(Node{
			Symbol:     symbol,
			Level:      level,
			Strokes:    strokes,
			ReadingOn:  optionalString(readingOn),
			ReadingKun: optionalString(readingKun),
		})
		return
	}

	n := &b.nodes[i]
	n.Level = level
	n.Strokes = strokes
	if readingOn != "" {
		n.ReadingOn = StringPtr(readingOn)
	}
	if readingKun != "" {
		n.ReadingKun = StringPtr(readingKun)
	}
}

// AddComponent links component -> kanji. A component that is not yet a node
// is inserted with UntrackedLevel. Duplicate edges are ignored.
func (b *Builder) AddComponent(component, kanji string) {
	if _, ok := b.index[component]; !ok {
		b.AddNode(Node{Symbol: component, Level: UntrackedLevel})
	}
	b.AddEdge(component, kanji)
}

// AddEdge links source -> target, inserting untracked nodes for unknown
// endpoints. Duplicate edges are ignored.
func (b *Builder) AddEdge(source, target string) {
	e := Edge{Source: source, Target: target}
	if _, dup := b.edgeSeen[e]; dup {
		return
	}
	for _, sym := range [2]string{source, target} {
		if _, ok := b.index[sym]; !ok {
			b.AddNode(Node{Symbol: sym, Level: UntrackedLevel})
		}
	}
	b.edgeSeen[e] = struct{}{}
	b.edges = append(b.edges, e)
	b.succs[source] = append(b.succs[source], target)
	b.preds[target] = append(b.preds[target], source)
}

// SetCommonWord attaches an example word to an existing node.
// It reports false when the node does not exist.
func (b *Builder) SetCommonWord(symbol, word string) bool {
	i, ok := b.index[symbol]
	if !ok {
		return false
	}
	b.nodes[i].CommonWord = StringPtr(word)
	return true
}

// SymbolsAtLevel returns the symbols with the given level in insertion order.
func (b *Builder) SymbolsAtLevel(level int) []string {
	var out []string
	for i := range b.nodes {
		if b.nodes[i].Level == level {
			out = append(out, b.nodes[i].Symbol)
		}
	}
	return out
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return StringPtr(s)
}

// Build freezes the accumulated graph. The builder must not be used afterwards.
func (b *Builder) Build() *Store {
	s := &Store{
		nodes: b.nodes,
		index: b.index,
		preds: b.preds,
		succs: b.succs,
		edges: b.edges,
	}
	*b = Builder{}
	return s
}

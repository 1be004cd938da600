// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

package graph

import (
	"strings"
)

// UntrackedLevel marks a node that is not itself an examinable kanji,
// typically a component that only appears inside other characters.
const UntrackedLevel = -1

// DefaultStrokes is the stroke count assumed when a node has none recorded.
const DefaultStrokes = 1

// MaxSymbolRunes bounds the code points accepted as a query symbol. Most
// symbols are one rune, but a glyph may carry a variation selector.
const MaxSymbolRunes = 16

// Node is a kanji or component together with its attributes.
// Optional attributes are nil when the source artifact did not carry them.
type Node struct {
	// Symbol is the node identity: a kanji or component glyph, possibly
	// followed by a variation selector.
	Symbol string `json:"symbol"`

	// Level is the difficulty tier. UntrackedLevel (-1) for components
	// that are never examined on their own.
	Level int `json:"level"`

	// Strokes is the stroke count.
	Strokes *int `json:"strokes,omitempty"`

	// ReadingOn and ReadingKun hold the encoded reading lists exactly as
	// stored, e.g. "['ジ', 'チ']". Use ParseReadings to decode.
	ReadingOn  *string `json:"reading_on,omitempty"`
	ReadingKun *string `json:"reading_kun,omitempty"`

	// CommonWord is an example word containing the kanji.
	CommonWord *string `json:"common_word,omitempty"`
}

// Tracked reports whether the node is an examinable kanji.
func (n *Node) Tracked() bool {
	return n.Level >= 0
}

// StrokeCount returns the stroke count or DefaultStrokes when unknown.
func (n *Node) StrokeCount() int {
	if n.Strokes == nil {
		return DefaultStrokes
	}
	return *n.Strokes
}

// clone returns a deep copy so Store callers cannot mutate shared state.
func (n *Node) clone() Node {
	c := *n
	if n.Strokes != nil {
		v := *n.Strokes
		c.Strokes = &v
	}
	c.ReadingOn = cloneString(n.ReadingOn)
	c.ReadingKun = cloneString(n.ReadingKun)
	c.CommonWord = cloneString(n.CommonWord)
	return c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// ParseReadings decodes a stored reading list such as "['ジ', 'も（つ）']".
//
// Encodings of length two or less ("[]", "", "x") decode to an empty list.
// Anything longer has its first and last characters stripped, single quotes
// removed, and is split on ", ". Malformed input never fails; it simply
// decodes to whatever the rule produces.
func ParseReadings(encoded string) []string {
	runes := []rune(encoded)
	if len(runes) <= 2 {
		return []string{}
	}
	inner := string(runes[1 : len(runes)-1])
	inner = strings.ReplaceAll(inner, "'", "")
	return strings.Split(inner, ", ")
}

// EncodeReadings is the inverse of ParseReadings for well-formed lists.
func EncodeReadings(readings []string) string {
	if len(readings) == 0 {
		return "[]"
	}
	quoted := make([]string, len(readings))
	for i, r := range readings {
		quoted[i] = "'" + r + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}

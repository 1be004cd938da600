// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

package graph

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// CommonWordsTopLevel is the level the first line of a common words file
// belongs to. Each following line belongs to the next lower level.
const CommonWordsTopLevel = 7

// Record is one extracted kanji entry, as produced by the dictionary
// extraction step upstream of this module.
type Record struct {
	Kanji      string   `json:"kanji"`
	Level      int      `json:"level"`
	ReadingOn  []string `json:"reading_on"`
	ReadingKun []string `json:"reading_kun"`
	Strokes    *int     `json:"strokes,omitempty"`
	Components []string `json:"components"`
}

// DecodeRecords reads a JSON array of records.
func DecodeRecords(r io.Reader) ([]Record, error) {
	var records []Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return records, nil
}

// AddRecords applies records to the builder in order. Components become
// untracked nodes unless they are themselves examined by a later record.
func (b *Builder) AddRecords(records []Record) {
	for i := range records {
		rec := &records[i]
		if rec.Kanji == "" {
			continue
		}
		b.AddKanji(rec.Kanji, rec.Level, EncodeReadings(rec.ReadingOn), EncodeReadings(rec.ReadingKun), rec.Strokes)
		for _, c := range rec.Components {
			c = strings.TrimSpace(c)
			if c == "" {
				continue
			}
			b.AddComponent(c, rec.Kanji)
		}
	}
}

// CommonWordsReport summarizes an AttachCommonWords run.
type CommonWordsReport struct {
	Attached   int
	Mismatched int
	Missing    int
}

// AttachCommonWords assigns example words to kanji by level.
//
// Line i (0-based) of r lists comma-separated words for level
// CommonWordsTopLevel-i. The word at position p is attached to the p-th node
// of that level in insertion order. Words that do not contain their kanji are
// attached anyway and logged as mismatches; nodes without a word on the line
// are counted as missing.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func (b *Builder) AttachCommonWords(r io.Reader, logger zerolog.Logger) (CommonWordsReport, error) {
	var report CommonWordsReport
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	level := CommonWordsTopLevel
	for scanner.Scan() {
		words := strings.Split(scanner.Text(), ",")
		for pos, kanji := range b.SymbolsAtLevel(level) {
			if pos >= len(words) {
				report.Missing++
				continue
			}
			word := strings.TrimSpace(words[pos])
			b.SetCommonWord(kanji, word)
			report.Attached++
			if !strings.Contains(word, kanji) {
				report.Mismatched++
				logger.Warn().
					Str("kanji", kanji).
					Str("word", word).
					Int("level", level).
					Msg("common word does not contain kanji")
			}
		}
		level--
	}
	if err := scanner.Err(); err != nil {
		return report, fmt.Errorf("read common words: %w", err)
	}
	return report, nil
}

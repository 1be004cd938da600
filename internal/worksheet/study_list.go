// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

package worksheet

import (
	"context"
	"fmt"
	"strings"

	"github.com/tomtom215/kanjigraph/internal/metrics"
	"github.com/tomtom215/kanjigraph/internal/recommend"
)

// StudyEntry describes one kanji of a text for a study sheet.
type StudyEntry struct {
	Kanji      string   `json:"kanji"`
	Level      int      `json:"level"`
	KunForms   []string `json:"kun_forms"`
	CommonWord string   `json:"common_word"`
	Similar    []string `json:"similar"`
}

// StudyList returns an entry for each distinct kanji of text whose level is
// between 0 and level inclusive, in order of first appearance.
func (x *Exporter) StudyList(ctx context.Context, text string, level int) ([]StudyEntry, error) {
	g := x.engine.Graph()
	if g == nil {
		return nil, recommend.ErrNoGraph
	}

	entries := make([]StudyEntry, 0)
	seen := make(map[string]bool)
	for _, r := range text {
		kanji := string(r)
		if seen[kanji] {
			continue
		}
		l := g.Level(kanji)
		if l < 0 || l > level {
			continue
		}
		seen[kanji] = true

		similar, err := x.engine.PrimarySimilar(ctx, kanji, level)
		if err != nil {
			return nil, fmt.Errorf("study list %q: %w", kanji, err)
		}
		_, kun := g.Readings(kanji)
		word, _ := g.CommonWord(kanji)
		entries = append(entries, StudyEntry{
			Kanji:      kanji,
			Level:      l,
			KunForms:   KunForms(kanji, kun),
			CommonWord: word,
			Similar:    similar,
		})
	}

	metrics.RecordWorksheetRows(KindStudyList, len(entries))
	return entries, nil
}

// KunForms joins kanji with the okurigana marked in each kun reading, e.g.
// も（つ） gives 持つ. The first reading without marked okurigana adds the
// bare kanji and ends the list.
func KunForms(kanji string, kun []string) []string {
	forms := make([]string, 0, len(kun))
	for _, reading := range kun {
		okurigana, ok := bracketed(reading)
		if !ok {
			return append(forms, kanji)
		}
		forms = append(forms, kanji+okurigana)
	}
	return forms
}

// bracketed returns the text between the first （ and the following ）.
func bracketed(reading string) (string, bool) {
	_, rest, ok := strings.Cut(reading, "（")
	if !ok {
		return "", false
	}
	inner, _, _ := strings.Cut(rest, "）")
	return inner, true
}

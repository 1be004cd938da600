// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

// Package worksheet builds the study material derived from the graph: the
// kanji list CSV (one row per examinable kanji with components) and the
// study list for a piece of text.
//
//	x := worksheet.NewExporter(engine, 8, logger)
//	rows, err := x.KanjiList(ctx)
//	err = worksheet.WriteKanjiList(f, rows)
//
//	entries, err := x.StudyList(ctx, "時を持つ", 10)
package worksheet

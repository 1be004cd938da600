// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

// Package database reads and writes the node/edge CSV pair of a kanji graph
// through an in-memory DuckDB instance.
//
// Files are parsed with read_csv (all columns as VARCHAR, so the decoding
// rules stay in Go) and written with COPY ... TO from a temporary table.
//
// Nodes file columns: Id, Level, Reading_On, Reading_Kun, Strokes.
// Edges file columns: Source, Target.
//
// A Strokes value of -1 (or any negative value) means the count is unknown;
// an empty reading cell means no readings were recorded.
package database

// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

// Package artifact loads and saves kanji graphs in any supported format.
//
// Formats:
//
//	gexf      GEXF 1.2 file (.gexf)
//	csv       node/edge CSV pair read through DuckDB (.csv)
//	snapshot  BadgerDB directory
//	records   extraction records (.json) plus an optional common words file
//
// In auto mode the format is detected from the path: directories are
// snapshots, the rest go by extension.
package artifact

// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

package artifact

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/tomtom215/kanjigraph/internal/config"
	"github.com/tomtom215/kanjigraph/internal/database"
	"github.com/tomtom215/kanjigraph/internal/graph"
	"github.com/tomtom215/kanjigraph/internal/snapshot"
)

// Target describes where Save writes a graph.
type Target struct {
	Path string

	// Format must be resolvable from Path when auto. The records format
	// cannot be written.
	Format string

	// EdgesPath overrides the derived edges file of the csv format.
	EdgesPath string

	Database config.DatabaseConfig
}

// Save writes store to target and returns the resolved format.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func Save(ctx context.Context, store *graph.Store, target Target, logger zerolog.Logger) (string, error) {
	format := target.Format
	if format == "" || format == config.FormatAuto {
		// The target usually does not exist yet, so only the extension counts.
		// A path without one is written as a snapshot directory.
		if filepath.Ext(target.Path) == "" {
			format = config.FormatSnapshot
		} else {
			var err error
			if format, err = DetectFormat(target.Path, config.FormatAuto); err != nil {
				return "", err
			}
		}
	}

	var err error
	switch format {
	case config.FormatGEXF:
		err = writeGEXF(target.Path, store)
	case config.FormatCSV:
		err = writeCSV(ctx, store, target, logger)
	case config.FormatSnapshot:
		_, err = snapshot.WriteDir(ctx, target.Path, store, logger)
	case config.FormatRecords:
		return "", fmt.Errorf("%w: records artifacts are read-only", ErrUnknownFormat)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return "", fmt.Errorf("save %s graph %s: %w", format, target.Path, err)
	}
	return format, nil
}

func writeGEXF(path string, store *graph.Store) error {
	f, err := os.Create(path) //nolint:gosec // path comes from the command line
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := graph.WriteGEXF(w, store); err != nil {
		_ = f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

//nolint:gocritic // zerolog.Logger is designed to be passed by value
func writeCSV(ctx context.Context, store *graph.Store, target Target, logger zerolog.Logger) error {
	db, err := database.Open(ctx, database.Options{
		MaxMemory: target.Database.MaxMemory,
		Threads:   target.Database.Threads,
	}, logger)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	edges := target.EdgesPath
	if edges == "" {
		edges = database.DefaultEdgesPath(target.Path)
	}
	return db.WriteGraph(ctx, store, target.Path, edges)
}

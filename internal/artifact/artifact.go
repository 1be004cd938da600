// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

package artifact

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/kanjigraph/internal/config"
	"github.com/tomtom215/kanjigraph/internal/database"
	"github.com/tomtom215/kanjigraph/internal/graph"
	"github.com/tomtom215/kanjigraph/internal/metrics"
	"github.com/tomtom215/kanjigraph/internal/recommend"
	"github.com/tomtom215/kanjigraph/internal/snapshot"
)

// ErrUnknownFormat is returned when a format cannot be resolved.
var ErrUnknownFormat = errors.New("unknown artifact format")

// DetectFormat resolves the format of path. An explicit format other than
// auto is returned unchanged.
func DetectFormat(path, format string) (string, error) {
	switch format {
	case config.FormatGEXF, config.FormatCSV, config.FormatSnapshot, config.FormatRecords:
		return format, nil
	case config.FormatAuto, "":
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		return config.FormatSnapshot, nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gexf":
		return config.FormatGEXF, nil
	case ".csv":
		return config.FormatCSV, nil
	case ".json":
		return config.FormatRecords, nil
	}
	return "", fmt.Errorf("%w: cannot detect format of %s", ErrUnknownFormat, path)
}

// Loader reads the configured graph artifact.
type Loader struct {
	graph  config.GraphConfig
	db     database.Options
	logger zerolog.Logger
}

// NewLoader creates a loader for the graph section of the configuration.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewLoader(graphCfg config.GraphConfig, dbCfg config.DatabaseConfig, logger zerolog.Logger) *Loader {
	return &Loader{
		graph:  graphCfg,
		db:     database.Options{MaxMemory: dbCfg.MaxMemory, Threads: dbCfg.Threads},
		logger: logger.With().Str("component", "artifact").Logger(),
	}
}

// Path returns the artifact path.
func (l *Loader) Path() string {
	return l.graph.Path
}

// Load reads the artifact into a Store.
func (l *Loader) Load(ctx context.Context) (*graph.Store, recommend.Source, error) {
	format, err := DetectFormat(l.graph.Path, l.graph.Format)
	if err != nil {
		return nil, recommend.Source{}, err
	}

	start := time.Now()
	store, err := l.load(ctx, format)
	metrics.RecordGraphLoad(format, time.Since(start), err)
	if err != nil {
		return nil, recommend.Source{}, fmt.Errorf("load %s graph %s: %w", format, l.graph.Path, err)
	}
	if store.Len() == 0 {
		return nil, recommend.Source{}, fmt.Errorf("load %s graph %s: %w", format, l.graph.Path, graph.ErrEmptyGraph)
	}

	l.logger.Info().
		Str("path", l.graph.Path).
		Str("format", format).
		Int("nodes", store.Len()).
		Int("edges", store.EdgeCount()).
		Dur("duration", time.Since(start)).
		Msg("graph loaded")
	return store, recommend.Source{Path: l.graph.Path, Format: format}, nil
}

func (l *Loader) load(ctx context.Context, format string) (*graph.Store, error) {
	switch format {
	case config.FormatGEXF:
		return readGEXF(l.graph.Path)
	case config.FormatCSV:
		db, err := database.Open(ctx, l.db, l.logger)
		if err != nil {
			return nil, err
		}
		defer func() { _ = db.Close() }()
		return db.LoadGraph(ctx, l.graph.Path, l.edgesPath())
	case config.FormatSnapshot:
		store, _, err := snapshot.ReadDir(ctx, l.graph.Path)
		return store, err
	case config.FormatRecords:
		return l.readRecords()
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

func (l *Loader) edgesPath() string {
	if l.graph.EdgesPath != "" {
		return l.graph.EdgesPath
	}
	return database.DefaultEdgesPath(l.graph.Path)
}

// files lists every file the artifact is read from.
func (l *Loader) files(format string) []string {
	switch format {
	case config.FormatCSV:
		return []string{l.graph.Path, l.edgesPath()}
	case config.FormatRecords:
		if l.graph.CommonWordsPath != "" {
			return []string{l.graph.Path, l.graph.CommonWordsPath}
		}
	}
	return []string{l.graph.Path}
}

// ModTime returns the latest modification time of the artifact's files.
// For a snapshot directory the newest entry counts.
func (l *Loader) ModTime() (time.Time, error) {
	format, err := DetectFormat(l.graph.Path, l.graph.Format)
	if err != nil {
		return time.Time{}, err
	}

	var latest time.Time
	for _, path := range l.files(format) {
		t, err := modTime(path)
		if err != nil {
			return time.Time{}, err
		}
		if t.After(latest) {
			latest = t
		}
	}
	return latest, nil
}

func modTime(path string) (time.Time, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	latest := fi.ModTime()
	if !fi.IsDir() {
		return latest, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return time.Time{}, err
	}
	for _, e := range entries {
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latest) {
			latest = info.ModTime()
		}
	}
	return latest, nil
}

func readGEXF(path string) (*graph.Store, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return graph.ReadGEXF(f)
}

func (l *Loader) readRecords() (*graph.Store, error) {
	f, err := os.Open(l.graph.Path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	records, err := graph.DecodeRecords(f)
	if err != nil {
		return nil, err
	}
	b := graph.NewBuilder()
	b.AddRecords(records)

	if l.graph.CommonWordsPath != "" {
		cw, err := os.Open(l.graph.CommonWordsPath) //nolint:gosec // path comes from operator configuration
		if err != nil {
			return nil, err
		}
		defer func() { _ = cw.Close() }()
		report, err := b.AttachCommonWords(cw, l.logger)
		if err != nil {
			return nil, err
		}
		l.logger.Debug().
			Int("attached", report.Attached).
			Int("mismatched", report.Mismatched).
			Int("missing", report.Missing).
			Msg("common words attached")
	}
	return b.Build(), nil
}

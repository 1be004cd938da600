// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

package worksheet

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/kanjigraph/internal/metrics"
	"github.com/tomtom215/kanjigraph/internal/recommend"
)

// KanjiListHeader is the first line of the kanji list CSV.
const KanjiListHeader = "kanji,components,compounds,similar_kanji"

// Metric kinds.
const (
	KindKanjiList = "kanji_list"
	KindStudyList = "study_list"
)

// Row is one kanji list line.
type Row struct {
	Kanji      string   `json:"kanji"`
	Components []string `json:"components"`
	Compounds  []string `json:"compounds"`
	Similar    []string `json:"similar_kanji"`
}

// Exporter derives worksheet data from an engine's live graph.
type Exporter struct {
	engine  *recommend.Engine
	workers int
	logger  zerolog.Logger
}

// NewExporter creates an exporter. workers bounds the goroutines used by
// KanjiList; values below one use GOMAXPROCS.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewExporter(engine *recommend.Engine, workers int, logger zerolog.Logger) *Exporter {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Exporter{
		engine:  engine,
		workers: workers,
		logger:  logger.With().Str("component", "worksheet").Logger(),
	}
}

// KanjiList returns a row for every examinable kanji that has at least one
// component, in graph order. Similar kanji are limited to the kanji's own
// level or easier.
func (x *Exporter) KanjiList(ctx context.Context) ([]Row, error) {
	g := x.engine.Graph()
	if g == nil {
		return nil, recommend.ErrNoGraph
	}
	start := time.Now()

	var candidates []string
	for _, n := range g.Nodes() {
		if n.Tracked() && len(g.Predecessors(n.Symbol)) > 0 {
			candidates = append(candidates, n.Symbol)
		}
	}

	rows := make([]Row, len(candidates))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(x.workers)
	for i, kanji := range candidates {
		eg.Go(func() error {
			nb, err := x.engine.Neighborhood(egCtx, kanji, g.Level(kanji))
			if err != nil {
				return fmt.Errorf("neighborhood of %q: %w", kanji, err)
			}
			rows[i] = Row{
				Kanji:      kanji,
				Components: nb.Components,
				Compounds:  nb.Compounds,
				Similar:    nb.Similar,
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	metrics.RecordWorksheetRows(KindKanjiList, len(rows))
	x.logger.Info().
		Int("rows", len(rows)).
		Int("workers", x.workers).
		Dur("duration", time.Since(start)).
		Msg("kanji list built")
	return rows, nil
}

// WriteKanjiList writes rows as CSV. List cells are always quoted, with
// "" for an empty list.
func WriteKanjiList(w io.Writer, rows []Row) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(KanjiListHeader + "\n"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := range rows {
		r := &rows[i]
		line := r.Kanji + "," + listCell(r.Components) + "," + listCell(r.Compounds) + "," + listCell(r.Similar) + "\n"
		if _, err := bw.WriteString(line); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush kanji list: %w", err)
	}
	return nil
}

func listCell(items []string) string {
	if len(items) == 0 {
		return `""`
	}
	return `"` + strings.ReplaceAll(strings.Join(items, ","), `"`, `""`) + `"`
}

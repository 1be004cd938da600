// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/kanjigraph/internal/artifact"
	"github.com/tomtom215/kanjigraph/internal/config"
	"github.com/tomtom215/kanjigraph/internal/graph"
	"github.com/tomtom215/kanjigraph/internal/logging"
)

func newConvertCmd(a *app) *cobra.Command {
	var (
		from    string
		to      string
		toEdges string
	)
	cmd := &cobra.Command{
		Use:   "convert SRC DST",
		Short: "Convert a graph artifact between gexf, csv and snapshot formats",
		Example: `  kanjigraph convert data/kanji_digraph.gexf data/graph_snapshot
  kanjigraph convert data/kanji_nodes.csv out.gexf --from csv --edges data/kanji_edges.csv`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := config.GraphConfig{
				Path:      args[0],
				Format:    from,
				EdgesPath: a.edgesPath,
			}
			return a.convert(cmd, src, args[1], to, toEdges)
		},
	}
	cmd.Flags().StringVar(&from, "from", config.FormatAuto, "source format")
	cmd.Flags().StringVar(&to, "to", config.FormatAuto, "destination format")
	cmd.Flags().StringVar(&toEdges, "to-edges", "", "edges CSV written by --to csv")
	return cmd
}

func newBuildCmd(a *app) *cobra.Command {
	var (
		commonWords string
		to          string
		toEdges     string
	)
	cmd := &cobra.Command{
		Use:   "build RECORDS DST",
		Short: "Build a graph artifact from kanji extraction records",
		Example: `  kanjigraph build extracted.json data/kanji_digraph.gexf --common-words data/common_words.txt`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := config.GraphConfig{
				Path:            args[0],
				Format:          config.FormatRecords,
				CommonWordsPath: commonWords,
			}
			return a.convert(cmd, src, args[1], to, toEdges)
		},
	}
	cmd.Flags().StringVar(&commonWords, "common-words", "", "common words text, one comma-separated line per level")
	cmd.Flags().StringVar(&to, "to", config.FormatAuto, "destination format")
	cmd.Flags().StringVar(&toEdges, "to-edges", "", "edges CSV written by --to csv")
	return cmd
}

func (a *app) convert(cmd *cobra.Command, src config.GraphConfig, dst, format, edges string) error {
	logger := logging.Logger()

	store, source, err := artifact.NewLoader(src, a.cfg.Database, logger).Load(cmd.Context())
	if err != nil {
		return err
	}

	written, err := artifact.Save(cmd.Context(), store, artifact.Target{
		Path:      dst,
		Format:    format,
		EdgesPath: edges,
		Database:  a.cfg.Database,
	}, logger)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) -> %s (%s): %s\n",
		source.Path, source.Format, dst, written, summary(store))
	return err
}

func summary(s *graph.Store) string {
	return fmt.Sprintf("%d nodes, %d edges", s.Len(), s.EdgeCount())
}

// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/tomtom215/kanjigraph/internal/logging"
	"github.com/tomtom215/kanjigraph/internal/worksheet"
)

func newExportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export worksheet data",
	}
	cmd.AddCommand(newExportKanjiListCmd(a))
	return cmd
}

func newExportKanjiListCmd(a *app) *cobra.Command {
	var (
		out     string
		workers int
	)
	cmd := &cobra.Command{
		Use:   "kanji-list",
		Short: "Write the kanji list CSV (components, compounds, similar kanji)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			engine, err := a.engine(cmd.Context())
			if err != nil {
				return err
			}
			rows, err := worksheet.NewExporter(engine, workers, logging.Logger()).KanjiList(cmd.Context())
			if err != nil {
				return err
			}

			w, closeOut, err := createOutput(out, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, closeOut()) }()
			return worksheet.WriteKanjiList(w, rows)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "-", "output file, - for stdout")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel row builders (default GOMAXPROCS)")
	return cmd
}

// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

package main

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/tomtom215/kanjigraph/internal/graph"
	"github.com/tomtom215/kanjigraph/internal/recommend"
)

func kanjiArg(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return err
	}
	if n := utf8.RuneCountInString(args[0]); n == 0 || n > graph.MaxSymbolRunes {
		return fmt.Errorf("expected a kanji or component, got %q", args[0])
	}
	return nil
}

func newSimilarCmd(a *app) *cobra.Command {
	var (
		depth    float64
		distinct bool
		maxScore float64
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "similar KANJI",
		Short: "Rank look-alike kanji by shared components (lower score is closer)",
		Args:  kanjiArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := a.engine(cmd.Context())
			if err != nil {
				return err
			}
			cfg := engine.Config()
			if !cmd.Flags().Changed("depth") {
				depth = cfg.Decay.DepthLimit
			}
			if !cmd.Flags().Changed("max-score") {
				maxScore = cfg.Filter.MaxScore
			}

			var items []recommend.Similar
			if distinct {
				items, err = engine.SimilarKanji(cmd.Context(), args[0], depth, maxScore)
			} else {
				items, err = engine.RankedSimilar(cmd.Context(), args[0], depth)
			}
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), items)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, it := range items {
				fmt.Fprintf(tw, "%s\t%.4f\n", it.Kanji, it.Score)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().Float64Var(&depth, "depth", 0, "maximum accumulated walk cost (default from config)")
	cmd.Flags().BoolVar(&distinct, "distinct", false, "drop the query kanji and repeats, cap scores at --max-score")
	cmd.Flags().Float64Var(&maxScore, "max-score", 0, "score ceiling for --distinct (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newDeepCmd(a *app) *cobra.Command {
	var (
		depth  int
		level  int
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "deep KANJI",
		Short: "List kanji reached within --depth component steps",
		Args:  kanjiArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := a.engine(cmd.Context())
			if err != nil {
				return err
			}
			cfg := engine.Config()
			if !cmd.Flags().Changed("depth") {
				depth = cfg.Bounded.DepthLimit
			}
			if !cmd.Flags().Changed("level") {
				level = cfg.Bounded.LevelLimit
			}

			items, err := engine.DeepSimilar(cmd.Context(), args[0], depth, level)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), items)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KANJI\tDEPTH\tBALANCE")
			for _, it := range items {
				fmt.Fprintf(tw, "%s\t%d\t%d\n", it.Kanji, it.Depth, it.Balance)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVar(&depth, "depth", 0, "maximum component steps (default from config)")
	cmd.Flags().IntVar(&level, "level", 0, "minimum level of returned kanji (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newPrimaryCmd(a *app) *cobra.Command {
	var (
		level  int
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "primary KANJI",
		Short: "Show kanji sharing the most complex component",
		Args:  kanjiArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := a.engine(cmd.Context())
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("level") {
				level = engine.Config().Primary.LevelLimit
			}
			items, err := engine.PrimarySimilar(cmd.Context(), args[0], level)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), items)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(items, " "))
			return err
		},
	}
	cmd.Flags().IntVar(&level, "level", 0, "minimum level of returned kanji (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newBreakdownCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "breakdown KANJI",
		Short: "Show, per component, the other kanji built on it and their relative difficulty",
		Args:  kanjiArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := a.engine(cmd.Context())
			if err != nil {
				return err
			}
			entries, err := engine.Breakdown(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), entries)
			}
			return printBreakdown(cmd.OutOrStdout(), entries)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func printBreakdown(w io.Writer, entries []recommend.ComponentBreakdown) error {
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%s (%d strokes)\n", e.Component, e.Strokes); err != nil {
			return err
		}
		for _, s := range e.Siblings {
			if _, err := fmt.Fprintf(w, "  %s  level %d  %s  %s\n",
				s.Kanji, s.Level, s.Relation, strings.Join(slices.Concat(s.ReadingOn, s.ReadingKun), ", ")); err != nil {
				return err
			}
		}
	}
	return nil
}

func newInfoCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "info KANJI",
		Short: "Describe a kanji or component",
		Args:  kanjiArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := a.engine(cmd.Context())
			if err != nil {
				return err
			}
			info, err := engine.Info(args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), info)
			}
			return printInfo(cmd.OutOrStdout(), info)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func printInfo(w io.Writer, info recommend.KanjiInfo) error {
	strokes := "unknown"
	if info.Strokes != nil {
		strokes = fmt.Sprint(*info.Strokes)
	}
	level := fmt.Sprint(info.Level)
	if !info.Tracked {
		level = "untracked"
	}
	word := ""
	if info.CommonWord != nil {
		word = *info.CommonWord
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	rows := [][2]string{
		{"kanji", info.Kanji},
		{"level", level},
		{"strokes", strokes},
		{"on", strings.Join(info.ReadingOn, ", ")},
		{"kun", strings.Join(info.ReadingKun, ", ")},
		{"word", word},
		{"components", strings.Join(info.Components, " ")},
		{"compounds", strings.Join(info.Compounds, " ")},
	}
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\n", r[0], r[1])
	}
	return tw.Flush()
}

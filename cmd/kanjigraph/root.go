// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/kanjigraph/internal/artifact"
	"github.com/tomtom215/kanjigraph/internal/config"
	"github.com/tomtom215/kanjigraph/internal/logging"
	"github.com/tomtom215/kanjigraph/internal/recommend"
	"github.com/tomtom215/kanjigraph/internal/recommend/reranking"
)

// app carries the state shared by every subcommand.
type app struct {
	graphPath string
	format    string
	edgesPath string
	logLevel  string

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "kanjigraph",
		Short:         "Kanji similarity queries and graph artifact tooling",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.ErrOrStderr())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.graphPath, "graph", "", "graph artifact (overrides graph.path)")
	pf.StringVar(&a.format, "format", "", "artifact format: auto, gexf, csv, snapshot, records")
	pf.StringVar(&a.edgesPath, "edges", "", "edges CSV for the csv format")
	pf.StringVar(&a.logLevel, "log-level", "warn", "log level written to stderr")

	root.AddCommand(
		newSimilarCmd(a),
		newDeepCmd(a),
		newPrimaryCmd(a),
		newBreakdownCmd(a),
		newInfoCmd(a),
		newConvertCmd(a),
		newBuildCmd(a),
		newExportCmd(a),
		newMCPCmd(a),
	)
	return root
}

// init loads the configuration and applies flag overrides. Logs always go
// to stderr since stdout carries results (and the MCP protocol).
func (a *app) init(stderr io.Writer) error {
	logging.Init(logging.Config{
		Level:  a.logLevel,
		Format: "console",
		Output: stderr,
	})

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.graphPath != "" {
		cfg.Graph.Path = a.graphPath
	}
	if a.format != "" {
		cfg.Graph.Format = a.format
	}
	if a.edgesPath != "" {
		cfg.Graph.EdgesPath = a.edgesPath
	}
	a.cfg = cfg
	return nil
}

// engine loads the configured graph into a fresh engine.
func (a *app) engine(ctx context.Context) (*recommend.Engine, error) {
	loader := artifact.NewLoader(a.cfg.Graph, a.cfg.Database, logging.Logger())
	store, src, err := loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	engineCfg := a.cfg.EngineConfig()
	// One-off processes never hit the cache twice.
	engineCfg.Cache.Enabled = false
	engine, err := recommend.NewEngine(engineCfg, logging.Logger())
	if err != nil {
		return nil, err
	}
	reranking.RegisterDefaults(engine)
	engine.SetGraph(store, src)
	return engine, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func createOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path) //nolint:gosec // path comes from the command line
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, f.Close, nil
}

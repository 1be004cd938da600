// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

package main

import (
	"github.com/spf13/cobra"

	"github.com/tomtom215/kanjigraph/internal/logging"
	"github.com/tomtom215/kanjigraph/internal/mcpserver"
)

func newMCPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the similarity queries as MCP tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := a.engine(cmd.Context())
			if err != nil {
				return err
			}
			srv := mcpserver.New(engine, mcpserver.Config{
				Version:   version,
				RateLimit: a.cfg.MCP.RateLimit,
				Burst:     a.cfg.MCP.Burst,
			}, logging.Logger())
			return srv.Run(cmd.Context())
		},
	}
}

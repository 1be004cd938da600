// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

// Command kanjigraph is the operator CLI: one-off similarity queries,
// artifact conversion, graph builds, worksheet export and the stdio MCP
// server.
//
//	kanjigraph --graph data/kanji_digraph.gexf similar 持 --distinct
//	kanjigraph convert data/kanji_digraph.gexf data/kanji_nodes.csv
//	kanjigraph build kanji.json data/graph.gexf --common-words common_words.txt
//	kanjigraph export kanji-list --out kanji_list.csv
//	kanjigraph mcp
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

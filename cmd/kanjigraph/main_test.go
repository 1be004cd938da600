// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/kanjigraph/internal/artifact"
	"github.com/tomtom215/kanjigraph/internal/graph"
	"github.com/tomtom215/kanjigraph/internal/recommend"
	"github.com/tomtom215/kanjigraph/internal/worksheet"
)

// writeTestGraph saves
//
//	扌 -> 持, 指
//	寺 -> 持, 時, 詩
//
// as a GEXF file and returns its path.
func writeTestGraph(t *testing.T) string {
	t.Helper()
	b := graph.NewBuilder()
	b.AddKanji("持", 8, "['ジ']", "['も（つ）']", graph.IntPtr(9))
	b.AddKanji("指", 7, "['シ']", "['ゆび', 'さ（す）']", graph.IntPtr(9))
	b.AddKanji("寺", 8, "['ジ']", "['てら']", graph.IntPtr(6))
	b.AddKanji("時", 9, "['ジ']", "['とき']", graph.IntPtr(10))
	b.AddKanji("詩", 5, "['シ']", "[]", graph.IntPtr(13))
	b.AddComponent("扌", "持")
	b.AddComponent("扌", "指")
	b.AddComponent("寺", "持")
	b.AddComponent("寺", "時")
	b.AddComponent("寺", "詩")
	b.SetCommonWord("持", "持つ")

	path := filepath.Join(t.TempDir(), "graph.gexf")
	if _, err := artifact.Save(context.Background(), b.Build(), artifact.Target{Path: path}, zerolog.Nop()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(append([]string{"--log-level", "disabled"}, args...))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func similarKanji(t *testing.T, out string) []string {
	t.Helper()
	var items []recommend.Similar
	if err := json.Unmarshal([]byte(out), &items); err != nil {
		t.Fatalf("unmarshal %q: %v", out, err)
	}
	kanji := make([]string, 0, len(items))
	for _, it := range items {
		kanji = append(kanji, it.Kanji)
	}
	return kanji
}

func TestQueryCommands(t *testing.T) {
	path := writeTestGraph(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"similar ranked", []string{"similar", "持", "--json"}, "寺 持 指 持 時 詩"},
		{"similar distinct", []string{"similar", "持", "--json", "--distinct"}, "寺 指 時 詩"},
		{"similar shallow", []string{"similar", "持", "--json", "--depth", "0"}, "寺"},
		{"unknown kanji", []string{"similar", "猫", "--json"}, ""},
		{"unknown multi-rune symbol", []string{"similar", "持つ", "--json"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, append([]string{"--graph", path}, tt.args...)...)
			if err != nil {
				t.Fatalf("execute error = %v", err)
			}
			if got := strings.Join(similarKanji(t, out), " "); got != tt.want {
				t.Errorf("kanji = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrimaryCommand(t *testing.T) {
	path := writeTestGraph(t)

	out, err := run(t, "--graph", path, "primary", "持", "--level", "9")
	if err != nil {
		t.Fatalf("execute error = %v", err)
	}
	if strings.TrimSpace(out) != "時" {
		t.Errorf("output = %q, want 時", out)
	}
}

func TestInfoCommand(t *testing.T) {
	path := writeTestGraph(t)

	t.Run("json", func(t *testing.T) {
		out, err := run(t, "--graph", path, "info", "持", "--json")
		if err != nil {
			t.Fatalf("execute error = %v", err)
		}
		var info recommend.KanjiInfo
		if err := json.Unmarshal([]byte(out), &info); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if got := strings.Join(info.Components, ","); got != "扌,寺" {
			t.Errorf("components = %q, want 扌,寺", got)
		}
		if info.CommonWord == nil || *info.CommonWord != "持つ" {
			t.Errorf("common word = %v, want 持つ", info.CommonWord)
		}
	})

	t.Run("text", func(t *testing.T) {
		out, err := run(t, "--graph", path, "info", "扌")
		if err != nil {
			t.Fatalf("execute error = %v", err)
		}
		if !strings.Contains(out, "untracked") {
			t.Errorf("output missing untracked level:\n%s", out)
		}
	})

	t.Run("not found", func(t *testing.T) {
		if _, err := run(t, "--graph", path, "info", "猫"); err == nil {
			t.Fatal("expected error for unknown kanji")
		}
	})
}

func TestKanjiArg(t *testing.T) {
	path := writeTestGraph(t)

	for _, args := range [][]string{
		{"similar"},
		{"similar", ""},
		{"similar", strings.Repeat("持", 17)},
		{"deep", "持", "寺"},
	} {
		t.Run(strings.Join(args, "_"), func(t *testing.T) {
			if _, err := run(t, append([]string{"--graph", path}, args...)...); err == nil {
				t.Errorf("expected argument error for %v", args)
			}
		})
	}
}

func TestConvertCommand(t *testing.T) {
	src := writeTestGraph(t)
	dir := t.TempDir()
	nodes := filepath.Join(dir, "kanji_nodes.csv")
	snap := filepath.Join(dir, "snapshot")

	out, err := run(t, "convert", src, nodes)
	if err != nil {
		t.Fatalf("convert to csv error = %v", err)
	}
	if !strings.Contains(out, "6 nodes, 5 edges") {
		t.Errorf("summary = %q", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "kanji_edges.csv")); err != nil {
		t.Errorf("edges file not written: %v", err)
	}

	if _, err := run(t, "convert", nodes, snap); err != nil {
		t.Fatalf("convert to snapshot error = %v", err)
	}

	out, err = run(t, "--graph", snap, "primary", "持")
	if err != nil {
		t.Fatalf("query snapshot error = %v", err)
	}
	if got := len(strings.Fields(out)); got != 2 {
		t.Errorf("primary results = %q, want 2", out)
	}
}

func TestExportKanjiList(t *testing.T) {
	path := writeTestGraph(t)
	outPath := filepath.Join(t.TempDir(), "kanji_list.csv")

	if _, err := run(t, "--graph", path, "export", "kanji-list", "--out", outPath, "--workers", "2"); err != nil {
		t.Fatalf("execute error = %v", err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.HasPrefix(string(data), worksheet.KanjiListHeader+"\n") {
		t.Errorf("output does not start with header:\n%s", data)
	}
	if !strings.Contains(string(data), "\n持,") {
		t.Errorf("output missing 持 row:\n%s", data)
	}
}

// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

package mcpserver

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/tomtom215/kanjigraph/internal/graph"
	"github.com/tomtom215/kanjigraph/internal/recommend"
	"github.com/tomtom215/kanjigraph/internal/recommend/reranking"
)

func testGraph() *graph.Store {
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
	return b.Build()
}

func newTestEngine(t *testing.T, loaded bool) *recommend.Engine {
	t.Helper()
	cfg := recommend.DefaultConfig()
	cfg.Cache.Enabled = false
	engine, err := recommend.NewEngine(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	reranking.RegisterDefaults(engine)
	if loaded {
		engine.SetGraph(testGraph(), recommend.Source{Path: "test.gexf", Format: "gexf"})
	}
	return engine
}

// connect wires a client session to s over in-memory transports.
func connect(t *testing.T, s *Server) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	ss, err := s.MCPServer().Connect(ctx, serverTransport, nil)
	if err != nil {
		t.Fatalf("server Connect() error = %v", err)
	}
	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("client Connect() error = %v", err)
	}
	t.Cleanup(func() {
		_ = cs.Close()
		_ = ss.Wait()
	})
	return cs
}

func callTool(t *testing.T, cs *mcp.ClientSession, name string, args map[string]any) (string, bool) {
	t.Helper()
	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		t.Fatalf("CallTool(%s) error = %v", name, err)
	}
	if len(res.Content) != 1 {
		t.Fatalf("CallTool(%s) returned %d content blocks", name, len(res.Content))
	}
	text, ok := res.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("CallTool(%s) content is %T, want *mcp.TextContent", name, res.Content[0])
	}
	return text.Text, res.IsError
}

func TestListTools(t *testing.T) {
	cs := connect(t, New(newTestEngine(t, true), Config{Version: "test"}, zerolog.Nop()))

	res, err := cs.ListTools(context.Background(), nil)
	if err != nil {
		t.Fatalf("ListTools() error = %v", err)
	}
	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	slices.Sort(names)
	want := []string{ToolDeepSimilar, ToolKanjiInfo, ToolNeighborhood, ToolPrimarySimilar, ToolRankedSimilar}
	if !slices.Equal(names, want) {
		t.Errorf("tools = %v, want %v", names, want)
	}
}

func TestTools(t *testing.T) {
	cs := connect(t, New(newTestEngine(t, true), Config{}, zerolog.Nop()))

	kanjiOf := func(t *testing.T, text string) []string {
		t.Helper()
		var items []struct {
			Kanji string `json:"kanji"`
		}
		if err := json.Unmarshal([]byte(text), &items); err != nil {
			t.Fatalf("decode %q: %v", text, err)
		}
		out := make([]string, len(items))
		for i, it := range items {
			out[i] = it.Kanji
		}
		return out
	}

	tests := []struct {
		name string
		tool string
		args map[string]any
		want []string
	}{
		{"ranked", ToolRankedSimilar, map[string]any{"kanji": "持"}, []string{"寺", "持", "指", "持", "時", "詩"}},
		{"ranked distinct", ToolRankedSimilar, map[string]any{"kanji": "持", "distinct": true}, []string{"寺", "指", "時", "詩"}},
		{"ranked depth zero", ToolRankedSimilar, map[string]any{"kanji": "持", "depth_limit": 0}, []string{"寺"}},
		{"deep unknown kanji", ToolDeepSimilar, map[string]any{"kanji": "龘"}, []string{}},
		{"multi-rune unknown symbol", ToolRankedSimilar, map[string]any{"kanji": "持つ"}, []string{}},
		{"deep untracked level", ToolDeepSimilar, map[string]any{"kanji": "持", "depth_limit": 0, "level_limit": -1}, []string{"扌", "寺"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, isErr := callTool(t, cs, tt.tool, tt.args)
			if isErr {
				t.Fatalf("tool error: %s", text)
			}
			if got := kanjiOf(t, text); !slices.Equal(got, tt.want) {
				t.Errorf("kanji = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("primary", func(t *testing.T) {
		text, isErr := callTool(t, cs, ToolPrimarySimilar, map[string]any{"kanji": "持", "level_limit": 9})
		if isErr {
			t.Fatalf("tool error: %s", text)
		}
		var got []string
		if err := json.Unmarshal([]byte(text), &got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !slices.Equal(got, []string{"時"}) {
			t.Errorf("primary = %v, want [時]", got)
		}
	})

	t.Run("info", func(t *testing.T) {
		text, isErr := callTool(t, cs, ToolKanjiInfo, map[string]any{"kanji": "持"})
		if isErr {
			t.Fatalf("tool error: %s", text)
		}
		var info recommend.KanjiInfo
		if err := json.Unmarshal([]byte(text), &info); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if info.Level != 8 || !slices.Equal(info.Components, []string{"扌", "寺"}) {
			t.Errorf("info = %+v", info)
		}
	})

	t.Run("neighborhood", func(t *testing.T) {
		text, isErr := callTool(t, cs, ToolNeighborhood, map[string]any{"kanji": "持"})
		if isErr {
			t.Fatalf("tool error: %s", text)
		}
		var n recommend.Neighborhood
		if err := json.Unmarshal([]byte(text), &n); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !slices.Equal(n.Components, []string{"寺", "扌"}) {
			t.Errorf("components = %v, want [寺 扌]", n.Components)
		}
	})
}

func TestToolErrors(t *testing.T) {
	tests := []struct {
		name     string
		loaded   bool
		tool     string
		args     map[string]any
		contains string
	}{
		{"symbol too long", true, ToolRankedSimilar, map[string]any{"kanji": strings.Repeat("持", 17)}, "at most 16"},
		{"level below untracked", true, ToolDeepSimilar, map[string]any{"kanji": "持", "level_limit": -2}, "LevelLimit"},
		{"depth too large", true, ToolDeepSimilar, map[string]any{"kanji": "持", "depth_limit": 50}, "DepthLimit"},
		{"unknown kanji info", true, ToolKanjiInfo, map[string]any{"kanji": "龘"}, "not found"},
		{"no graph", false, ToolRankedSimilar, map[string]any{"kanji": "持"}, "no kanji graph"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := connect(t, New(newTestEngine(t, tt.loaded), Config{}, zerolog.Nop()))
			text, isErr := callTool(t, cs, tt.tool, tt.args)
			if !isErr {
				t.Fatalf("expected tool error, got %s", text)
			}
			if !strings.Contains(text, tt.contains) {
				t.Errorf("error text = %q, want it to contain %q", text, tt.contains)
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	// One token, refilled every 1000 seconds.
	cs := connect(t, New(newTestEngine(t, true), Config{RateLimit: 0.001, Burst: 1}, zerolog.Nop()))

	if text, isErr := callTool(t, cs, ToolPrimarySimilar, map[string]any{"kanji": "持"}); isErr {
		t.Fatalf("first call failed: %s", text)
	}
	text, isErr := callTool(t, cs, ToolPrimarySimilar, map[string]any{"kanji": "持"})
	if !isErr || !strings.Contains(text, "rate limit") {
		t.Errorf("second call = %q (error %v), want rate limit error", text, isErr)
	}
}

func TestToolErrorMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{recommend.ErrNoGraph, "no kanji graph is loaded"},
		{context.DeadlineExceeded, "query timed out"},
		{errors.New("boom"), "query failed: boom"},
	}
	for _, tt := range tests {
		if got := toolErrorMessage(tt.err); got != tt.want {
			t.Errorf("toolErrorMessage(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

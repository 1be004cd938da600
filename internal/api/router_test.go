// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

package api

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/kanjigraph/internal/graph"
	"github.com/tomtom215/kanjigraph/internal/middleware"
	"github.com/tomtom215/kanjigraph/internal/recommend"
	"github.com/tomtom215/kanjigraph/internal/recommend/reranking"
	"github.com/tomtom215/kanjigraph/internal/worksheet"
)

// testResponse mirrors models.APIResponse with raw data for decoding.
type testResponse struct {
	Status   string          `json:"status"`
	Data     json.RawMessage `json:"data"`
	Metadata struct {
		RequestID string `json:"request_id"`
		Count     *int   `json:"count"`
	} `json:"metadata"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// testGraph builds
//
//	扌 -> 持, 指
//	寺 -> 持, 時, 詩
func testGraph(t *testing.T) *graph.Store {
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
	return b.Build()
}

func newTestRouter(t *testing.T, loaded bool, mwCfg *ChiMiddlewareConfig) http.Handler {
	t.Helper()
	var store *graph.Store
	if loaded {
		store = testGraph(t)
	}
	return newRouterWithStore(t, store, mwCfg)
}

// newRouterWithStore serves store, or no graph when store is nil.
func newRouterWithStore(t *testing.T, store *graph.Store, mwCfg *ChiMiddlewareConfig) http.Handler {
	t.Helper()
	cfg := recommend.DefaultConfig()
	cfg.Cache.Enabled = false
	engine, err := recommend.NewEngine(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	reranking.RegisterDefaults(engine)
	if store != nil {
		engine.SetGraph(store, recommend.Source{Path: "test.gexf", Format: "gexf"})
	}

	if mwCfg == nil {
		mwCfg = DefaultChiMiddlewareConfig()
		mwCfg.RateLimitDisabled = true
	}
	h := NewHandler(engine, worksheet.NewExporter(engine, 2, zerolog.Nop()), time.Second, "test")
	return NewRouter(h, NewChiMiddleware(mwCfg)).SetupChi()
}

func doRequest(t *testing.T, router http.Handler, method, path, body string) (*httptest.ResponseRecorder, testResponse) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp testResponse
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode %s %s: %v\n%s", method, path, err, w.Body.String())
		}
	}
	return w, resp
}

func TestRouter_Status(t *testing.T) {
	router := newTestRouter(t, true, nil)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantCode   string
		wantCount  int
	}{
		{name: "live", method: http.MethodGet, path: "/api/v1/health/live", wantStatus: http.StatusOK, wantCount: -1},
		{name: "ready", method: http.MethodGet, path: "/api/v1/health/ready", wantStatus: http.StatusOK, wantCount: -1},
		{name: "stats", method: http.MethodGet, path: "/api/v1/graph/stats", wantStatus: http.StatusOK, wantCount: -1},
		{name: "info", method: http.MethodGet, path: "/api/v1/kanji/持", wantStatus: http.StatusOK, wantCount: -1},
		{name: "info escaped", method: http.MethodGet, path: "/api/v1/kanji/%E6%8C%81", wantStatus: http.StatusOK, wantCount: -1},
		{name: "info unknown", method: http.MethodGet, path: "/api/v1/kanji/龘", wantStatus: http.StatusNotFound, wantCode: ErrCodeKanjiNotFound},
		{name: "info two runes", method: http.MethodGet, path: "/api/v1/kanji/持つ", wantStatus: http.StatusBadRequest, wantCode: ErrCodeValidation},
		{name: "ranked", method: http.MethodGet, path: "/api/v1/kanji/持/similar?depth_limit=0.9", wantStatus: http.StatusOK, wantCount: 6},
		{name: "ranked depth zero", method: http.MethodGet, path: "/api/v1/kanji/持/similar?depth_limit=0", wantStatus: http.StatusOK, wantCount: 1},
		{name: "distinct", method: http.MethodGet, path: "/api/v1/kanji/持/similar?distinct=true", wantStatus: http.StatusOK, wantCount: 4},
		{name: "distinct low ceiling", method: http.MethodGet, path: "/api/v1/kanji/持/similar?distinct=true&max_score=0.01", wantStatus: http.StatusOK, wantCount: 1},
		{name: "ranked unknown is empty", method: http.MethodGet, path: "/api/v1/kanji/龘/similar", wantStatus: http.StatusOK, wantCount: 0},
		{name: "ranked depth too large", method: http.MethodGet, path: "/api/v1/kanji/持/similar?depth_limit=50", wantStatus: http.StatusBadRequest, wantCode: ErrCodeValidation},
		{name: "negative max score", method: http.MethodGet, path: "/api/v1/kanji/持/similar?distinct=1&max_score=-1", wantStatus: http.StatusBadRequest, wantCode: ErrCodeValidation},
		{name: "deep", method: http.MethodGet, path: "/api/v1/kanji/持/similar/deep?depth_limit=2", wantStatus: http.StatusOK, wantCount: -2},
		{name: "deep untracked level", method: http.MethodGet, path: "/api/v1/kanji/持/similar/deep?level_limit=-1", wantStatus: http.StatusOK, wantCount: -2},
		{name: "deep level below untracked", method: http.MethodGet, path: "/api/v1/kanji/持/similar/deep?level_limit=-2", wantStatus: http.StatusBadRequest, wantCode: ErrCodeValidation},
		{name: "primary untracked level", method: http.MethodGet, path: "/api/v1/kanji/持/primary?level_limit=-1", wantStatus: http.StatusOK, wantCount: 2},
		{name: "multi-rune unknown is empty", method: http.MethodGet, path: "/api/v1/kanji/持つ/similar", wantStatus: http.StatusOK, wantCount: 0},
		{name: "symbol too long", method: http.MethodGet, path: "/api/v1/kanji/" + strings.Repeat("持", 17) + "/similar", wantStatus: http.StatusBadRequest, wantCode: ErrCodeValidation},
		{name: "primary", method: http.MethodGet, path: "/api/v1/kanji/持/primary", wantStatus: http.StatusOK, wantCount: 2},
		{name: "primary level filter", method: http.MethodGet, path: "/api/v1/kanji/持/primary?level_limit=9", wantStatus: http.StatusOK, wantCount: 1},
		{name: "neighborhood", method: http.MethodGet, path: "/api/v1/kanji/持/neighborhood", wantStatus: http.StatusOK, wantCount: -1},
		{name: "breakdown", method: http.MethodGet, path: "/api/v1/kanji/持/breakdown", wantStatus: http.StatusOK, wantCount: 2},
		{name: "projection", method: http.MethodGet, path: "/api/v1/kanji/持/projection", wantStatus: http.StatusOK, wantCount: -1},
		{name: "worksheet", method: http.MethodPost, path: "/api/v1/worksheet", body: `{"text":"持寺時","level":8}`, wantStatus: http.StatusOK, wantCount: 2},
		{name: "worksheet bad json", method: http.MethodPost, path: "/api/v1/worksheet", body: `{"text":`, wantStatus: http.StatusBadRequest, wantCode: ErrCodeBadRequest},
		{name: "worksheet empty text", method: http.MethodPost, path: "/api/v1/worksheet", body: `{"text":"","level":8}`, wantStatus: http.StatusBadRequest, wantCode: ErrCodeValidation},
		{name: "unknown route", method: http.MethodGet, path: "/api/v1/nothing", wantStatus: http.StatusNotFound, wantCount: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := doRequest(t, router, tt.method, tt.path, tt.body)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d\n%s", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantCode != "" {
				if resp.Error == nil || resp.Error.Code != tt.wantCode {
					t.Errorf("error = %+v, want code %s", resp.Error, tt.wantCode)
				}
				if resp.Status != "error" {
					t.Errorf("status field = %q, want error", resp.Status)
				}
				return
			}
			switch {
			case tt.wantCount >= 0:
				if resp.Metadata.Count == nil || *resp.Metadata.Count != tt.wantCount {
					t.Errorf("count = %v, want %d\n%s", resp.Metadata.Count, tt.wantCount, w.Body.String())
				}
			case tt.wantCount == -2:
				if resp.Metadata.Count == nil || *resp.Metadata.Count == 0 {
					t.Errorf("count = %v, want > 0", resp.Metadata.Count)
				}
			}
		})
	}
}

func TestRouter_SimilarPayload(t *testing.T) {
	router := newTestRouter(t, true, nil)

	_, resp := doRequest(t, router, http.MethodGet, "/api/v1/kanji/持/similar?distinct=true", "")
	var items []recommend.Similar
	if err := json.Unmarshal(resp.Data, &items); err != nil {
		t.Fatal(err)
	}
	want := []string{"寺", "指", "時", "詩"}
	if len(items) != len(want) {
		t.Fatalf("got %d items, want %d", len(items), len(want))
	}
	for i, k := range want {
		if items[i].Kanji != k {
			t.Errorf("item %d = %s, want %s", i, items[i].Kanji, k)
		}
	}
	if items[0].Score != 0 {
		t.Errorf("first score = %v, want 0", items[0].Score)
	}
}

func TestRouter_InfoPayload(t *testing.T) {
	router := newTestRouter(t, true, nil)

	_, resp := doRequest(t, router, http.MethodGet, "/api/v1/kanji/持", "")
	var info recommend.KanjiInfo
	if err := json.Unmarshal(resp.Data, &info); err != nil {
		t.Fatal(err)
	}
	if info.Level != 8 || !info.Tracked {
		t.Errorf("level = %d tracked = %v", info.Level, info.Tracked)
	}
	if info.CommonWord == nil || *info.CommonWord != "持つ" {
		t.Errorf("common word = %v", info.CommonWord)
	}
	if len(info.Components) != 2 || len(info.Compounds) != 0 {
		t.Errorf("components = %v compounds = %v", info.Components, info.Compounds)
	}
}

func TestRouter_NoGraph(t *testing.T) {
	router := newTestRouter(t, false, nil)

	for _, path := range []string{
		"/api/v1/health/ready",
		"/api/v1/graph/stats",
		"/api/v1/kanji/持",
		"/api/v1/kanji/持/similar",
		"/api/v1/kanji/持/primary",
	} {
		w, resp := doRequest(t, router, http.MethodGet, path, "")
		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("%s: status = %d, want 503", path, w.Code)
		}
		if path != "/api/v1/health/ready" && (resp.Error == nil || resp.Error.Code != ErrCodeGraphUnavailable) {
			t.Errorf("%s: error = %+v, want %s", path, resp.Error, ErrCodeGraphUnavailable)
		}
	}

	w, _ := doRequest(t, router, http.MethodGet, "/api/v1/health/live", "")
	if w.Code != http.StatusOK {
		t.Errorf("live status = %d, want 200", w.Code)
	}
}

func TestRouter_RequestID(t *testing.T) {
	router := newTestRouter(t, true, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/kanji/持/primary", nil)
	req.Header.Set(middleware.RequestIDHeader, "client-abc-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Header().Get(middleware.RequestIDHeader); got != "client-abc-123" {
		t.Errorf("response header = %q, want client-abc-123", got)
	}
	var resp testResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Metadata.RequestID != "client-abc-123" {
		t.Errorf("metadata request_id = %q", resp.Metadata.RequestID)
	}
}

func TestRouter_RateLimit(t *testing.T) {
	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitRequests = 2
	cfg.RateLimitWindow = time.Minute
	router := newTestRouter(t, true, cfg)

	for i := 0; i < 2; i++ {
		w, _ := doRequest(t, router, http.MethodGet, "/api/v1/graph/stats", "")
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i, w.Code)
		}
	}
	w, resp := doRequest(t, router, http.MethodGet, "/api/v1/graph/stats", "")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", w.Code)
	}
	if resp.Error == nil || resp.Error.Code != ErrCodeRateLimited {
		t.Errorf("error = %+v, want %s", resp.Error, ErrCodeRateLimited)
	}

	// Health has its own, more permissive limiter.
	w, _ = doRequest(t, router, http.MethodGet, "/api/v1/health/live", "")
	if w.Code != http.StatusOK {
		t.Errorf("health status = %d, want 200", w.Code)
	}
}

func TestRouter_Metrics(t *testing.T) {
	router := newTestRouter(t, true, nil)
	doRequest(t, router, http.MethodGet, "/api/v1/kanji/持/similar", "")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `endpoint="/api/v1/kanji/{kanji}/similar"`) {
		t.Error("metrics output does not contain the route pattern label")
	}
}

func TestRouter_SecurityHeaders(t *testing.T) {
	router := newTestRouter(t, true, nil)
	w, _ := doRequest(t, router, http.MethodGet, "/api/v1/graph/stats", "")
	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if w.Header().Get("ETag") == "" {
		t.Error("missing ETag")
	}
}

func TestRouter_VariationSelectorSymbol(t *testing.T) {
	// 曷 followed by VARIATION SELECTOR-17 is its own node.
	const glyph = "曷\U000E0100"
	b := graph.NewBuilder()
	b.AddKanji("褐", 5, "['カツ']", "[]", graph.IntPtr(13))
	b.AddKanji("喝", 6, "['カツ']", "[]", graph.IntPtr(11))
	b.AddComponent(glyph, "褐")
	b.AddComponent(glyph, "喝")
	router := newRouterWithStore(t, b.Build(), nil)

	tests := []struct {
		name      string
		path      string
		wantCount int
	}{
		{"info", "/api/v1/kanji/" + url.PathEscape(glyph), -1},
		{"similar from component", "/api/v1/kanji/" + url.PathEscape(glyph) + "/similar", 2},
		{"primary through component", "/api/v1/kanji/褐/primary", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := doRequest(t, router, http.MethodGet, tt.path, "")
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200\n%s", w.Code, w.Body.String())
			}
			if tt.wantCount >= 0 && (resp.Metadata.Count == nil || *resp.Metadata.Count != tt.wantCount) {
				t.Errorf("count = %v, want %d\n%s", resp.Metadata.Count, tt.wantCount, w.Body.String())
			}
		})
	}

	_, resp := doRequest(t, router, http.MethodGet, "/api/v1/kanji/"+url.PathEscape(glyph), "")
	var info recommend.KanjiInfo
	if err := json.Unmarshal(resp.Data, &info); err != nil {
		t.Fatalf("decode info: %v", err)
	}
	if info.Kanji != glyph || len(info.Compounds) != 2 {
		t.Errorf("info = %+v, want %q with 2 compounds", info, glyph)
	}
}

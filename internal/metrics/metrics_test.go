// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func histogramCount(t *testing.T, h prometheus.Observer) uint64 {
	t.Helper()
	m, ok := h.(prometheus.Metric)
	if !ok {
		t.Fatal("observer is not a metric")
	}
	var out dto.Metric
	if err := m.Write(&out); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	return out.GetHistogram().GetSampleCount()
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/kanji/{kanji}", "200"))
	RecordAPIRequest("GET", "/api/v1/kanji/{kanji}", "200", 3*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/kanji/{kanji}", "200"))

	if after-before != 1 {
		t.Errorf("api_requests_total delta = %v, want 1", after-before)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("active after inc = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active after dec = %v, want %v", got, before)
	}
}

func TestRecordTraversal(t *testing.T) {
	tests := []struct {
		name      string
		algorithm string
		steps     int
		truncated bool
	}{
		{"complete walk", "decay_test", 42, false},
		{"truncated walk", "bounded_test", 1_000_000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			truncBefore := testutil.ToFloat64(TraversalTruncations.WithLabelValues(tt.algorithm))
			countBefore := histogramCount(t, TraversalSteps.WithLabelValues(tt.algorithm))

			RecordTraversal(tt.algorithm, time.Millisecond, tt.steps, tt.truncated)

			if got := histogramCount(t, TraversalSteps.WithLabelValues(tt.algorithm)); got != countBefore+1 {
				t.Errorf("steps sample count = %d, want %d", got, countBefore+1)
			}
			wantDelta := 0.0
			if tt.truncated {
				wantDelta = 1
			}
			if got := testutil.ToFloat64(TraversalTruncations.WithLabelValues(tt.algorithm)) - truncBefore; got != wantDelta {
				t.Errorf("truncations delta = %v, want %v", got, wantDelta)
			}
		})
	}
}

func TestRecordQueryAndCache(t *testing.T) {
	before := testutil.ToFloat64(QueriesTotal.WithLabelValues("ranked_similar", CacheHit))
	RecordQuery("ranked_similar", CacheHit)
	if got := testutil.ToFloat64(QueriesTotal.WithLabelValues("ranked_similar", CacheHit)) - before; got != 1 {
		t.Errorf("queries delta = %v, want 1", got)
	}

	SetCacheEntries(17)
	if got := testutil.ToFloat64(CacheEntries); got != 17 {
		t.Errorf("cache entries = %v, want 17", got)
	}

	errBefore := testutil.ToFloat64(QueryErrors.WithLabelValues("deep_similar"))
	RecordQueryError("deep_similar")
	if got := testutil.ToFloat64(QueryErrors.WithLabelValues("deep_similar")) - errBefore; got != 1 {
		t.Errorf("query errors delta = %v, want 1", got)
	}
}

func TestGraphMetrics(t *testing.T) {
	SetGraphSize(2136, 5120)
	if got := testutil.ToFloat64(GraphNodes); got != 2136 {
		t.Errorf("graph nodes = %v", got)
	}
	if got := testutil.ToFloat64(GraphEdges); got != 5120 {
		t.Errorf("graph edges = %v", got)
	}

	errBefore := testutil.ToFloat64(GraphLoadErrors.WithLabelValues("gexf"))
	RecordGraphLoad("gexf", time.Second, nil)
	RecordGraphLoad("gexf", time.Second, errors.New("boom"))
	if got := testutil.ToFloat64(GraphLoadErrors.WithLabelValues("gexf")) - errBefore; got != 1 {
		t.Errorf("load errors delta = %v, want 1", got)
	}

	for _, result := range []string{ReloadSuccess, ReloadFailure, ReloadUnchanged, ReloadRejected} {
		before := testutil.ToFloat64(GraphReloads.WithLabelValues(result))
		RecordReload(result)
		if got := testutil.ToFloat64(GraphReloads.WithLabelValues(result)) - before; got != 1 {
			t.Errorf("reloads[%s] delta = %v, want 1", result, got)
		}
	}
}

func TestRecordDBQueryAndMCP(t *testing.T) {
	errBefore := testutil.ToFloat64(DBQueryErrors.WithLabelValues("read_nodes"))
	RecordDBQuery("read_nodes", time.Millisecond, nil)
	RecordDBQuery("read_nodes", time.Millisecond, errors.New("no such file"))
	if got := testutil.ToFloat64(DBQueryErrors.WithLabelValues("read_nodes")) - errBefore; got != 1 {
		t.Errorf("db errors delta = %v, want 1", got)
	}

	before := testutil.ToFloat64(MCPToolCalls.WithLabelValues("ranked_similar", "ok"))
	RecordMCPToolCall("ranked_similar", "ok")
	if got := testutil.ToFloat64(MCPToolCalls.WithLabelValues("ranked_similar", "ok")) - before; got != 1 {
		t.Errorf("mcp calls delta = %v, want 1", got)
	}

	rowsBefore := testutil.ToFloat64(WorksheetRows.WithLabelValues("kanji_list"))
	RecordWorksheetRows("kanji_list", 5)
	if got := testutil.ToFloat64(WorksheetRows.WithLabelValues("kanji_list")) - rowsBefore; got != 5 {
		t.Errorf("worksheet rows delta = %v, want 5", got)
	}
}

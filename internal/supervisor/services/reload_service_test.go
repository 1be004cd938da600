// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/kanjigraph/internal/graph"
	"github.com/tomtom215/kanjigraph/internal/metrics"
	"github.com/tomtom215/kanjigraph/internal/recommend"
)

var (
	_ suture.Service = (*GraphReloadService)(nil)
	_ suture.Service = (*CacheJanitorService)(nil)
)

type fakeLoader struct {
	mu      sync.Mutex
	mod     time.Time
	statErr error
	loadErr error
	loads   int
}

func (f *fakeLoader) ModTime() (time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mod, f.statErr
}

func (f *fakeLoader) Load(context.Context) (*graph.Store, recommend.Source, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads++
	if f.loadErr != nil {
		return nil, recommend.Source{}, f.loadErr
	}
	b := graph.NewBuilder()
	b.AddKanji("持", 8, "", "", graph.IntPtr(9))
	b.AddEdge("寺", "持")
	return b.Build(), recommend.Source{Path: "kanji.gexf", Format: "gexf"}, nil
}

func (f *fakeLoader) set(mod time.Time, loadErr error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mod = mod
	f.loadErr = loadErr
}

type fakeTarget struct {
	swaps atomic.Int32
	last  atomic.Pointer[graph.Store]
}

func (f *fakeTarget) SetGraph(store *graph.Store, _ recommend.Source) {
	f.swaps.Add(1)
	f.last.Store(store)
}

func TestGraphReloadService_Check(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	loader := &fakeLoader{mod: start}
	target := &fakeTarget{}
	svc := NewGraphReloadService(loader, target, ReloadConfig{MaxFailures: 2, OpenTimeout: time.Hour}, start, zerolog.Nop())
	ctx := context.Background()

	steps := []struct {
		name      string
		mod       time.Time
		loadErr   error
		want      string
		wantSwaps int32
		wantState gobreaker.State
	}{
		{"unchanged", start, nil, metrics.ReloadUnchanged, 0, gobreaker.StateClosed},
		{"changed", start.Add(time.Minute), nil, metrics.ReloadSuccess, 1, gobreaker.StateClosed},
		{"same again", start.Add(time.Minute), nil, metrics.ReloadUnchanged, 1, gobreaker.StateClosed},
		{"broken artifact", start.Add(2 * time.Minute), errors.New("bad xml"), metrics.ReloadFailure, 1, gobreaker.StateClosed},
		{"still broken trips breaker", start.Add(2 * time.Minute), errors.New("bad xml"), metrics.ReloadFailure, 1, gobreaker.StateOpen},
		{"open breaker rejects", start.Add(3 * time.Minute), nil, metrics.ReloadRejected, 1, gobreaker.StateOpen},
	}
	for _, step := range steps {
		loader.set(step.mod, step.loadErr)
		if got := svc.Check(ctx); got != step.want {
			t.Errorf("%s: Check() = %q, want %q", step.name, got, step.want)
		}
		if got := target.swaps.Load(); got != step.wantSwaps {
			t.Errorf("%s: swaps = %d, want %d", step.name, got, step.wantSwaps)
		}
		if got := svc.State(); got != step.wantState {
			t.Errorf("%s: breaker = %v, want %v", step.name, got, step.wantState)
		}
	}

	if target.last.Load() == nil || target.last.Load().Len() != 2 {
		t.Error("target should hold the last successfully loaded graph")
	}
}

func TestGraphReloadService_StatError(t *testing.T) {
	loader := &fakeLoader{statErr: errors.New("no such file")}
	svc := NewGraphReloadService(loader, &fakeTarget{}, ReloadConfig{}, time.Time{}, zerolog.Nop())
	if got := svc.Check(context.Background()); got != metrics.ReloadFailure {
		t.Errorf("Check() = %q, want failure", got)
	}
	if loader.loads != 0 {
		t.Errorf("Load called %d times after stat error", loader.loads)
	}
}

func TestGraphReloadService_Defaults(t *testing.T) {
	svc := NewGraphReloadService(&fakeLoader{}, &fakeTarget{}, ReloadConfig{}, time.Time{}, zerolog.Nop())
	if svc.config.Interval != time.Minute || svc.config.MaxFailures != 3 || svc.config.OpenTimeout != 5*time.Minute {
		t.Errorf("config = %+v", svc.config)
	}
	if svc.String() != "graph-reload(1m0s)" {
		t.Errorf("String() = %q", svc.String())
	}
}

func TestGraphReloadService_Serve(t *testing.T) {
	start := time.Now()
	loader := &fakeLoader{mod: start.Add(time.Second)}
	target := &fakeTarget{}
	svc := NewGraphReloadService(loader, target, ReloadConfig{Interval: 10 * time.Millisecond}, start, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for target.swaps.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
	if got := target.swaps.Load(); got != 1 {
		t.Errorf("swaps = %d, want 1", got)
	}
}

type countingPruner struct{ calls atomic.Int32 }

func (c *countingPruner) PruneCache() int {
	c.calls.Add(1)
	return 1
}

func TestCacheJanitorService(t *testing.T) {
	pruner := &countingPruner{}
	svc := NewCacheJanitorService(pruner, 5*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for pruner.calls.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
	if pruner.calls.Load() < 2 {
		t.Errorf("PruneCache called %d times, want >= 2", pruner.calls.Load())
	}
	if NewCacheJanitorService(pruner, 0, zerolog.Nop()).interval != time.Minute {
		t.Error("default interval should be 1m")
	}
}

// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

package recommend

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/kanjigraph/internal/cache"
	"github.com/tomtom215/kanjigraph/internal/graph"
	"github.com/tomtom215/kanjigraph/internal/metrics"
	"github.com/tomtom215/kanjigraph/internal/recommend/algorithms"
)

// Operation names used for cache keys, logs and metrics.
const (
	OpRankedSimilar  = "ranked_similar"
	OpSimilarKanji   = "similar_kanji"
	OpDeepSimilar    = "deep_similar"
	OpPrimarySimilar = "primary_similar"
	OpNeighborhood   = "neighborhood"
	OpBreakdown      = "breakdown"
	OpProjection     = "projection"
)

// projectionOffset keeps projection weights finite for score 0.
const projectionOffset = 0.1

// Engine answers similarity queries against the live graph.
// It is safe for concurrent use; SetGraph may be called at any time.
type Engine struct {
	config *Config
	logger zerolog.Logger

	decay   *algorithms.DecayWalk
	bounded *algorithms.BoundedWalk
	primary *algorithms.PrimarySelector

	rerankers []Reranker
	rrMu      sync.RWMutex

	state      atomic.Pointer[graphState]
	generation atomic.Uint64

	// nil when caching is disabled
	cache *cache.LRU[any]
}

// graphState is swapped as a unit so a query never mixes two graphs.
type graphState struct {
	store      *graph.Store
	source     Source
	loadedAt   time.Time
	generation uint64
}

// NewEngine creates an engine with no graph. Queries fail with ErrNoGraph
// until SetGraph is called.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg = cfg.Clone()

	e := &Engine{
		config:    cfg,
		logger:    logger.With().Str("component", "recommend").Logger(),
		decay:     algorithms.NewDecayWalk(cfg.Decay),
		bounded:   algorithms.NewBoundedWalk(cfg.Bounded),
		primary:   algorithms.NewPrimarySelector(cfg.Primary),
		rerankers: make([]Reranker, 0),
	}
	if cfg.Cache.Enabled {
		e.cache = cache.NewLRU[any](cfg.Cache.MaxEntries, cfg.Cache.TTL)
	}
	return e, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// RegisterReranker appends a reranker to the SimilarKanji pipeline.
func (e *Engine) RegisterReranker(rr Reranker) {
	e.rrMu.Lock()
	defer e.rrMu.Unlock()

	e.rerankers = append(e.rerankers, rr)
	e.logger.Info().
		Str("reranker", rr.Name()).
		Msg("registered reranker")
}

// SetGraph makes store the live graph and drops all cached results.
func (e *Engine) SetGraph(store *graph.Store, src Source) {
	next := &graphState{
		store:      store,
		source:     src,
		loadedAt:   time.Now().UTC(),
		generation: e.generation.Add(1),
	}
	e.state.Store(next)

	if e.cache != nil {
		e.cache.Clear()
		metrics.SetCacheEntries(0)
	}
	metrics.SetGraphSize(store.Len(), store.EdgeCount())

	e.logger.Info().
		Int("nodes", store.Len()).
		Int("edges", store.EdgeCount()).
		Str("source", src.Path).
		Str("format", src.Format).
		Uint64("generation", next.generation).
		Msg("graph swapped")
}

// Graph returns the live graph, or nil before the first SetGraph.
func (e *Engine) Graph() *graph.Store {
	if s := e.state.Load(); s != nil {
		return s.store
	}
	return nil
}

// Ready reports whether a graph is loaded.
func (e *Engine) Ready() bool {
	return e.state.Load() != nil
}

// Stats summarizes the live graph.
func (e *Engine) Stats() (GraphStats, error) {
	s, err := e.current()
	if err != nil {
		return GraphStats{}, err
	}
	return GraphStats{
		Nodes:    s.store.Len(),
		Edges:    s.store.EdgeCount(),
		Source:   s.source.Path,
		Format:   s.source.Format,
		LoadedAt: s.loadedAt,
	}, nil
}

// PruneCache drops expired cache entries and returns how many were removed.
func (e *Engine) PruneCache() int {
	if e.cache == nil {
		return 0
	}
	n := e.cache.CleanupExpired()
	metrics.SetCacheEntries(e.cache.Len())
	return n
}

// RankedSimilar returns every tracked neighbor reached by the decay walk
// within depthLimit, sorted ascending by score. The list may contain kanji
// itself and the same neighbor at several scores.
func (e *Engine) RankedSimilar(ctx context.Context, kanji string, depthLimit float64) ([]Similar, error) {
	s, err := e.current()
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("%d:%s:%s:%g", s.generation, OpRankedSimilar, kanji, depthLimit)
	if items, ok := lookup[[]Similar](e, OpRankedSimilar, key); ok {
		return slices.Clone(items), nil
	}

	start := time.Now()
	res, err := e.decay.Walk(ctx, s.store, kanji, depthLimit)
	if err != nil {
		metrics.RecordQueryError(OpRankedSimilar)
		return nil, fmt.Errorf("ranked similar %q: %w", kanji, err)
	}
	e.observeWalk(OpRankedSimilar, e.decay.Name(), kanji, start, len(res.Items), res.Steps, res.Truncated)

	items := make([]Similar, len(res.Items))
	for i, it := range res.Items {
		items[i] = Similar{Kanji: it.Symbol, Score: it.Score}
	}
	e.remember(key, items)
	return slices.Clone(items), nil
}

// SimilarKanji runs RankedSimilar through the registered rerankers.
func (e *Engine) SimilarKanji(ctx context.Context, kanji string, depthLimit, maxScore float64) ([]Similar, error) {
	items, err := e.RankedSimilar(ctx, kanji, depthLimit)
	if err != nil {
		return nil, err
	}

	e.rrMu.RLock()
	chain := slices.Clone(e.rerankers)
	e.rrMu.RUnlock()

	req := RerankRequest{Kanji: kanji, MaxScore: maxScore}
	for _, rr := range chain {
		if err := ctx.Err(); err != nil {
			metrics.RecordQueryError(OpSimilarKanji)
			return nil, fmt.Errorf("similar kanji %q: %w", kanji, err)
		}
		items = rr.Rerank(ctx, req, items)
	}
	return items, nil
}

// DeepSimilar returns the bounded walk from kanji in discovery order.
func (e *Engine) DeepSimilar(ctx context.Context, kanji string, depthLimit, levelLimit int) ([]DeepSimilar, error) {
	s, err := e.current()
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("%d:%s:%s:%d:%d", s.generation, OpDeepSimilar, kanji, depthLimit, levelLimit)
	if items, ok := lookup[[]DeepSimilar](e, OpDeepSimilar, key); ok {
		return slices.Clone(items), nil
	}

	start := time.Now()
	res, err := e.bounded.Walk(ctx, s.store, kanji, depthLimit, levelLimit)
	if err != nil {
		metrics.RecordQueryError(OpDeepSimilar)
		return nil, fmt.Errorf("deep similar %q: %w", kanji, err)
	}
	e.observeWalk(OpDeepSimilar, e.bounded.Name(), kanji, start, len(res.Items), res.Steps, res.Truncated)

	items := make([]DeepSimilar, len(res.Items))
	for i, it := range res.Items {
		items[i] = DeepSimilar{Kanji: it.Symbol, Depth: it.Depth, Balance: it.Balance}
	}
	e.remember(key, items)
	return slices.Clone(items), nil
}

// PrimarySimilar returns at most Primary.MaxResults kanji sharing the
// primary component of kanji, each with level >= levelLimit.
func (e *Engine) PrimarySimilar(ctx context.Context, kanji string, levelLimit int) ([]string, error) {
	s, err := e.current()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("primary similar %q: %w", kanji, err)
	}

	start := time.Now()
	out := e.primary.Select(s.store, kanji, levelLimit)
	metrics.RecordQuery(OpPrimarySimilar, metrics.CacheDisabled)
	e.logQuery(OpPrimarySimilar, kanji, start, len(out), 0)
	return out, nil
}

// Info describes kanji. Unlike the similarity queries it fails with
// ErrKanjiNotFound when the node is absent.
func (e *Engine) Info(kanji string) (KanjiInfo, error) {
	s, err := e.current()
	if err != nil {
		return KanjiInfo{}, err
	}
	node, ok := s.store.Node(kanji)
	if !ok {
		return KanjiInfo{}, fmt.Errorf("%w: %q", ErrKanjiNotFound, kanji)
	}
	on, kun := s.store.Readings(kanji)
	return KanjiInfo{
		Kanji:      node.Symbol,
		Level:      node.Level,
		Tracked:    node.Tracked(),
		Strokes:    node.Strokes,
		ReadingOn:  on,
		ReadingKun: kun,
		CommonWord: node.CommonWord,
		Components: cloneList(s.store.Predecessors(kanji)),
		Compounds:  cloneList(s.store.Successors(kanji)),
	}, nil
}

// Neighborhood returns the components, compounds and uncapped primary
// siblings of kanji. All three lists are empty when kanji has no components.
func (e *Engine) Neighborhood(ctx context.Context, kanji string, levelLimit int) (Neighborhood, error) {
	s, err := e.current()
	if err != nil {
		return Neighborhood{}, err
	}
	if err := ctx.Err(); err != nil {
		return Neighborhood{}, fmt.Errorf("neighborhood %q: %w", kanji, err)
	}
	metrics.RecordQuery(OpNeighborhood, metrics.CacheDisabled)
	return neighborhood(s.store, kanji, levelLimit), nil
}

func neighborhood(g *graph.Store, kanji string, levelLimit int) Neighborhood {
	out := Neighborhood{
		Kanji:      kanji,
		Components: []string{},
		Compounds:  []string{},
		Similar:    []string{},
	}
	components := algorithms.SortedComponents(g, kanji)
	if len(components) == 0 {
		return out
	}
	out.Components = components
	out.Compounds = cloneList(g.Successors(kanji))
	out.Similar = algorithms.Siblings(g, kanji, levelLimit)
	return out
}

// Breakdown lists, for each component of kanji in stroke order, the other
// kanji built on it sorted by level descending.
func (e *Engine) Breakdown(ctx context.Context, kanji string) ([]ComponentBreakdown, error) {
	s, err := e.current()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("breakdown %q: %w", kanji, err)
	}
	metrics.RecordQuery(OpBreakdown, metrics.CacheDisabled)

	g := s.store
	level := g.Level(kanji)
	components := algorithms.SortedComponents(g, kanji)
	out := make([]ComponentBreakdown, 0, len(components))
	for _, c := range components {
		siblings := algorithms.ComponentSiblings(g, c, kanji)
		entry := ComponentBreakdown{
			Component: c,
			Strokes:   g.Strokes(c),
			Siblings:  make([]BreakdownSibling, 0, len(siblings)),
		}
		for _, sib := range siblings {
			on, kun := g.Readings(sib)
			sibLevel := g.Level(sib)
			entry.Siblings = append(entry.Siblings, BreakdownSibling{
				Kanji:      sib,
				Level:      sibLevel,
				Relation:   relationOf(sibLevel, level),
				ReadingOn:  on,
				ReadingKun: kun,
			})
		}
		slices.SortStableFunc(entry.Siblings, func(a, b BreakdownSibling) int {
			return cmp.Compare(b.Level, a.Level)
		})
		out = append(out, entry)
	}
	return out, nil
}

// Projection builds the weighted star graph of the ranked list. Each ranked
// item contributes an edge to kanji unless it is already a node, so only
// its best score counts.
func (e *Engine) Projection(ctx context.Context, kanji string, depthLimit float64) (Projection, error) {
	ranked, err := e.RankedSimilar(ctx, kanji, depthLimit)
	if err != nil {
		return Projection{}, err
	}

	metrics.RecordQuery(OpProjection, metrics.CacheDisabled)

	out := Projection{Kanji: kanji, Nodes: []string{}, Edges: []ProjectionEdge{}}
	present := make(map[string]bool)
	for _, it := range ranked {
		if present[it.Kanji] {
			continue
		}
		for _, n := range [2]string{it.Kanji, kanji} {
			if !present[n] {
				present[n] = true
				out.Nodes = append(out.Nodes, n)
			}
		}
		out.Edges = append(out.Edges, ProjectionEdge{
			Source: it.Kanji,
			Target: kanji,
			Weight: 1 / (it.Score + projectionOffset),
		})
	}
	return out, nil
}

// cloneList copies adjacency so JSON encodes an empty list, never null.
func cloneList(in []string) []string {
	return append(make([]string, 0, len(in)), in...)
}

func (e *Engine) current() (*graphState, error) {
	s := e.state.Load()
	if s == nil {
		return nil, ErrNoGraph
	}
	return s, nil
}

// lookup fetches a cached value and records the query's cache outcome.
func lookup[T any](e *Engine, op, key string) (T, bool) {
	var zero T
	if e.cache == nil {
		metrics.RecordQuery(op, metrics.CacheDisabled)
		return zero, false
	}
	if v, ok := e.cache.Get(key); ok {
		if typed, ok := v.(T); ok {
			metrics.RecordQuery(op, metrics.CacheHit)
			return typed, true
		}
	}
	metrics.RecordQuery(op, metrics.CacheMiss)
	return zero, false
}

func (e *Engine) remember(key string, value any) {
	if e.cache == nil {
		return
	}
	e.cache.Add(key, value)
	metrics.SetCacheEntries(e.cache.Len())
}

func (e *Engine) observeWalk(op, alg, kanji string, start time.Time, results, steps int, truncated bool) {
	metrics.RecordTraversal(alg, time.Since(start), steps, truncated)
	if truncated {
		e.logger.Warn().
			Str("operation", op).
			Str("kanji", kanji).
			Int("steps", steps).
			Msg("walk hit step cap, result truncated")
	}
	e.logQuery(op, kanji, start, results, steps)
}

func (e *Engine) logQuery(op, kanji string, start time.Time, results, steps int) {
	e.logger.Debug().
		Str("operation", op).
		Str("kanji", kanji).
		Int("results", results).
		Int("steps", steps).
		Float64("latency_ms", float64(time.Since(start).Microseconds())/1000).
		Msg("query served")
}

// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/kanjigraph/internal/graph"
)

// FormatVersion is bumped when the key layout or value encoding changes.
const FormatVersion = 1

const (
	metaKey    = "meta:info"
	nodePrefix = "node:"
	edgePrefix = "edge:"
)

var (
	// ErrNoSnapshot is returned when the database holds no snapshot metadata.
	ErrNoSnapshot = errors.New("no snapshot found")

	// ErrVersionMismatch is returned for snapshots written by an
	// incompatible format version.
	ErrVersionMismatch = errors.New("unsupported snapshot version")
)

// Info describes a stored snapshot.
type Info struct {
	Version   int       `json:"version"`
	Nodes     int       `json:"nodes"`
	Edges     int       `json:"edges"`
	CreatedAt time.Time `json:"created_at"`
}

// Open opens (or creates) the snapshot database in dir.
func Open(dir string) (*badger.DB, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB %s: %w", dir, err)
	}
	return db, nil
}

// WriteDir stores the graph as a snapshot in dir.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func WriteDir(ctx context.Context, dir string, store *graph.Store, logger zerolog.Logger) (Info, error) {
	db, err := Open(dir)
	if err != nil {
		return Info{}, err
	}
	defer func() { _ = db.Close() }()

	info, err := Save(ctx, db, store)
	if err != nil {
		return Info{}, err
	}
	logger.Info().
		Str("path", dir).
		Int("nodes", info.Nodes).
		Int("edges", info.Edges).
		Msg("snapshot written")
	return info, nil
}

// ReadDir loads the snapshot stored in dir.
func ReadDir(ctx context.Context, dir string) (*graph.Store, Info, error) {
	db, err := Open(dir)
	if err != nil {
		return nil, Info{}, err
	}
	defer func() { _ = db.Close() }()
	return Load(ctx, db)
}

// Save replaces the content of db with the graph.
func Save(ctx context.Context, db *badger.DB, store *graph.Store) (Info, error) {
	if store == nil || store.Len() == 0 {
		return Info{}, graph.ErrEmptyGraph
	}
	if err := db.DropAll(); err != nil {
		return Info{}, fmt.Errorf("clear snapshot: %w", err)
	}

	wb := db.NewWriteBatch()
	defer wb.Cancel()

	for i, n := range store.Nodes() {
		if err := ctx.Err(); err != nil {
			return Info{}, err
		}
		if err := setJSON(wb, sequenceKey(nodePrefix, i), n); err != nil {
			return Info{}, fmt.Errorf("node %s: %w", n.Symbol, err)
		}
	}
	for i, e := range store.Edges() {
		if err := ctx.Err(); err != nil {
			return Info{}, err
		}
		if err := setJSON(wb, sequenceKey(edgePrefix, i), e); err != nil {
			return Info{}, fmt.Errorf("edge %s->%s: %w", e.Source, e.Target, err)
		}
	}

	info := Info{
		Version:   FormatVersion,
		Nodes:     store.Len(),
		Edges:     store.EdgeCount(),
		CreatedAt: time.Now().UTC(),
	}
	// Metadata goes last so a partial write never looks complete.
	if err := setJSON(wb, []byte(metaKey), info); err != nil {
		return Info{}, fmt.Errorf("meta: %w", err)
	}
	if err := wb.Flush(); err != nil {
		return Info{}, fmt.Errorf("flush snapshot: %w", err)
	}
	return info, nil
}

// Load reads the snapshot stored in db.
func Load(ctx context.Context, db *badger.DB) (*graph.Store, Info, error) {
	var info Info
	b := graph.NewBuilder()

	err := db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(metaKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNoSnapshot
		}
		if err != nil {
			return fmt.Errorf("read meta: %w", err)
		}
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &info)
		}); err != nil {
			return fmt.Errorf("decode meta: %w", err)
		}
		if info.Version != FormatVersion {
			return fmt.Errorf("%w: %d", ErrVersionMismatch, info.Version)
		}

		if err := scan(ctx, txn, nodePrefix, func(val []byte) error {
			var n graph.Node
			if err := json.Unmarshal(val, &n); err != nil {
				return err
			}
			b.AddNode(n)
			return nil
		}); err != nil {
			return fmt.Errorf("read nodes: %w", err)
		}

		return scan(ctx, txn, edgePrefix, func(val []byte) error {
			var e graph.Edge
			if err := json.Unmarshal(val, &e); err != nil {
				return err
			}
			b.AddEdge(e.Source, e.Target)
			return nil
		})
	})
	if err != nil {
		return nil, Info{}, err
	}

	store := b.Build()
	if store.Len() != info.Nodes || store.EdgeCount() != info.Edges {
		return nil, Info{}, fmt.Errorf("snapshot is incomplete: %d/%d nodes, %d/%d edges",
			store.Len(), info.Nodes, store.EdgeCount(), info.Edges)
	}
	return store, info, nil
}

func scan(ctx context.Context, txn *badger.Txn, prefix string, fn func([]byte) error) error {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = true
	opts.Prefix = []byte(prefix)
	it := txn.NewIterator(opts)
	defer it.Close()

	p := []byte(prefix)
	for it.Seek(p); it.ValidForPrefix(p); it.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}
		item := it.Item()
		if err := item.Value(fn); err != nil {
			return fmt.Errorf("key %s: %w", item.Key(), err)
		}
	}
	return nil
}

func setJSON(wb *badger.WriteBatch, key []byte, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return wb.Set(key, data)
}

func sequenceKey(prefix string, seq int) []byte {
	return []byte(fmt.Sprintf("%s%08d", prefix, seq))
}

// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

package database

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/kanjigraph/internal/graph"
	"github.com/tomtom215/kanjigraph/internal/metrics"
)

// unknownStrokes marks a missing stroke count in the nodes file.
const unknownStrokes = -1

// DefaultEdgesPath derives the edges file from the nodes file by replacing
// "nodes" in the base name with "edges" (kanji_nodes.csv -> kanji_edges.csv).
// A base name without "nodes" gets an "_edges" suffix.
func DefaultEdgesPath(nodesPath string) string {
	dir, base := filepath.Split(nodesPath)
	if strings.Contains(base, "nodes") {
		return dir + strings.Replace(base, "nodes", "edges", 1)
	}
	ext := filepath.Ext(base)
	return dir + strings.TrimSuffix(base, ext) + "_edges" + ext
}

// LoadGraph reads a node/edge CSV pair into a Store. Nodes keep file order.
// Edge endpoints missing from the nodes file are inserted as untracked.
func (db *DB) LoadGraph(ctx context.Context, nodesPath, edgesPath string) (*graph.Store, error) {
	b := graph.NewBuilder()

	if err := db.readNodes(ctx, nodesPath, b); err != nil {
		return nil, err
	}
	if b.Len() == 0 {
		return nil, fmt.Errorf("%s: %w", nodesPath, graph.ErrEmptyGraph)
	}
	if err := db.readEdges(ctx, edgesPath, b); err != nil {
		return nil, err
	}

	store := b.Build()
	db.logger.Debug().
		Str("nodes_path", nodesPath).
		Str("edges_path", edgesPath).
		Int("nodes", store.Len()).
		Int("edges", store.EdgeCount()).
		Msg("csv graph loaded")
	return store, nil
}

func (db *DB) readNodes(ctx context.Context, path string, b *graph.Builder) error {
	query := fmt.Sprintf(
		`SELECT Id, Level, Reading_On, Reading_Kun, Strokes FROM read_csv(%s, header=true, delim=',', quote='"', all_varchar=true)`,
		quote(path))

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		metrics.RecordDBQuery("read_nodes", time.Since(start), err)
		return fmt.Errorf("failed to read nodes %s: %w", path, err)
	}
	defer rows.Close()

	line := 1
	for rows.Next() {
		line++
		var id, level, on, kun, strokes sql.NullString
		if err := rows.Scan(&id, &level, &on, &kun, &strokes); err != nil {
			metrics.RecordDBQuery("read_nodes", time.Since(start), err)
			return fmt.Errorf("failed to scan node row %d: %w", line, err)
		}
		n, err := decodeNode(id.String, level.String, on.String, kun.String, strokes.String)
		if err != nil {
			metrics.RecordDBQuery("read_nodes", time.Since(start), err)
			return fmt.Errorf("%s row %d: %w", path, line, err)
		}
		b.AddNode(n)
	}
	err = rows.Err()
	metrics.RecordDBQuery("read_nodes", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to iterate nodes %s: %w", path, err)
	}
	return nil
}

func (db *DB) readEdges(ctx context.Context, path string, b *graph.Builder) error {
	query := fmt.Sprintf(
		`SELECT Source, Target FROM read_csv(%s, header=true, delim=',', quote='"', all_varchar=true)`,
		quote(path))

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		metrics.RecordDBQuery("read_edges", time.Since(start), err)
		return fmt.Errorf("failed to read edges %s: %w", path, err)
	}
	defer rows.Close()

	for rows.Next() {
		var source, target sql.NullString
		if err := rows.Scan(&source, &target); err != nil {
			metrics.RecordDBQuery("read_edges", time.Since(start), err)
			return fmt.Errorf("failed to scan edge row: %w", err)
		}
		if source.String == "" || target.String == "" {
			continue
		}
		b.AddEdge(source.String, target.String)
	}
	err = rows.Err()
	metrics.RecordDBQuery("read_edges", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to iterate edges %s: %w", path, err)
	}
	return nil
}

func decodeNode(id, level, on, kun, strokes string) (graph.Node, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return graph.Node{}, fmt.Errorf("empty Id")
	}
	n := graph.Node{Symbol: id, Level: graph.UntrackedLevel}

	if level = strings.TrimSpace(level); level != "" {
		v, err := parseNumber(level)
		if err != nil {
			return graph.Node{}, fmt.Errorf("invalid Level %q: %w", level, err)
		}
		n.Level = v
	}
	if strokes = strings.TrimSpace(strokes); strokes != "" {
		v, err := parseNumber(strokes)
		if err != nil {
			return graph.Node{}, fmt.Errorf("invalid Strokes %q: %w", strokes, err)
		}
		if v >= 0 {
			n.Strokes = graph.IntPtr(v)
		}
	}
	if on != "" {
		n.ReadingOn = graph.StringPtr(on)
	}
	if kun != "" {
		n.ReadingKun = graph.StringPtr(kun)
	}
	return n, nil
}

// parseNumber accepts integers and integral floats ("9.0"), which is what
// spreadsheet round trips tend to produce.
func parseNumber(s string) (int, error) {
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != float64(int(f)) {
		return 0, fmt.Errorf("not an integer")
	}
	return int(f), nil
}

// WriteGraph exports store as a node/edge CSV pair. Missing strokes are
// written as -1 and missing readings as empty cells.
func (db *DB) WriteGraph(ctx context.Context, store *graph.Store, nodesPath, edgesPath string) error {
	// TEMP tables are per connection.
	conn, err := db.conn.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer func() { _ = conn.Close() }()

	steps := []struct {
		op   string
		stmt string
	}{
		{"create_nodes", `CREATE OR REPLACE TEMP TABLE export_nodes (seq INTEGER, Id VARCHAR, Level INTEGER, Reading_On VARCHAR, Reading_Kun VARCHAR, Strokes INTEGER)`},
		{"create_edges", `CREATE OR REPLACE TEMP TABLE export_edges (seq INTEGER, Source VARCHAR, Target VARCHAR)`},
	}
	for _, s := range steps {
		if err := execConn(ctx, conn, s.op, s.stmt); err != nil {
			return err
		}
	}
	defer func() {
		cleanup := context.WithoutCancel(ctx)
		_ = execConn(cleanup, conn, "drop_export", `DROP TABLE IF EXISTS export_nodes`)
		_ = execConn(cleanup, conn, "drop_export", `DROP TABLE IF EXISTS export_edges`)
	}()

	if err := insertNodes(ctx, conn, store); err != nil {
		return err
	}
	if err := insertEdges(ctx, conn, store); err != nil {
		return err
	}

	copyNodes := fmt.Sprintf(
		`COPY (SELECT Id, Level, Reading_On, Reading_Kun, Strokes FROM export_nodes ORDER BY seq) TO %s (HEADER, DELIMITER ',')`,
		quote(nodesPath))
	if err := execConn(ctx, conn, "copy_nodes", copyNodes); err != nil {
		return err
	}
	copyEdges := fmt.Sprintf(
		`COPY (SELECT Source, Target FROM export_edges ORDER BY seq) TO %s (HEADER, DELIMITER ',')`,
		quote(edgesPath))
	if err := execConn(ctx, conn, "copy_edges", copyEdges); err != nil {
		return err
	}

	db.logger.Info().
		Str("nodes_path", nodesPath).
		Str("edges_path", edgesPath).
		Int("nodes", store.Len()).
		Int("edges", store.EdgeCount()).
		Msg("csv graph written")
	return nil
}

func insertNodes(ctx context.Context, conn *sql.Conn, store *graph.Store) error {
	start := time.Now()
	err := inTx(ctx, conn, `INSERT INTO export_nodes VALUES (?, ?, ?, ?, ?, ?)`, func(stmt *sql.Stmt) error {
		for i, n := range store.Nodes() {
			strokes := unknownStrokes
			if n.Strokes != nil {
				strokes = *n.Strokes
			}
			if _, err := stmt.ExecContext(ctx, i, n.Symbol, n.Level, deref(n.ReadingOn), deref(n.ReadingKun), strokes); err != nil {
				return fmt.Errorf("node %s: %w", n.Symbol, err)
			}
		}
		return nil
	})
	metrics.RecordDBQuery("insert_nodes", time.Since(start), err)
	return err
}

func insertEdges(ctx context.Context, conn *sql.Conn, store *graph.Store) error {
	start := time.Now()
	err := inTx(ctx, conn, `INSERT INTO export_edges VALUES (?, ?, ?)`, func(stmt *sql.Stmt) error {
		for i, e := range store.Edges() {
			if _, err := stmt.ExecContext(ctx, i, e.Source, e.Target); err != nil {
				return fmt.Errorf("edge %s->%s: %w", e.Source, e.Target, err)
			}
		}
		return nil
	})
	metrics.RecordDBQuery("insert_edges", time.Since(start), err)
	return err
}

func inTx(ctx context.Context, conn *sql.Conn, query string, fn func(*sql.Stmt) error) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	if err := fn(stmt); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return err
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to close statement: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

func execConn(ctx context.Context, conn *sql.Conn, op, stmt string) error {
	start := time.Now()
	_, err := conn.ExecContext(ctx, stmt)
	metrics.RecordDBQuery(op, time.Since(start), err)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

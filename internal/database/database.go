// Kanjigraph - Kanji Similarity Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kanjigraph

package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/rs/zerolog"

	"github.com/tomtom215/kanjigraph/internal/metrics"
)

// Options tunes the DuckDB instance.
type Options struct {
	// MaxMemory is passed to SET memory_limit, e.g. "512MB". Empty keeps
	// DuckDB's default.
	MaxMemory string

	// Threads is passed to SET threads. Zero keeps DuckDB's default.
	Threads int
}

// DB wraps an in-memory DuckDB connection pool.
type DB struct {
	conn   *sql.DB
	logger zerolog.Logger
}

// Open starts an in-memory DuckDB instance and applies opts.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Open(ctx context.Context, opts Options, logger zerolog.Logger) (*DB, error) {
	conn, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb: %w", err)
	}

	db := &DB{
		conn:   conn,
		logger: logger.With().Str("component", "database").Logger(),
	}

	var settings []string
	if opts.MaxMemory != "" {
		settings = append(settings, fmt.Sprintf("SET memory_limit = %s", quote(opts.MaxMemory)))
	}
	if opts.Threads > 0 {
		settings = append(settings, fmt.Sprintf("SET threads = %d", opts.Threads))
	}
	for _, stmt := range settings {
		if err := db.exec(ctx, "configure", stmt); err != nil {
			closeQuietly(conn)
			return nil, err
		}
	}

	if err := conn.PingContext(ctx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to ping duckdb: %w", err)
	}
	return db, nil
}

// Close releases the DuckDB instance.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping verifies the instance is usable.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

func (db *DB) exec(ctx context.Context, op, stmt string, args ...any) error {
	start := time.Now()
	_, err := db.conn.ExecContext(ctx, stmt, args...)
	metrics.RecordDBQuery(op, time.Since(start), err)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// quote renders s as a SQL string literal. Table functions and COPY take
// file paths as literals, not parameters.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func closeQuietly(conn *sql.DB) {
	_ = conn.Close()
}

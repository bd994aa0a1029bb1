// Salescope - E-commerce Sales Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salescope

// Package database persists the star-schema dataset to a DuckDB file and
// serves the aggregation queries behind the HTTP API.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/salescope/internal/logging"
	"github.com/tomtom215/salescope/internal/metrics"
)

// queryTimeout bounds each aggregation query. The dataset is small and
// fully local, so anything slower indicates a stuck connection.
const queryTimeout = 30 * time.Second

// DB wraps a DuckDB handle over the persisted warehouse file. The query
// service opens it read-only once at startup and shares the single handle
// across requests; the dataset never changes while the service runs.
type DB struct {
	conn *sql.DB
	path string
}

// OpenReadOnly opens an existing warehouse file for the query service.
// The file must already exist; a missing warehouse is handled by the caller,
// which rebuilds it from the raw inputs.
func OpenReadOnly(path string) (*DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("warehouse file %s not accessible: %w", path, err)
	}

	conn, err := sql.Open("duckdb", path+"?access_mode=read_only")
	if err != nil {
		return nil, fmt.Errorf("failed to open warehouse %s: %w", path, err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping warehouse %s: %w", path, err)
	}

	logging.Info().Str("path", path).Msg("Warehouse opened read-only")
	return &DB{conn: conn, path: path}, nil
}

// openReadWrite opens (creating if needed) a warehouse file for persistence.
func openReadWrite(path string) (*DB, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create warehouse directory %s: %w", dir, err)
		}
	}

	conn, err := sql.Open("duckdb", path+"?access_mode=read_write")
	if err != nil {
		return nil, fmt.Errorf("failed to open warehouse %s: %w", path, err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping warehouse %s: %w", path, err)
	}
	return &DB{conn: conn, path: path}, nil
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping verifies the connection is still usable. Used by the readiness probe.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// ensureContext attaches the query timeout when the caller has no deadline.
func (db *DB) ensureContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, queryTimeout)
}

// queryAndScan runs a query and scans every row with scan. The name labels
// the query in metrics.
func queryAndScan[T any](ctx context.Context, db *DB, name, query string, args []any, scan func(*sql.Rows) (T, error)) ([]T, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, args...)
	metrics.RecordDBQuery(name, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", name, err)
	}
	defer rows.Close()

	var results []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", name, err)
		}
		results = append(results, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s rows: %w", name, err)
	}
	return results, nil
}

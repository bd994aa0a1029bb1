// Salescope - E-commerce Sales Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salescope

package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tomtom215/salescope/internal/logging"
	"github.com/tomtom215/salescope/internal/models"
)

// PersistTables writes a complete dataset to a fresh DuckDB file at path.
// The warehouse is built at a temporary path and renamed into place only
// after every insert succeeded, so readers never observe a partial dataset.
func PersistTables(ctx context.Context, path string, tables *models.Tables) error {
	start := time.Now()

	tmpPath := path + ".building"
	if err := os.RemoveAll(tmpPath); err != nil {
		return fmt.Errorf("failed to remove stale build file %s: %w", tmpPath, err)
	}
	// DuckDB keeps a WAL alongside the file while writing.
	defer os.RemoveAll(tmpPath + ".wal")
	defer os.RemoveAll(tmpPath)

	db, err := openReadWrite(tmpPath)
	if err != nil {
		return err
	}

	if err := db.loadTables(ctx, tables); err != nil {
		db.Close()
		return err
	}

	// CHECKPOINT folds the WAL into the database file so the rename moves
	// a self-contained warehouse.
	if _, err := db.conn.ExecContext(ctx, "CHECKPOINT"); err != nil {
		db.Close()
		return fmt.Errorf("failed to checkpoint warehouse: %w", err)
	}
	if err := db.Close(); err != nil {
		return fmt.Errorf("failed to close warehouse after build: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to move warehouse into place: %w", err)
	}

	logging.Info().
		Str("path", filepath.Clean(path)).
		Int("facts", len(tables.Facts)).
		Dur("duration", time.Since(start)).
		Msg("Warehouse persisted")
	return nil
}

func (db *DB) loadTables(ctx context.Context, tables *models.Tables) error {
	if _, err := db.conn.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin load transaction: %w", err)
	}
	defer tx.Rollback()

	inserters := []func(context.Context, *sql.Tx, *models.Tables) error{
		insertFacts,
		insertDateDim,
		insertTimeDim,
		insertProductDim,
		insertGeographyDim,
		insertMonthlySummary,
		insertCitySummary,
		insertProductSummary,
		insertHourlySummary,
	}
	for _, insert := range inserters {
		if err := insert(ctx, tx, tables); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit load transaction: %w", err)
	}
	return nil
}

// insertBatch prepares stmt once and runs it for every row produced by args.
func insertBatch(ctx context.Context, tx *sql.Tx, table, stmt string, n int, args func(i int) []any) error {
	prepared, err := tx.PrepareContext(ctx, stmt)
	if err != nil {
		return fmt.Errorf("failed to prepare %s insert: %w", table, err)
	}
	defer prepared.Close()

	for i := 0; i < n; i++ {
		if _, err := prepared.ExecContext(ctx, args(i)...); err != nil {
			return fmt.Errorf("failed to insert %s row %d: %w", table, i, err)
		}
	}
	return nil
}

func insertFacts(ctx context.Context, tx *sql.Tx, tables *models.Tables) error {
	const stmt = `INSERT INTO fact_sales VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	return insertBatch(ctx, tx, "fact_sales", stmt, len(tables.Facts), func(i int) []any {
		f := tables.Facts[i]
		return []any{
			f.OrderID, f.OrderedAt, f.Date, f.Product, f.Quantity,
			f.UnitPrice.StringFixed(2), f.Sales.StringFixed(2),
			f.City, f.State, f.CityState,
			f.Year, f.Month, f.MonthName, f.Quarter, f.Day, f.DayOfWeek,
			f.Hour, f.TimePeriod, f.Category,
		}
	})
}

func insertDateDim(ctx context.Context, tx *sql.Tx, tables *models.Tables) error {
	const stmt = `INSERT INTO dim_date VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	return insertBatch(ctx, tx, "dim_date", stmt, len(tables.Dates), func(i int) []any {
		d := tables.Dates[i]
		return []any{d.DateKey, d.Date, d.Year, d.Month, d.MonthName, d.Quarter, d.Day, d.DayOfWeek}
	})
}

func insertTimeDim(ctx context.Context, tx *sql.Tx, tables *models.Tables) error {
	const stmt = `INSERT INTO dim_time VALUES (?, ?, ?)`
	return insertBatch(ctx, tx, "dim_time", stmt, len(tables.Times), func(i int) []any {
		d := tables.Times[i]
		return []any{d.TimeKey, d.Hour, d.TimePeriod}
	})
}

func insertProductDim(ctx context.Context, tx *sql.Tx, tables *models.Tables) error {
	const stmt = `INSERT INTO dim_product VALUES (?, ?, ?, ?)`
	return insertBatch(ctx, tx, "dim_product", stmt, len(tables.Products), func(i int) []any {
		d := tables.Products[i]
		return []any{d.ProductKey, d.ProductName, d.Category, d.StandardPrice.StringFixed(2)}
	})
}

func insertGeographyDim(ctx context.Context, tx *sql.Tx, tables *models.Tables) error {
	const stmt = `INSERT INTO dim_geography VALUES (?, ?, ?, ?)`
	return insertBatch(ctx, tx, "dim_geography", stmt, len(tables.Geography), func(i int) []any {
		d := tables.Geography[i]
		return []any{d.GeoKey, d.City, d.State, d.CityState}
	})
}

func insertMonthlySummary(ctx context.Context, tx *sql.Tx, tables *models.Tables) error {
	const stmt = `INSERT INTO summary_monthly VALUES (?, ?, ?, ?, ?, ?, ?)`
	return insertBatch(ctx, tx, "summary_monthly", stmt, len(tables.Monthly), func(i int) []any {
		r := tables.Monthly[i]
		return []any{
			r.Year, r.Month, r.MonthName, r.TotalOrders,
			r.TotalSales.StringFixed(2), r.TotalQuantity, r.AvgOrderValue.StringFixed(2),
		}
	})
}

func insertCitySummary(ctx context.Context, tx *sql.Tx, tables *models.Tables) error {
	const stmt = `INSERT INTO summary_city VALUES (?, ?, ?, ?, ?, ?)`
	return insertBatch(ctx, tx, "summary_city", stmt, len(tables.Cities), func(i int) []any {
		r := tables.Cities[i]
		return []any{
			r.City, r.State, r.TotalOrders,
			r.TotalSales.StringFixed(2), r.TotalQuantity, r.AvgOrderValue.StringFixed(2),
		}
	})
}

func insertProductSummary(ctx context.Context, tx *sql.Tx, tables *models.Tables) error {
	const stmt = `INSERT INTO summary_product VALUES (?, ?, ?, ?, ?, ?)`
	return insertBatch(ctx, tx, "summary_product", stmt, len(tables.ProductsSummary), func(i int) []any {
		r := tables.ProductsSummary[i]
		return []any{
			r.Product, r.Category, r.TotalOrders,
			r.TotalSales.StringFixed(2), r.TotalQuantity, r.AvgPrice.StringFixed(2),
		}
	})
}

func insertHourlySummary(ctx context.Context, tx *sql.Tx, tables *models.Tables) error {
	const stmt = `INSERT INTO summary_hourly VALUES (?, ?, ?, ?)`
	return insertBatch(ctx, tx, "summary_hourly", stmt, len(tables.Hourly), func(i int) []any {
		r := tables.Hourly[i]
		return []any{r.Hour, r.TimePeriod, r.TotalOrders, r.TotalSales.StringFixed(2)}
	})
}

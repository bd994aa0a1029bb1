// Salescope - E-commerce Sales Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salescope

// Package pipeline implements the transform pipeline: it loads the monthly
// raw sales exports, cleans and coerces them into the canonical dataset,
// derives the star-schema dimension and summary tables, and persists the
// result as CSV artifacts plus a DuckDB warehouse file.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tomtom215/salescope/internal/config"
	"github.com/tomtom215/salescope/internal/database"
	"github.com/tomtom215/salescope/internal/logging"
	"github.com/tomtom215/salescope/internal/metrics"
	"github.com/tomtom215/salescope/internal/models"
)

// Run executes the full transform pipeline. The run is all-or-nothing: any
// coercion or persistence failure aborts before outputs are replaced, so a
// failed run leaves the previous dataset untouched.
func Run(ctx context.Context, cfg config.PipelineConfig) (*models.Tables, error) {
	start := time.Now()
	tables, err := run(ctx, cfg)
	metrics.RecordPipelineRun(time.Since(start), err)
	if err != nil {
		return nil, err
	}

	logging.Info().
		Dur("duration", time.Since(start)).
		Int("records", len(tables.Facts)).
		Msg("Pipeline run complete")
	logSummary(tables)
	return tables, nil
}

func run(ctx context.Context, cfg config.PipelineConfig) (*models.Tables, error) {
	stageStart := time.Now()
	rows, err := loadRawFiles(cfg.InputDir)
	if err != nil {
		return nil, err
	}
	metrics.PipelineRecordsLoaded.Add(float64(len(rows)))
	metrics.RecordPipelineStage("load", time.Since(stageStart))

	stageStart = time.Now()
	rows = cleanRows(rows)
	metrics.RecordPipelineStage("clean", time.Since(stageStart))

	stageStart = time.Now()
	facts := make([]models.SaleRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := coerceRow(row)
		if err != nil {
			return nil, err
		}
		facts = append(facts, rec)
	}
	metrics.RecordPipelineStage("coerce", time.Since(stageStart))

	stageStart = time.Now()
	facts = filterYear(facts, cfg.TargetYear)
	metrics.RecordPipelineStage("filter", time.Since(stageStart))

	stageStart = time.Now()
	tables := buildTables(facts)
	metrics.RecordPipelineStage("tables", time.Since(stageStart))

	stageStart = time.Now()
	if err := persistOutputs(ctx, cfg, tables); err != nil {
		return nil, err
	}
	metrics.RecordPipelineStage("persist", time.Since(stageStart))

	return tables, nil
}

// persistOutputs commits the CSV artifacts and the DuckDB warehouse as one
// unit. The CSVs are staged into a sibling temp directory and the warehouse
// is built at a temporary path before either is renamed into place, so a
// failure in either build leaves both previous outputs untouched. The
// warehouse commits first; the CSV swap that follows is two renames of
// already-written data.
func persistOutputs(ctx context.Context, cfg config.PipelineConfig, tables *models.Tables) error {
	parent := filepath.Dir(cfg.OutputDir)
	if err := os.MkdirAll(parent, 0o750); err != nil {
		return fmt.Errorf("failed to create output parent %s: %w", parent, err)
	}
	staging, err := os.MkdirTemp(parent, ".staging-")
	if err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer os.RemoveAll(staging)

	if err := writeArtifacts(staging, tables); err != nil {
		return err
	}

	// Builds, checkpoints, and renames the warehouse; any failure inside
	// returns before the staged CSVs are swapped in below.
	if err := database.PersistTables(ctx, cfg.DatabasePath, tables); err != nil {
		return err
	}

	if err := os.RemoveAll(cfg.OutputDir); err != nil {
		return fmt.Errorf("failed to remove previous output %s: %w", cfg.OutputDir, err)
	}
	if err := os.Rename(staging, cfg.OutputDir); err != nil {
		return fmt.Errorf("failed to move staging into place: %w", err)
	}
	return nil
}

// filterYear keeps only records from the target year. Applying the filter to
// already-filtered data is a no-op, so re-running the pipeline over its own
// output would not change the dataset.
func filterYear(facts []models.SaleRecord, year int) []models.SaleRecord {
	kept := make([]models.SaleRecord, 0, len(facts))
	dropped := 0
	for _, f := range facts {
		if f.Year != year {
			dropped++
			continue
		}
		kept = append(kept, f)
	}

	logging.Info().
		Int("year", year).
		Int("kept", len(kept)).
		Int("dropped", dropped).
		Msg("Year filter applied")
	recordDropped("year_filter", dropped)
	return kept
}

// recordDropped counts cleaning drops without emitting zero-valued samples.
func recordDropped(reason string, n int) {
	if n > 0 {
		metrics.PipelineRecordsDropped.WithLabelValues(reason).Add(float64(n))
	}
}

// logSummary logs headline statistics of the freshly built dataset.
func logSummary(tables *models.Tables) {
	revenue := decimal.Zero
	for _, m := range tables.Monthly {
		revenue = revenue.Add(m.TotalSales)
	}
	evt := logging.Info().
		Str("total_revenue", revenue.StringFixed(2)).
		Int("total_orders", len(tables.Facts)).
		Int("unique_products", len(tables.ProductsSummary)).
		Int("unique_cities", len(tables.Cities)).
		Int("months", len(tables.Monthly))
	if len(tables.Cities) > 0 {
		evt = evt.Str("top_city", tables.Cities[0].City)
	}
	if len(tables.ProductsSummary) > 0 {
		evt = evt.Str("top_product", tables.ProductsSummary[0].Product)
	}
	evt.Msg("Dataset summary")
}

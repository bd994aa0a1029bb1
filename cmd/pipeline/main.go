// Salescope - E-commerce Sales Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salescope

// Package main is the standalone transform pipeline runner.
//
// It rebuilds the star-schema dataset from the raw monthly exports without
// starting the query service. Use it after dropping new export files into
// the input directory; the query service only regenerates a warehouse that
// is missing, never one that exists. Configuration is shared with the
// server binary.
//
// # Example usage
//
//	export SALES_INPUT_DIR=./dataset
//	export DUCKDB_PATH=./warehouse/sales.duckdb
//	./salescope-pipeline
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/salescope/internal/config"
	"github.com/tomtom215/salescope/internal/logging"
	"github.com/tomtom215/salescope/internal/pipeline"
)

func main() {
	if err := run(); err != nil {
		logging.Error().Err(err).Msg("Fatal error")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logging.Info().
		Str("input_dir", cfg.Pipeline.InputDir).
		Str("output_dir", cfg.Pipeline.OutputDir).
		Str("database", cfg.Pipeline.DatabasePath).
		Int("target_year", cfg.Pipeline.TargetYear).
		Msg("Pipeline run starting")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if _, err := pipeline.Run(ctx, cfg.Pipeline); err != nil {
		return err
	}
	return nil
}

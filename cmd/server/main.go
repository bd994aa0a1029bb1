// Salescope - E-commerce Sales Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salescope

// Package main is the entry point for the Salescope query service.
//
// Salescope turns raw monthly e-commerce sales exports into a star-schema
// analytics dataset and serves pre-aggregated dashboard views over HTTP.
//
// # Startup sequence
//
//  1. Configuration: Koanf v2 layered loading (env > config.yaml > defaults)
//  2. Dataset: open the persisted DuckDB warehouse read-only; if the
//     warehouse is missing, run the transform pipeline over the raw inputs
//     to regenerate it first
//  3. HTTP server: Chi router under a Suture supervisor tree
//
// # Dataset regeneration
//
// The warehouse file is the product of the transform pipeline. When it does
// not exist at startup the service rebuilds it synchronously from the raw
// export directory and logs that it did so. A missing raw input directory is
// fatal; the service never serves fabricated data. An existing warehouse is
// never rebuilt here; to reprocess new raw exports, run the standalone
// pipeline binary (cmd/pipeline) before starting the service.
//
// # Signal handling
//
// SIGINT and SIGTERM trigger graceful shutdown: the server stops accepting
// connections, drains in-flight requests (10s timeout), and closes the
// warehouse handle.
//
// # Example usage
//
//	export SALES_INPUT_DIR=./dataset
//	export DUCKDB_PATH=./warehouse/sales.duckdb
//	export HTTP_PORT=5000
//	./salescope
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/salescope/internal/api"
	"github.com/tomtom215/salescope/internal/config"
	"github.com/tomtom215/salescope/internal/database"
	"github.com/tomtom215/salescope/internal/logging"
	"github.com/tomtom215/salescope/internal/metrics"
	"github.com/tomtom215/salescope/internal/pipeline"
	"github.com/tomtom215/salescope/internal/supervisor"
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
		Str("database", cfg.Pipeline.DatabasePath).
		Int("port", cfg.Server.Port).
		Msg("Salescope starting")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := openOrBuildWarehouse(ctx, cfg.Pipeline)
	if err != nil {
		return err
	}
	defer db.Close()

	if count, err := db.FactCount(ctx); err == nil {
		metrics.DatasetRecords.Set(float64(count))
		logging.Info().Int64("records", count).Msg("Dataset ready")
	} else {
		logging.Warn().Err(err).Msg("Failed to count dataset records")
	}

	handler := api.NewHandler(db, cfg.API)
	router := api.NewRouter(handler, api.NewChiMiddleware(&api.ChiMiddlewareConfig{
		CORSAllowedOrigins: cfg.API.CORSOrigins,
		CORSAllowedMethods: []string{"GET", "OPTIONS"},
		CORSAllowedHeaders: []string{"Content-Type"},
		CORSMaxAge:         86400,
		RateLimitRequests:  cfg.API.RateLimitRequests,
		RateLimitWindow:    cfg.API.RateLimitWindow,
	}))

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddAPIService(supervisor.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Salescope stopped gracefully")
	return nil
}

// openOrBuildWarehouse opens the persisted warehouse read-only, regenerating
// it from the raw inputs first when the file does not exist. Regeneration is
// explicit and logged; a missing raw input directory aborts startup.
func openOrBuildWarehouse(ctx context.Context, cfg config.PipelineConfig) (*database.DB, error) {
	if _, err := os.Stat(cfg.DatabasePath); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat warehouse %s: %w", cfg.DatabasePath, err)
		}

		logging.Warn().
			Str("path", cfg.DatabasePath).
			Str("input_dir", cfg.InputDir).
			Msg("Warehouse missing, regenerating from raw inputs")
		if _, err := pipeline.Run(ctx, cfg); err != nil {
			var noData *pipeline.NoInputDataError
			if errors.As(err, &noData) {
				return nil, fmt.Errorf("cannot regenerate dataset: %w", err)
			}
			return nil, fmt.Errorf("pipeline run failed: %w", err)
		}
	}

	return database.OpenReadOnly(cfg.DatabasePath)
}

// Steamlens - Steam Playtime Analytics and Recommendation Service
// Copyright 2026 Steamlens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/steamlens/steamlens

// Package main is the entry point for the Steamlens server.
//
// Steamlens serves read-only analytical queries and recommendations over a
// Steam playtime and review export. The export (parquet or CSV) is loaded
// into an in-memory DuckDB instance at startup; the recommendation models
// are trained from the same data under supervision.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: environment variables > config file > defaults (Koanf v2)
//  2. Dataset store: in-memory DuckDB, export loaded and validated
//  3. Recommendation engine: user-neighbor and content similarity models
//  4. HTTP server: query and recommendation endpoints behind Chi
//  5. Supervisor tree: trainer and HTTP server under suture supervision
//
// # Configuration
//
// Key environment variables:
//   - HTTP_PORT: listen port (default 8000)
//   - DATASET_PATH: export file to load (default /data/steam_export.parquet)
//   - RECOMMEND_TRAIN_ON_STARTUP: train models at boot (default true)
//   - LOG_LEVEL, LOG_FORMAT: logging behavior
//   - CONFIG_PATH: optional YAML config file
//
// # Signal Handling
//
// The server shuts down gracefully on SIGINT and SIGTERM: it stops accepting
// connections, drains in-flight requests within the shutdown timeout, then
// closes the dataset store.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/steamlens/steamlens/internal/api"
	"github.com/steamlens/steamlens/internal/config"
	"github.com/steamlens/steamlens/internal/dataset"
	"github.com/steamlens/steamlens/internal/logging"
	"github.com/steamlens/steamlens/internal/recommend"
	"github.com/steamlens/steamlens/internal/recommend/algorithms"
	"github.com/steamlens/steamlens/internal/supervisor"
	"github.com/steamlens/steamlens/internal/supervisor/services"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("dataset_path", cfg.Dataset.Path).
		Int("port", cfg.Server.Port).
		Msg("Starting Steamlens")

	// Open the in-memory DuckDB store and load the export
	store, err := dataset.Open(&cfg.Dataset)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open dataset store")
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing dataset store")
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := store.Load(ctx); err != nil {
		logging.Fatal().Err(err).Msg("Failed to load dataset export")
	}
	logging.Info().Int64("rows", store.RowCount()).Msg("Dataset loaded")

	// Recommendation engine trains from the loaded store; the concrete
	// models are wired here so the recommend package stays algorithm-free
	engine := recommend.NewEngine(store, &cfg.Recommend,
		algorithms.NewUserNeighborCF(algorithms.UserCFConfig{
			Neighbors:        cfg.Recommend.Neighbors,
			ItemsPerNeighbor: cfg.Recommend.ItemsPerNeighbor,
			MinSimilarity:    cfg.Recommend.MinSimilarity,
			NumWorkers:       cfg.Recommend.NumWorkers,
		}),
		algorithms.NewContentTFIDF(algorithms.ContentConfig{
			SampleRatio: cfg.Recommend.SampleRatio,
		}),
	)

	// HTTP handler and router
	handler := api.NewHandler(store, engine, cfg)
	router := api.NewRouter(handler, cfg)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Supervisor tree: bridge zerolog to slog for sutureslog
	slogLogger := logging.NewSlogLogger()
	tree, err := supervisor.NewSupervisorTree(slogLogger, supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddModelService(services.NewTrainerService(engine, services.TrainerServiceConfig{
		TrainOnStartup: cfg.Recommend.TrainOnStartup,
		TrainInterval:  cfg.Recommend.TrainInterval,
	}, logging.Logger()))

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	// Graceful shutdown on SIGINT/SIGTERM
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Drain the error channel until the supervisor finishes
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}

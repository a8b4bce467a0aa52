// Restaurant Recommendation - Hybrid Graph Recommendations and Geospatial Search
// Copyright 2026 Gayathri Priya (Gayathri-Priya98)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Gayathri-Priya98/restaurant-recommendation

// Command server runs the hybrid restaurant recommendation service.
//
// Startup order matters: configuration, logging, model weights, then the
// initial dataset snapshot, and only then the HTTP surface. A missing or
// corrupt weights artifact is fatal; a failing dataset source at startup is
// fatal too, since there is nothing to serve from.
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

	"github.com/Gayathri-Priya98/restaurant-recommendation/internal/api"
	"github.com/Gayathri-Priya98/restaurant-recommendation/internal/config"
	"github.com/Gayathri-Priya98/restaurant-recommendation/internal/dataset"
	"github.com/Gayathri-Priya98/restaurant-recommendation/internal/embedding"
	"github.com/Gayathri-Priya98/restaurant-recommendation/internal/geosearch"
	"github.com/Gayathri-Priya98/restaurant-recommendation/internal/logging"
	"github.com/Gayathri-Priya98/restaurant-recommendation/internal/places"
	"github.com/Gayathri-Priya98/restaurant-recommendation/internal/recommend"
	"github.com/Gayathri-Priya98/restaurant-recommendation/internal/supervisor"
	"github.com/Gayathri-Priya98/restaurant-recommendation/internal/supervisor/services"
)

func main() {
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
		Str("dataset", cfg.Dataset.Path).
		Str("model", cfg.Model.Path).
		Int("port", cfg.Server.Port).
		Msg("Starting restaurant recommendation service")

	model, meta, err := embedding.Load(cfg.Model.Path)
	if err != nil {
		logging.Fatal().Err(err).Str("path", cfg.Model.Path).Msg("Failed to load embedding model")
	}
	logging.Info().
		Str("name", meta.Name).
		Int("version", meta.Version).
		Int("input_dim", model.InputDim()).
		Int("output_dim", model.OutputDim()).
		Msg("Embedding model loaded")

	source := dataset.NewDuckDBSource(cfg.Dataset.Path)
	store := recommend.NewStore(source, model, model.InputDim())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := store.Rebuild(ctx); err != nil {
		logging.Fatal().Err(err).Msg("Failed to build initial snapshot")
	}

	engine := recommend.NewEngine(store, recommend.Options{
		TopN:             cfg.Recommend.TopN,
		EmbeddingK:       cfg.Recommend.EmbeddingK,
		SimilarUsers:     cfg.Recommend.SimilarUsers,
		GeneratorTimeout: cfg.Recommend.GeneratorTimeout,
	})

	var lookup api.PlacesLookup
	if cfg.Places.Enabled {
		lookup = places.NewClient(cfg.Places)
		logging.Info().Int("radius_m", cfg.Places.RadiusM).Msg("Places lookup enabled")
	}

	handlers := api.NewHandlers(engine, store, lookup, geosearch.Options{
		RadiusKM:   cfg.Search.RadiusKM,
		MaxResults: cfg.Search.MaxResults,
	})
	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           api.NewRouter(cfg.Server, handlers),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if cfg.Dataset.RefreshInterval > 0 {
		tree.AddDataService(services.NewRefreshService(store, services.RefreshServiceConfig{
			Interval: cfg.Dataset.RefreshInterval,
		}, logging.Logger()))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	errCh := tree.ServeBackground(ctx)
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	logging.Info().Msg("Service stopped gracefully")
}

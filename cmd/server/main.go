// Wayfinder - Learning Content Recommendations over Topic Trees
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinder-learn/wayfinder

// Command server runs the Wayfinder recommendation API: it loads the topic
// tree, wires the activity log store, and serves the resume/next/explore
// strategies over HTTP under a supervisor tree.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/wayfinder-learn/wayfinder/internal/activity"
	"github.com/wayfinder-learn/wayfinder/internal/api"
	"github.com/wayfinder-learn/wayfinder/internal/config"
	"github.com/wayfinder-learn/wayfinder/internal/logging"
	"github.com/wayfinder-learn/wayfinder/internal/recommend"
	"github.com/wayfinder-learn/wayfinder/internal/supervisor"
	"github.com/wayfinder-learn/wayfinder/internal/supervisor/services"
	"github.com/wayfinder-learn/wayfinder/internal/topics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("tree_path", cfg.Tree.Path).
		Str("db_path", cfg.Database.Path).
		Msg("Configuration loaded")

	// Activity log store: DuckDB when a path is configured, otherwise the
	// in-memory store. Either way the circuit breaker wraps it so a failing
	// store degrades recommendations instead of hanging them.
	var (
		inner  activity.Store
		pinger api.Pinger
	)
	if cfg.Database.Path == "" {
		mem := activity.NewMemoryStore()
		if cfg.Database.SeedMockData {
			logging.Info().Msg("Seeding mock activity data")
			mem.SeedMock()
		}
		inner = mem
		logging.Info().Msg("Using in-memory activity store")
	} else {
		duck, err := activity.OpenDuckDB(context.Background(), cfg.Database.Path)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to open activity database")
		}
		defer func() {
			if err := duck.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing activity database")
			}
		}()
		if cfg.Database.SeedMockData {
			logging.Info().Msg("Seeding mock activity data")
			groups, records := activity.MockData()
			if err := duck.Seed(context.Background(), groups, records); err != nil {
				logging.Fatal().Err(err).Msg("Failed to seed mock data")
			}
		}
		inner = duck
		pinger = duck
		logging.Info().Str("path", cfg.Database.Path).Msg("Activity database opened")
	}
	store := activity.NewBreakerStore(inner)
	signals := activity.NewSignals(store)

	// The first catalog build is synchronous and fatal on failure: serving
	// with no tree at all is worse than not starting.
	catalog := topics.NewCatalog(topics.FileSource{Path: cfg.Tree.Path}, logging.Logger())
	if err := catalog.Build(context.Background()); err != nil {
		logging.Fatal().Err(err).Str("path", cfg.Tree.Path).Msg("Failed to build topic catalog")
	}
	logging.Info().
		Int("catalog_version", catalog.Version()).
		Msg("Topic catalog built")

	service := recommend.NewService(catalog, signals, logging.Logger(), cfg.Recommend.Seed)

	mwConfig := api.DefaultChiMiddlewareConfig()
	mwConfig.CORSAllowedOrigins = cfg.API.CORSOrigins
	mwConfig.RateLimitRequests = cfg.API.RateLimitRequests
	mwConfig.RateLimitWindow = cfg.API.RateLimitWindow
	mwConfig.RateLimitDisabled = cfg.API.RateLimitDisabled

	handler := api.NewHandler(service, catalog, pinger)
	router := api.NewRouter(handler, mwConfig)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// sutureslog speaks slog, so the supervisor gets the zerolog bridge.
	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddDataService(services.NewCatalogService(catalog, cfg.Tree.RefreshInterval))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
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

	// Drain until the supervisor closes the channel.
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	logging.Info().Msg("Server stopped gracefully")
}

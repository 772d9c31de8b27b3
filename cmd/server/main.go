// Clickrec - Click-Based Item Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickrec

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tomtom215/clickrec/internal/api"
	"github.com/tomtom215/clickrec/internal/config"
	"github.com/tomtom215/clickrec/internal/logging"
	"github.com/tomtom215/clickrec/internal/supervisor"
	"github.com/tomtom215/clickrec/internal/supervisor/services"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

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
		Str("version", version).
		Str("addr", cfg.Server.Addr()).
		Bool("events_enabled", cfg.Events.Enabled).
		Bool("metrics_enabled", cfg.Metrics.Enabled).
		Msg("Starting clickrec with supervisor tree")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logging.Error().Err(err).Msg("Server exited with error")
		stop()
		os.Exit(1)
	}
	logging.Info().Msg("Application stopped gracefully")
}

// run wires every component and blocks until ctx is canceled or the tree fails.
func run(ctx context.Context, cfg *config.Config) error {
	rec, err := initRecommend(cfg, logging.Logger(), prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}

	handler, err := api.NewHandler(rec.Engine, version)
	if err != nil {
		return err
	}

	events, err := initEvents(ctx, cfg, rec.Engine, logging.WithComponent("events"))
	if err != nil {
		return err
	}
	defer func() {
		if err := events.Close(); err != nil {
			logging.Warn().Err(err).Msg("Failed to close event transport")
		}
	}()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return err
	}

	// Messaging layer services
	var sweeper services.DedupSweeper
	if events != nil {
		handler.AddReadinessCheck("events", events.Service.Ready)
		tree.AddMessagingService(events.Service)
		sweeper = events.Service
		logging.Info().Msg("Event router added to supervisor tree")
	}
	tree.AddMessagingService(services.NewMaintenanceService(rec.Engine, sweeper, 0, logging.WithComponent("maintenance")))

	// API layer services
	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(&cfg.Security), &cfg.Metrics)
	server := newHTTPServer(cfg, router.SetupChi())
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logging.WithComponent("http")))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	logging.Info().Msg("Starting supervisor tree...")
	err = tree.Serve(ctx)

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// newHTTPServer applies the server section's address and timeouts.
func newHTTPServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           h,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}
}

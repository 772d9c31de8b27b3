// Clickrec - Click-Based Item Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickrec

package main

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/tomtom215/clickrec/internal/config"
	"github.com/tomtom215/clickrec/internal/metrics"
	"github.com/tomtom215/clickrec/internal/recommend"
)

// RecommendComponents holds the engine and its scrape-time collector.
type RecommendComponents struct {
	Engine    *recommend.Engine
	Collector *metrics.EngineCollector
}

// initRecommend creates the engine and registers its collector with
// registerer. A nil registerer skips registration.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initRecommend(cfg *config.Config, logger zerolog.Logger, registerer prometheus.Registerer) (*RecommendComponents, error) {
	engine, err := recommend.NewEngine(cfg.Recommend.EngineConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("create recommendation engine: %w", err)
	}

	collector := metrics.NewEngineCollector(engine)
	if registerer != nil {
		if err := registerer.Register(collector); err != nil {
			return nil, fmt.Errorf("register engine collector: %w", err)
		}
	}

	limits := engine.GetConfig().Limits
	logger.Info().
		Int("default_top_n", limits.DefaultTopN).
		Int("max_top_n", limits.MaxTopN).
		Int("max_batch_size", limits.MaxBatchSize).
		Msg("recommendation engine initialized")

	return &RecommendComponents{Engine: engine, Collector: collector}, nil
}

// Clickrec - Click-Based Item Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickrec

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/clickrec/internal/recommend"
)

const defaultMaintenanceInterval = time.Minute

// EngineStats is the read side of the engine the service reports on.
type EngineStats interface {
	Stats() recommend.Stats
	GetMetrics() recommend.Metrics
}

// DedupSweeper removes expired event IDs and reports dedup counters.
type DedupSweeper interface {
	CleanupDedup() int
	DedupStats() (duplicates, unique int64, size int)
}

// MaintenanceService periodically sweeps the event dedup cache and logs
// engine statistics.
type MaintenanceService struct {
	engine   EngineStats
	sweeper  DedupSweeper
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewMaintenanceService creates the service. sweeper may be nil when events
// are disabled. A non-positive interval means one minute.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewMaintenanceService(engine EngineStats, sweeper DedupSweeper, interval time.Duration, logger zerolog.Logger) *MaintenanceService {
	if interval <= 0 {
		interval = defaultMaintenanceInterval
	}
	return &MaintenanceService{
		engine:   engine,
		sweeper:  sweeper,
		interval: interval,
		logger:   logger.With().Str("service", "maintenance").Logger(),
		name:     "maintenance",
	}
}

// Serve implements suture.Service.
func (s *MaintenanceService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.RunOnce()
		}
	}
}

// RunOnce performs one maintenance pass.
func (s *MaintenanceService) RunOnce() {
	var (
		swept        int
		dups, unique int64
		remembered   int
	)
	if s.sweeper != nil {
		swept = s.sweeper.CleanupDedup()
		dups, unique, remembered = s.sweeper.DedupStats()
	}

	stats := s.engine.Stats()
	m := s.engine.GetMetrics()
	s.logger.Info().
		Int("users", stats.UserCount).
		Int("items", stats.ItemCount).
		Int("cache_entries", stats.CacheSize).
		Float64("cache_hit_rate", m.HitRate()).
		Int64("recommend_requests", m.RequestCount).
		Int("dedup_swept", swept).
		Int64("dedup_duplicates", dups).
		Int64("dedup_unique", unique).
		Int("dedup_size", remembered).
		Msg("engine stats")
}

// String implements fmt.Stringer; suture uses it in log messages.
func (s *MaintenanceService) String() string {
	return s.name
}

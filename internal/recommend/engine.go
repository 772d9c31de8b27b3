// Clickrec - Click-Based Item Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickrec

package recommend

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Engine holds the click matrix and the derived similarity cache and produces
// item-based collaborative filtering recommendations from them.
// It is safe for concurrent use.
type Engine struct {
	// Configuration
	config *Config
	logger zerolog.Logger

	// mu guards clicks, itemUsers and similarities. Every operation that
	// reads or writes any of them holds it for its full duration.
	mu sync.Mutex

	// clicks is the interaction matrix: user -> item -> count (>= 1).
	clicks map[UserID]map[ItemID]int

	// itemUsers mirrors clicks as item -> set of users who clicked it.
	// It is maintained in the same critical section as clicks and is never stale.
	itemUsers map[ItemID]map[UserID]struct{}

	// similarities is the similarity cache: source item -> target item -> score.
	// Invalidation replaces the whole map; entries are never edited in place.
	similarities map[ItemID]map[ItemID]float64

	// Metrics
	requestCount   atomic.Int64
	clicksRecorded atomic.Int64
	cacheHits      atomic.Int64
	cacheMisses    atomic.Int64
	invalidations  atomic.Int64
	resets         atomic.Int64
}

// NewEngine creates a new recommendation engine with empty state.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		config:       cfg,
		logger:       logger.With().Str("component", "recommend").Logger(),
		clicks:       make(map[UserID]map[ItemID]int),
		itemUsers:    make(map[ItemID]map[UserID]struct{}),
		similarities: make(map[ItemID]map[ItemID]float64),
	}, nil
}

// RecordClick adds one click for the given user and item and invalidates the
// similarity cache. It never fails.
func (e *Engine) RecordClick(userID UserID, itemID ItemID) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.recordLocked(userID, itemID)
	e.invalidateLocked()
	e.clicksRecorded.Add(1)
}

// RecordClicks applies the clicks in order and invalidates the similarity
// cache once for the whole batch. An empty batch changes nothing.
func (e *Engine) RecordClicks(batch []Click) {
	if len(batch) == 0 {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for _, c := range batch {
		e.recordLocked(c.UserID, c.ItemID)
	}
	e.invalidateLocked()
	e.clicksRecorded.Add(int64(len(batch)))

	e.logger.Debug().
		Int("clicks", len(batch)).
		Msg("recorded click batch")
}

// recordLocked increments the click count for (userID, itemID).
// Must be called with mu held.
func (e *Engine) recordLocked(userID UserID, itemID ItemID) {
	row := e.clicks[userID]
	if row == nil {
		row = make(map[ItemID]int)
		e.clicks[userID] = row
	}
	row[itemID]++

	users := e.itemUsers[itemID]
	if users == nil {
		users = make(map[UserID]struct{})
		e.itemUsers[itemID] = users
	}
	users[userID] = struct{}{}
}

// invalidateLocked discards every similarity cache entry.
// Must be called with mu held.
func (e *Engine) invalidateLocked() {
	e.invalidations.Add(1)
	if len(e.similarities) == 0 {
		return
	}
	e.similarities = make(map[ItemID]map[ItemID]float64)
}

// ClearCache discards the similarity cache without touching the click data.
// The next similarity lookup for any item recomputes it.
func (e *Engine) ClearCache() {
	e.mu.Lock()
	defer e.mu.Unlock()

	dropped := len(e.similarities)
	e.invalidateLocked()

	e.logger.Debug().
		Int("entries", dropped).
		Msg("similarity cache cleared")
}

// Reset clears all click data and the similarity cache.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	before := e.statsLocked()

	e.clicks = make(map[UserID]map[ItemID]int)
	e.itemUsers = make(map[ItemID]map[UserID]struct{})
	e.similarities = make(map[ItemID]map[ItemID]float64)
	e.resets.Add(1)

	e.logger.Info().
		Int("users", before.UserCount).
		Int("items", before.ItemCount).
		Int("cache_size", before.CacheSize).
		Msg("engine reset")
}

// Stats returns a consistent snapshot of user, item and cache counts.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.statsLocked()
}

// statsLocked builds a Stats snapshot.
// Must be called with mu held.
func (e *Engine) statsLocked() Stats {
	return Stats{
		UserCount: len(e.clicks),
		ItemCount: len(e.itemUsers),
		CacheSize: len(e.similarities),
	}
}

// ClickCount returns the number of recorded clicks for (userID, itemID),
// or 0 if the pair was never observed.
func (e *Engine) ClickCount(userID UserID, itemID ItemID) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.clicks[userID][itemID]
}

// GetMetrics returns the current engine counters.
func (e *Engine) GetMetrics() Metrics {
	return Metrics{
		RequestCount:   e.requestCount.Load(),
		ClicksRecorded: e.clicksRecorded.Load(),
		CacheHits:      e.cacheHits.Load(),
		CacheMisses:    e.cacheMisses.Load(),
		Invalidations:  e.invalidations.Load(),
		Resets:         e.resets.Load(),
	}
}

// GetConfig returns a copy of the current configuration.
func (e *Engine) GetConfig() *Config {
	return e.config.Clone()
}

// Clickrec - Click-Based Item Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickrec

package recommend

import "fmt"

// UserID is an opaque user identifier.
// The engine does not check it against any user registry.
type UserID int64

// ItemID is an opaque item identifier.
type ItemID int64

// Click is a single user-item interaction.
type Click struct {
	// UserID is the user who clicked.
	UserID UserID `json:"user_id"`

	// ItemID is the item that was clicked.
	ItemID ItemID `json:"item_id"`
}

// ScoredItem is a recommended item together with its score.
type ScoredItem struct {
	// ItemID is the recommended item.
	ItemID ItemID `json:"item_id"`

	// Score is the accumulated similarity-weighted score (higher is better).
	// For similar-item listings it is the raw cosine similarity.
	Score float64 `json:"score"`
}

// Stats is a consistent snapshot of the engine's data sizes.
type Stats struct {
	// UserCount is the number of distinct users with at least one click.
	UserCount int `json:"user_count"`

	// ItemCount is the number of distinct items clicked by any user.
	ItemCount int `json:"item_count"`

	// CacheSize is the number of source items resident in the similarity cache.
	CacheSize int `json:"cache_size"`
}

// String returns a one-line summary for logs and monitoring.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (s Stats) String() string {
	return fmt.Sprintf("Users: %d, Items: %d, SimilarityCacheSize: %d",
		s.UserCount, s.ItemCount, s.CacheSize)
}

// Metrics contains engine counters for observability.
type Metrics struct {
	// RequestCount is the number of recommendation requests served.
	RequestCount int64 `json:"request_count"`

	// ClicksRecorded is the total number of clicks applied to the matrix.
	ClicksRecorded int64 `json:"clicks_recorded"`

	// CacheHits is the number of similarity lookups served from the cache.
	CacheHits int64 `json:"cache_hits"`

	// CacheMisses is the number of similarity lookups that had to be computed.
	CacheMisses int64 `json:"cache_misses"`

	// Invalidations is the number of times the similarity cache was discarded.
	Invalidations int64 `json:"invalidations"`

	// Resets is the number of full engine resets.
	Resets int64 `json:"resets"`
}

// HitRate returns the fraction of similarity lookups served from the cache.
// Returns 0 when no lookups have happened yet.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (m Metrics) HitRate() float64 {
	total := m.CacheHits + m.CacheMisses
	if total == 0 {
		return 0
	}
	return float64(m.CacheHits) / float64(total)
}

// Clickrec - Click-Based Item Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickrec

package models

// ClicksAccepted is returned after clicks were applied to the engine.
type ClicksAccepted struct {
	Recorded int `json:"recorded"`
}

// ScoredItem is one ranked item in a recommendation or similarity listing.
type ScoredItem struct {
	ItemID int64   `json:"item_id"`
	Score  float64 `json:"score"`
}

// RecommendationsResponse lists recommendations for a user, best first.
type RecommendationsResponse struct {
	UserID int64        `json:"user_id"`
	K      int          `json:"k"`
	Count  int          `json:"count"`
	Items  []ScoredItem `json:"items"`
}

// SimilarItemsResponse lists the items most similar to a source item.
type SimilarItemsResponse struct {
	ItemID int64        `json:"item_id"`
	K      int          `json:"k"`
	Count  int          `json:"count"`
	Items  []ScoredItem `json:"items"`
}

// EngineStatsResponse reports engine sizes and counters.
type EngineStatsResponse struct {
	UserCount      int     `json:"user_count"`
	ItemCount      int     `json:"item_count"`
	CacheSize      int     `json:"cache_size"`
	Summary        string  `json:"summary"`
	RequestCount   int64   `json:"request_count"`
	ClicksRecorded int64   `json:"clicks_recorded"`
	CacheHits      int64   `json:"cache_hits"`
	CacheMisses    int64   `json:"cache_misses"`
	CacheHitRate   float64 `json:"cache_hit_rate"`
	Invalidations  int64   `json:"invalidations"`
	Resets         int64   `json:"resets"`
}

// ActionResult acknowledges an administrative action such as a reset.
type ActionResult struct {
	Action  string `json:"action"`
	Message string `json:"message"`
}

// HealthStatus is returned by the liveness and readiness probes.
type HealthStatus struct {
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks,omitempty"`
	Uptime  string            `json:"uptime,omitempty"`
	Version string            `json:"version,omitempty"`
}

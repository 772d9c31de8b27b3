// Clickrec - Click-Based Item Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickrec

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/clickrec/internal/logging"
	"github.com/tomtom215/clickrec/internal/metrics"
	"github.com/tomtom215/clickrec/internal/models"
	"github.com/tomtom215/clickrec/internal/recommend"
)

// Operation labels for clickrec_recommend_duration_seconds.
const (
	opRecommend = "recommend"
	opSimilar   = "similar"
)

// GetRecommendations handles GET /api/v1/recommendations/user/{userID}
// Returns up to k items the user has not clicked, best first.
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, err := parseID(chi.URLParam(r, "userID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, CodeInvalidUserID, "Invalid user ID", err)
		return
	}

	k, err := h.parseK(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, CodeInvalidParameter, "Parameter k must be an integer", err)
		return
	}

	start := time.Now()
	items := h.engine.RecommendScored(recommend.UserID(userID), k)
	elapsed := time.Since(start)
	metrics.RecordRecommend(opRecommend, elapsed)

	respondSuccess(w, http.StatusOK, models.RecommendationsResponse{
		UserID: userID,
		K:      k,
		Count:  len(items),
		Items:  toModelItems(items),
	}, elapsed)
}

// GetSimilar handles GET /api/v1/recommendations/similar/{itemID}
// Returns up to k items most similar to the given item.
func (h *Handler) GetSimilar(w http.ResponseWriter, r *http.Request) {
	itemID, err := parseID(chi.URLParam(r, "itemID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, CodeInvalidItemID, "Invalid item ID", err)
		return
	}

	k, err := h.parseK(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, CodeInvalidParameter, "Parameter k must be an integer", err)
		return
	}

	start := time.Now()
	items := h.engine.SimilarItems(recommend.ItemID(itemID), k)
	elapsed := time.Since(start)
	metrics.RecordRecommend(opSimilar, elapsed)

	respondSuccess(w, http.StatusOK, models.SimilarItemsResponse{
		ItemID: itemID,
		K:      k,
		Count:  len(items),
		Items:  toModelItems(items),
	}, elapsed)
}

// GetStats handles GET /api/v1/recommendations/stats
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats := h.engine.Stats()
	m := h.engine.GetMetrics()

	respondSuccess(w, http.StatusOK, models.EngineStatsResponse{
		UserCount:      stats.UserCount,
		ItemCount:      stats.ItemCount,
		CacheSize:      stats.CacheSize,
		Summary:        stats.String(),
		RequestCount:   m.RequestCount,
		ClicksRecorded: m.ClicksRecorded,
		CacheHits:      m.CacheHits,
		CacheMisses:    m.CacheMisses,
		CacheHitRate:   m.HitRate(),
		Invalidations:  m.Invalidations,
		Resets:         m.Resets,
	}, 0)
}

// Reset handles POST /api/v1/recommendations/reset
// Drops every recorded click and the similarity cache.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	h.engine.Reset()
	logging.Ctx(r.Context()).Info().Str("remote_addr", r.RemoteAddr).Msg("Engine reset via API")

	respondSuccess(w, http.StatusOK, models.ActionResult{
		Action:  "reset",
		Message: "All clicks and cached similarities were removed",
	}, 0)
}

// ClearCache handles DELETE /api/v1/recommendations/cache
// Drops cached similarities; recorded clicks are kept.
func (h *Handler) ClearCache(w http.ResponseWriter, r *http.Request) {
	h.engine.ClearCache()
	logging.Ctx(r.Context()).Info().Msg("Similarity cache cleared via API")

	respondSuccess(w, http.StatusOK, models.ActionResult{
		Action:  "clear_cache",
		Message: "Similarity cache cleared",
	}, 0)
}

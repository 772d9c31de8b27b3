// Clickrec - Click-Based Item Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickrec

package api

import (
	"fmt"
	"net/http"

	"github.com/tomtom215/clickrec/internal/logging"
	"github.com/tomtom215/clickrec/internal/metrics"
	"github.com/tomtom215/clickrec/internal/models"
)

// RecordClick handles POST /api/v1/clicks
// Records a single click and invalidates the similarity cache.
func (h *Handler) RecordClick(w http.ResponseWriter, r *http.Request) {
	var req ClickRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondErrorDetails(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details, nil)
		return
	}

	click := req.Click()
	h.engine.RecordClick(click.UserID, click.ItemID)
	metrics.RecordClicks(metrics.SourceHTTP, 1, false)

	logging.Ctx(r.Context()).Debug().
		Int64("user_id", int64(click.UserID)).
		Int64("item_id", int64(click.ItemID)).
		Msg("Recorded click")

	respondSuccess(w, http.StatusAccepted, models.ClicksAccepted{Recorded: 1}, 0)
}

// RecordClickBatch handles POST /api/v1/clicks/batch
// Records all clicks under one lock acquisition with a single cache
// invalidation. An empty batch is accepted and changes nothing.
func (h *Handler) RecordClickBatch(w http.ResponseWriter, r *http.Request) {
	var req ClickBatchRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if n := len(req.Clicks); n > h.limits.MaxBatchSize {
		respondErrorDetails(w, http.StatusBadRequest, CodeBatchTooLarge,
			fmt.Sprintf("Batch contains %d clicks; the maximum is %d", n, h.limits.MaxBatchSize),
			map[string]interface{}{"received": n, "max_batch_size": h.limits.MaxBatchSize},
			fmt.Errorf("%w: %d > %d", ErrBatchTooLarge, n, h.limits.MaxBatchSize))
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondErrorDetails(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details, nil)
		return
	}

	clicks := req.EngineClicks()
	h.engine.RecordClicks(clicks)
	metrics.RecordClicks(metrics.SourceHTTP, len(clicks), true)

	logging.Ctx(r.Context()).Debug().Int("count", len(clicks)).Msg("Recorded click batch")

	respondSuccess(w, http.StatusAccepted, models.ClicksAccepted{Recorded: len(clicks)}, 0)
}

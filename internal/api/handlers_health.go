// Clickrec - Click-Based Item Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickrec

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/clickrec/internal/logging"
	"github.com/tomtom215/clickrec/internal/models"
)

// readinessTimeout bounds the total time spent running readiness checks.
const readinessTimeout = 2 * time.Second

// HealthLive handles liveness probe requests (Kubernetes-style)
// Returns 200 OK if the process is alive, regardless of dependencies
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, http.StatusOK, models.HealthStatus{
		Status:  "alive",
		Uptime:  time.Since(h.startTime).Round(time.Second).String(),
		Version: h.version,
	}, 0)
}

// HealthReady handles readiness probe requests (Kubernetes-style)
// Returns 200 OK only if every registered readiness check passes, 503 otherwise.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	names, checks := h.readinessChecks()
	results := map[string]string{"engine": "ok"}
	ready := true

	for _, name := range names {
		if err := checks[name](ctx); err != nil {
			results[name] = err.Error()
			ready = false
			logging.Ctx(r.Context()).Warn().Err(err).Str("check", name).Msg("Readiness check failed")
			continue
		}
		results[name] = "ok"
	}

	health := models.HealthStatus{
		Status:  "ready",
		Checks:  results,
		Uptime:  time.Since(h.startTime).Round(time.Second).String(),
		Version: h.version,
	}

	if !ready {
		health.Status = "not_ready"
		respondJSON(w, http.StatusServiceUnavailable, &models.APIResponse{
			Status:   models.StatusError,
			Data:     health,
			Metadata: models.Metadata{Timestamp: time.Now().UTC()},
			Error: &models.APIError{
				Code:    CodeNotReady,
				Message: "Service is not ready",
			},
		})
		return
	}

	respondSuccess(w, http.StatusOK, health, 0)
}

// Clickrec - Click-Based Item Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickrec

package api

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/tomtom215/clickrec/internal/recommend"
)

// ReadinessCheck reports whether a dependency is ready to serve traffic.
type ReadinessCheck func(ctx context.Context) error

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: request decoding and parameter parsing
//   - handlers_clicks.go: click ingestion endpoints
//   - handlers_recommend.go: recommendation, stats and admin endpoints
//   - handlers_health.go: liveness and readiness probes
type Handler struct {
	engine    *recommend.Engine
	limits    recommend.LimitsConfig
	version   string
	startTime time.Time

	checksMu sync.RWMutex
	checks   map[string]ReadinessCheck
}

// NewHandler creates a new API handler bound to engine. Request limits
// (default and maximum k, maximum batch size) are read from the engine's
// configuration once at construction.
//
// Example:
//
//	handler, err := api.NewHandler(engine, "1.0.0")
//	router := api.NewRouter(handler, chiMw, &cfg.Metrics)
//	http.ListenAndServe(":8080", router.SetupChi())
func NewHandler(engine *recommend.Engine, version string) (*Handler, error) {
	if engine == nil {
		return nil, ErrEngineRequired
	}

	return &Handler{
		engine:    engine,
		limits:    engine.GetConfig().Limits,
		version:   version,
		startTime: time.Now(),
		checks:    make(map[string]ReadinessCheck),
	}, nil
}

// AddReadinessCheck registers a named dependency check evaluated by
// /api/v1/health/ready. Registering the same name again replaces the check.
//
// Thread Safety: Safe for concurrent access.
func (h *Handler) AddReadinessCheck(name string, check ReadinessCheck) {
	h.checksMu.Lock()
	defer h.checksMu.Unlock()
	h.checks[name] = check
}

// readinessChecks returns the registered checks sorted by name.
func (h *Handler) readinessChecks() ([]string, map[string]ReadinessCheck) {
	h.checksMu.RLock()
	defer h.checksMu.RUnlock()

	names := make([]string, 0, len(h.checks))
	checks := make(map[string]ReadinessCheck, len(h.checks))
	for name, check := range h.checks {
		names = append(names, name)
		checks[name] = check
	}
	sort.Strings(names)
	return names, checks
}

// NotFound answers unknown routes with the JSON error envelope.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusNotFound, CodeNotFound, "Resource not found", nil)
}

// MethodNotAllowed answers known routes called with the wrong method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "Method not allowed", nil)
}

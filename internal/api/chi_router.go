// Clickrec - Click-Based Item Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickrec

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/clickrec/internal/config"
	"github.com/tomtom215/clickrec/internal/middleware"
)

// Router sets up HTTP routes using Chi router.
type Router struct {
	handler        *Handler
	chiMiddleware  *ChiMiddleware
	metricsEnabled bool
	metricsPath    string
	metricsHandler http.Handler
}

// NewRouter creates a new router. A nil chiMw uses DefaultChiMiddlewareConfig;
// a nil metricsCfg disables the /metrics endpoint.
func NewRouter(handler *Handler, chiMw *ChiMiddleware, metricsCfg *config.MetricsConfig) *Router {
	if chiMw == nil {
		chiMw = NewChiMiddleware(nil)
	}

	router := &Router{
		handler:        handler,
		chiMiddleware:  chiMw,
		metricsHandler: promhttp.Handler(),
	}
	if metricsCfg != nil && metricsCfg.Enabled {
		router.metricsEnabled = true
		router.metricsPath = metricsCfg.Path
	}
	return router
}

// SetMetricsHandler replaces the default promhttp handler, e.g. with one
// bound to a custom registry.
func (router *Router) SetMetricsHandler(h http.Handler) {
	router.metricsHandler = h
}

// SetupChi configures all HTTP routes using Chi router.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(chimiddleware.RealIP)        // Extract real IP from X-Forwarded-For
	r.Use(middleware.RequestID)        // X-Request-ID header and logging context
	r.Use(middleware.AccessLog)        // One structured line per request
	r.Use(chimiddleware.Recoverer)     // Recover from panics
	r.Use(router.chiMiddleware.CORS()) // CORS must be global to handle OPTIONS preflight

	// Set before Route so subrouters inherit them.
	r.NotFound(router.handler.NotFound)
	r.MethodNotAllowed(router.handler.MethodNotAllowed)

	// ========================
	// Health Endpoints
	// ========================
	// Not rate limited so probes never fail under load.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	// ========================
	// Click and Recommendation Endpoints
	// ========================
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)

		r.Post("/clicks", router.handler.RecordClick)
		r.Post("/clicks/batch", router.handler.RecordClickBatch)

		r.Route("/recommendations", func(r chi.Router) {
			r.Get("/user/{userID}", router.handler.GetRecommendations)
			r.Get("/similar/{itemID}", router.handler.GetSimilar)
			r.Get("/stats", router.handler.GetStats)
			r.Post("/reset", router.handler.Reset)
			r.Delete("/cache", router.handler.ClearCache)
		})
	})

	// ========================
	// Prometheus Metrics
	// ========================
	if router.metricsEnabled {
		r.Method(http.MethodGet, router.metricsPath, router.metricsHandler)
	}

	return r
}

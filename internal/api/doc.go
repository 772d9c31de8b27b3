// Clickrec - Click-Based Item Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickrec

/*
Package api provides the HTTP REST API layer for clickrec.

It exposes the recommendation engine over JSON: click ingestion, per-user
recommendations, similar-item listings, engine statistics and the
administrative reset and cache-clear actions.

Key Components:

  - Router: chi route configuration and middleware stack
  - Handler: request handlers bound to one *recommend.Engine
  - ChiMiddleware: CORS (go-chi/cors) and rate limiting (go-chi/httprate)
  - Response formatting: models.APIResponse envelope encoded with goccy/go-json

Endpoints:

	POST   /api/v1/clicks                         record one click
	POST   /api/v1/clicks/batch                   record many clicks atomically
	GET    /api/v1/recommendations/user/{userID}  ranked items for a user (?k=N)
	GET    /api/v1/recommendations/similar/{itemID} most similar items (?k=N)
	GET    /api/v1/recommendations/stats          engine sizes and counters
	POST   /api/v1/recommendations/reset          drop all clicks and cache
	DELETE /api/v1/recommendations/cache          drop the similarity cache
	GET    /api/v1/health/live                    liveness probe
	GET    /api/v1/health/ready                   readiness probe
	GET    /metrics                               Prometheus exposition

Usage Example:

	engine, _ := recommend.NewEngine(cfg.Recommend.EngineConfig(), logging.WithComponent("recommend"))
	handler, _ := api.NewHandler(engine, version)
	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(&cfg.Security), &cfg.Metrics)
	http.ListenAndServe(cfg.Server.Addr(), router.SetupChi())

Thread Safety:

All handlers are safe for concurrent use; the engine serializes access to its
own state.
*/
package api

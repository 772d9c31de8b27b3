// Clickrec - Click-Based Item Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickrec

// Package middleware provides HTTP middleware shared by the API router:
// request ID propagation, Prometheus request instrumentation and structured
// access logging. All middleware has the func(http.Handler) http.Handler
// shape used by chi.
package middleware

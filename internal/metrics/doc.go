// Clickrec - Click-Based Item Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickrec

// Package metrics exposes Prometheus instrumentation for Clickrec.
//
// Request and ingestion metrics are package-level promauto collectors
// registered with the default registry. Engine state (users, items, cache
// entries and cache counters) is read at scrape time by EngineCollector so
// the engine itself never depends on Prometheus.
//
//	prometheus.MustRegister(metrics.NewEngineCollector(engine))
//	r.Handle("/metrics", promhttp.Handler())
package metrics

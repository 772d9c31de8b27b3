// Clickrec - Click-Based Item Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickrec

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tomtom215/clickrec/internal/recommend"
)

// EngineSource is the part of the engine the collector reads.
type EngineSource interface {
	Stats() recommend.Stats
	GetMetrics() recommend.Metrics
}

// EngineCollector exports engine sizes and counters at scrape time.
type EngineCollector struct {
	source EngineSource

	users         *prometheus.Desc
	items         *prometheus.Desc
	cacheEntries  *prometheus.Desc
	cacheHits     *prometheus.Desc
	cacheMisses   *prometheus.Desc
	invalidations *prometheus.Desc
	resets        *prometheus.Desc
	requests      *prometheus.Desc
}

// NewEngineCollector creates a collector reading from source.
func NewEngineCollector(source EngineSource) *EngineCollector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc("clickrec_engine_"+name, help, nil, nil)
	}

	return &EngineCollector{
		source:        source,
		users:         desc("users", "Number of distinct users with at least one click"),
		items:         desc("items", "Number of distinct items clicked by any user"),
		cacheEntries:  desc("cache_entries", "Number of source items resident in the similarity cache"),
		cacheHits:     desc("cache_hits_total", "Similarity lookups served from the cache"),
		cacheMisses:   desc("cache_misses_total", "Similarity lookups that populated the cache"),
		invalidations: desc("cache_invalidations_total", "Times the similarity cache was discarded"),
		resets:        desc("resets_total", "Full engine resets"),
		requests:      desc("recommend_requests_total", "Recommendation requests served"),
	}
}

// Describe implements prometheus.Collector.
func (c *EngineCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.users
	ch <- c.items
	ch <- c.cacheEntries
	ch <- c.cacheHits
	ch <- c.cacheMisses
	ch <- c.invalidations
	ch <- c.resets
	ch <- c.requests
}

// Collect implements prometheus.Collector.
func (c *EngineCollector) Collect(ch chan<- prometheus.Metric) {
	stats := c.source.Stats()
	m := c.source.GetMetrics()

	gauge := func(d *prometheus.Desc, v float64) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.GaugeValue, v)
	}
	counter := func(d *prometheus.Desc, v int64) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.CounterValue, float64(v))
	}

	gauge(c.users, float64(stats.UserCount))
	gauge(c.items, float64(stats.ItemCount))
	gauge(c.cacheEntries, float64(stats.CacheSize))
	counter(c.cacheHits, m.CacheHits)
	counter(c.cacheMisses, m.CacheMisses)
	counter(c.invalidations, m.Invalidations)
	counter(c.resets, m.Resets)
	counter(c.requests, m.RequestCount)
}

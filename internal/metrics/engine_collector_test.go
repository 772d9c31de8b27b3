// Clickrec - Click-Based Item Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickrec

package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/tomtom215/clickrec/internal/recommend"
)

type fakeEngine struct {
	stats   recommend.Stats
	metrics recommend.Metrics
}

func (f *fakeEngine) Stats() recommend.Stats { return f.stats }
func (f *fakeEngine) GetMetrics() recommend.Metrics { return f.metrics }

func TestEngineCollector_Count(t *testing.T) {
	c := NewEngineCollector(&fakeEngine{})
	if got := testutil.CollectAndCount(c); got != 8 {
		t.Errorf("CollectAndCount() = %d, want 8", got)
	}
}

func TestEngineCollector_Values(t *testing.T) {
	src := &fakeEngine{
		stats:   recommend.Stats{UserCount: 3, ItemCount: 5, CacheSize: 2},
		metrics: recommend.Metrics{CacheHits: 7, CacheMisses: 2, Invalidations: 4},
	}
	c := NewEngineCollector(src)

	expected := `
# HELP clickrec_engine_users Number of distinct users with at least one click
# TYPE clickrec_engine_users gauge
clickrec_engine_users 3
# HELP clickrec_engine_cache_hits_total Similarity lookups served from the cache
# TYPE clickrec_engine_cache_hits_total counter
clickrec_engine_cache_hits_total 7
# HELP clickrec_engine_cache_invalidations_total Times the similarity cache was discarded
# TYPE clickrec_engine_cache_invalidations_total counter
clickrec_engine_cache_invalidations_total 4
`
	err := testutil.CollectAndCompare(c, strings.NewReader(expected),
		"clickrec_engine_users", "clickrec_engine_cache_hits_total", "clickrec_engine_cache_invalidations_total")
	if err != nil {
		t.Errorf("CollectAndCompare() error = %v", err)
	}
}

func TestEngineCollector_ReadsLiveEngine(t *testing.T) {
	engine, err := recommend.NewEngine(recommend.DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	reg := prometheus.NewPedanticRegistry()
	reg.MustRegister(NewEngineCollector(engine))

	engine.RecordClick(1, 10)
	engine.RecordClick(2, 10)
	engine.RecordClick(2, 20)
	engine.Recommend(1, 5)

	expected := `
# HELP clickrec_engine_items Number of distinct items clicked by any user
# TYPE clickrec_engine_items gauge
clickrec_engine_items 2
# HELP clickrec_engine_cache_entries Number of source items resident in the similarity cache
# TYPE clickrec_engine_cache_entries gauge
clickrec_engine_cache_entries 1
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"clickrec_engine_items", "clickrec_engine_cache_entries"); err != nil {
		t.Errorf("GatherAndCompare() error = %v", err)
	}
}

// Clickrec - Click-Based Item Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickrec

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Click sources.
const (
	SourceHTTP  = "http"
	SourceEvent = "event"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Number of API requests currently being processed",
		},
	)

	// Ingestion Metrics
	ClicksRecordedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clickrec_clicks_recorded_total",
			Help: "Total number of clicks applied to the engine",
		},
		[]string{"source"}, // "http", "event"
	)

	ClickBatchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "clickrec_click_batch_size",
			Help:    "Number of clicks per batch",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8), // 1 .. 16384
		},
	)

	// Recommendation Metrics
	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "clickrec_recommend_duration_seconds",
			Help:    "Time spent producing recommendations or similar-item listings",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"operation"}, // "recommend", "similar"
	)

	// Event Consumer Metrics
	EventsProcessedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clickrec_events_processed_total",
			Help: "Total number of click events applied from the message bus",
		},
		[]string{"topic"},
	)

	EventsFailedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clickrec_events_failed_total",
			Help: "Total number of click events that could not be applied",
		},
		[]string{"reason"}, // "decode", "validation", "too_large", "exhausted"
	)
)

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordClicks counts n clicks from source. Batches (n > 1 or explicit batch
// calls) also feed the batch size histogram.
func RecordClicks(source string, n int, batch bool) {
	if n <= 0 {
		return
	}
	ClicksRecordedTotal.WithLabelValues(source).Add(float64(n))
	if batch {
		ClickBatchSize.Observe(float64(n))
	}
}

// RecordRecommend records the engine time for a read operation.
func RecordRecommend(operation string, duration time.Duration) {
	RecommendDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordEventProcessed counts a successfully applied event.
func RecordEventProcessed(topic string) {
	EventsProcessedTotal.WithLabelValues(topic).Inc()
}

// RecordEventFailed counts an event rejected for the given reason.
func RecordEventFailed(reason string) {
	EventsFailedTotal.WithLabelValues(reason).Inc()
}

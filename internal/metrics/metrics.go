// Package metrics exposes Prometheus collectors for the matching engine.
// Collectors register with the default registry on package load and are
// served by the HTTP API at /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Index build metrics
	IndexBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "petmatch_index_build_duration_seconds",
			Help:    "Duration of catalog embedding and index builds in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
	)

	IndexBuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "petmatch_index_builds_total",
			Help: "Total number of index builds by outcome",
		},
		[]string{"outcome"}, // "success", "error"
	)

	CatalogAnimals = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "petmatch_catalog_animals",
			Help: "Number of animals in the published catalog",
		},
	)

	// Match metrics
	MatchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "petmatch_match_duration_seconds",
			Help:    "Duration of FindMatches calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"filtered"},
	)

	MatchErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "petmatch_match_errors_total",
			Help: "Total number of failed FindMatches calls",
		},
	)

	MatchFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "petmatch_match_fallbacks_total",
			Help: "Total number of zero-score fallback results",
		},
	)

	// Embedding metrics
	EmbeddingDegraded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "petmatch_embedding_degraded",
			Help: "1 when the embedding provider runs without its encoder",
		},
	)

	EmbeddingRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "petmatch_embedding_requests_total",
			Help: "Total number of encoder calls by outcome",
		},
		[]string{"outcome"}, // "success", "error", "rejected", "degraded"
	)

	CircuitBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "petmatch_embedding_circuit_state",
			Help: "Encoder circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)

	// API metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "petmatch_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "petmatch_api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// RecordIndexBuild records the outcome of an index build.
func RecordIndexBuild(duration time.Duration, animals int, err error) {
	IndexBuildDuration.Observe(duration.Seconds())
	if err != nil {
		IndexBuildsTotal.WithLabelValues("error").Inc()
		return
	}
	IndexBuildsTotal.WithLabelValues("success").Inc()
	CatalogAnimals.Set(float64(animals))
}

// RecordMatch records a FindMatches call.
func RecordMatch(filtered, fallback bool, duration time.Duration, err error) {
	MatchDuration.WithLabelValues(strconv.FormatBool(filtered)).Observe(duration.Seconds())
	if err != nil {
		MatchErrors.Inc()
		return
	}
	if fallback {
		MatchFallbacks.Inc()
	}
}

// SetDegraded records whether the embedding provider is degraded.
func SetDegraded(degraded bool) {
	if degraded {
		EmbeddingDegraded.Set(1)
		return
	}
	EmbeddingDegraded.Set(0)
}

// RecordEmbedding records one encoder call outcome.
func RecordEmbedding(outcome string) {
	EmbeddingRequests.WithLabelValues(outcome).Inc()
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

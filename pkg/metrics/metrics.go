// Package metrics defines the Prometheus collectors for the offer engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus collectors. Register against a private
// registry in tests.
type Metrics struct {
	SearchesTotal      *prometheus.CounterVec
	SearchLatency      *prometheus.HistogramVec
	OffersReturned     prometheus.Histogram
	CacheHitsTotal     prometheus.Counter
	CacheMissesTotal   prometheus.Counter
	SourceCallsTotal   *prometheus.CounterVec
	SourceFailures     *prometheus.CounterVec
	SourceCallDuration *prometheus.HistogramVec
}

// New creates all collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SearchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "offer_searches_total",
				Help: "Total searches by outcome (cached, live, no_offers, error).",
			},
			[]string{"outcome"},
		),
		SearchLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "offer_search_duration_seconds",
				Help:    "End-to-end search latency in seconds.",
				Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"cache_status"},
		),
		OffersReturned: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "offer_results_count",
				Help:    "Number of offers returned per search.",
				Buckets: []float64{0, 1, 2, 5, 10, 25},
			},
		),
		CacheHitsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "offer_cache_hits_total",
				Help: "Fresh cache hits that skipped a live fetch.",
			},
		),
		CacheMissesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "offer_cache_misses_total",
				Help: "Cache misses and stale entries that forced a live fetch.",
			},
		),
		SourceCallsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "offer_source_calls_total",
				Help: "Source adapter invocations by source name.",
			},
			[]string{"source"},
		),
		SourceFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "offer_source_failures_total",
				Help: "Source adapter failures (errors and timeouts) by source name.",
			},
			[]string{"source"},
		),
		SourceCallDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "offer_source_call_duration_seconds",
				Help:    "Per-source call latency in seconds.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
			},
			[]string{"source"},
		),
	}
}

// Package telemetry registers the Prometheus metrics the pipeline
// emits. Served at /metrics by the HTTP layer.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "zoracast_predictions_total",
			Help: "Total prediction requests by outcome",
		},
		[]string{"outcome"},
	)

	PredictDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "zoracast_predict_duration_seconds",
			Help:    "End-to-end duration of prediction requests",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		},
	)

	ProviderFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "zoracast_provider_fetches_total",
			Help: "Coin data provider fetches by result",
		},
		[]string{"result"},
	)

	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "zoracast_coin_cache_hits_total",
			Help: "Coin data cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "zoracast_coin_cache_misses_total",
			Help: "Coin data cache misses",
		},
	)

	ModelTrainings = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "zoracast_model_trainings_total",
			Help: "Completed model training passes",
		},
	)
)

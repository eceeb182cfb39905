// Package metrics provides the centralized Prometheus metrics registry for the prediction engine.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "puck_savant"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	PredictionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "predictions_total",
		Help:      "Total number of game predictions, split by whether the cache served them",
	}, []string{"cache"})
	OpportunitiesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "opportunities_total",
		Help:      "Total number of graded betting opportunities by grade",
	}, []string{"grade"})
)

// Gauge metrics
var (
	PredictionCacheItems = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "prediction_cache_items",
		Help:      "Number of predictions held in the cache",
	})
)

// InitRegistry initializes and registers all metrics
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(PredictionsTotal)
		registry.MustRegister(OpportunitiesTotal)
		registry.MustRegister(PredictionCacheItems)

		registry.MustRegister(BacktestRunsTotal)
		registry.MustRegister(BacktestGamesTotal)
		registry.MustRegister(BacktestBrierScore)
		registry.MustRegister(BacktestDuration)
	})
	return registry
}

// GetRegistry returns the global registry, initializing it if needed
func GetRegistry() *prometheus.Registry {
	return InitRegistry()
}

// Handler returns the HTTP handler exposing the registry
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordPrediction records a game prediction; hit reports whether it came from cache.
// Computed predictions count as misses whether or not a cache is configured.
func RecordPrediction(hit bool) {
	label := "miss"
	if hit {
		label = "hit"
	}
	PredictionsTotal.WithLabelValues(label).Inc()
}

// RecordOpportunity records a graded opportunity.
func RecordOpportunity(grade string) {
	OpportunitiesTotal.WithLabelValues(grade).Inc()
}

// UpdateCacheItems sets the prediction cache size.
func UpdateCacheItems(n int) {
	PredictionCacheItems.Set(float64(n))
}

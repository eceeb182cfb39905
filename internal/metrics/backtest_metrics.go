// Package metrics defines backtesting-specific metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Backtest counter vectors
var (
	BacktestRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backtest_runs_total",
		Help:      "Total number of backtest runs by goalie mode and status",
	}, []string{"goalie", "status"})

	BacktestGamesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backtest_games_total",
		Help:      "Games seen by the backtest by outcome (processed, skipped, error)",
	}, []string{"outcome"})
)

// Backtest gauge vectors
var (
	BacktestBrierScore = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "backtest_brier_score",
		Help:      "Brier score of the latest backtest run by goalie mode",
	}, []string{"goalie"})
)

// Backtest histograms
var (
	BacktestDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backtest_duration_seconds",
		Help:      "Wall time of backtest runs",
		Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
	})
)

// RecordBacktestRun records a backtest run event.
// status should be one of: "success", "failure"
func RecordBacktestRun(withGoalie bool, status string) {
	BacktestRunsTotal.WithLabelValues(goalieLabel(withGoalie), status).Inc()
}

// RecordBacktestGames adds the per-outcome game counts of a run.
func RecordBacktestGames(processed, skipped, errored int) {
	BacktestGamesTotal.WithLabelValues("processed").Add(float64(processed))
	BacktestGamesTotal.WithLabelValues("skipped").Add(float64(skipped))
	BacktestGamesTotal.WithLabelValues("error").Add(float64(errored))
}

// UpdateBrierScore sets the latest Brier score for a goalie mode.
func UpdateBrierScore(withGoalie bool, score float64) {
	BacktestBrierScore.WithLabelValues(goalieLabel(withGoalie)).Set(score)
}

// ObserveBacktestDuration records the wall time of a run.
func ObserveBacktestDuration(seconds float64) {
	BacktestDuration.Observe(seconds)
}

func goalieLabel(withGoalie bool) string {
	if withGoalie {
		return "on"
	}
	return "off"
}

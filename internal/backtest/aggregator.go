package backtest

import (
	"fmt"
)

// Comparison contrasts runs with and without the goalie adjustment.
type Comparison struct {
	WithGoalie     *Report `json:"with_goalie"`
	WithoutGoalie  *Report `json:"without_goalie"`
	BrierDelta     float64 `json:"brier_delta"`
	RMSEDelta      float64 `json:"rmse_delta"`
	AccuracyDelta  float64 `json:"accuracy_delta"`
	Recommendation string  `json:"recommendation"`
}

// CompareReports computes deltas as with-goalie minus without-goalie.
// Negative Brier and RMSE deltas favour the goalie adjustment.
func CompareReports(with, without *Report) Comparison {
	c := Comparison{
		WithGoalie:    with,
		WithoutGoalie: without,
		BrierDelta:    with.Metrics.BrierScore - without.Metrics.BrierScore,
		RMSEDelta:     with.Metrics.RMSE - without.Metrics.RMSE,
		AccuracyDelta: with.Metrics.Accuracy.Rate - without.Metrics.Accuracy.Rate,
	}
	c.Recommendation = GenerateRecommendation(c.BrierDelta, c.RMSEDelta)
	return c
}

// GenerateRecommendation summarises whether the goalie adjustment earns its place.
func GenerateRecommendation(brierDelta, rmseDelta float64) string {
	switch {
	case brierDelta < 0 && rmseDelta <= 0:
		return "KEEP: goalie adjustment improves win probability and totals"
	case brierDelta < 0:
		return "KEEP: goalie adjustment improves win probability"
	case brierDelta == 0 && rmseDelta == 0:
		return "NEUTRAL: goalie adjustment has no measurable effect"
	case rmseDelta < 0:
		return "REVIEW: goalie adjustment improves totals only"
	default:
		return "DROP: goalie adjustment hurts accuracy"
	}
}

// GenerateComparisonReport formats a comparison for terminal output.
func GenerateComparisonReport(c Comparison) string {
	return fmt.Sprintf(
		"Goalie Adjustment Comparison\n"+
			"============================\n"+
			"Brier Score: %.4f with, %.4f without (%+.4f)\n"+
			"RMSE: %.3f with, %.3f without (%+.3f)\n"+
			"Accuracy: %.2f%% with, %.2f%% without (%+.2f points)\n"+
			"Recommendation: %s\n",
		c.WithGoalie.Metrics.BrierScore, c.WithoutGoalie.Metrics.BrierScore, c.BrierDelta,
		c.WithGoalie.Metrics.RMSE, c.WithoutGoalie.Metrics.RMSE, c.RMSEDelta,
		c.WithGoalie.Metrics.Accuracy.Rate*100, c.WithoutGoalie.Metrics.Accuracy.Rate*100, c.AccuracyDelta*100,
		c.Recommendation,
	)
}

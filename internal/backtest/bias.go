package backtest

import (
	"fmt"
	"math"
)

// Thresholds used by ValidateBias.
const (
	NeutralBand       = 0.3
	DirectionalShare  = 0.6
	MaxSystematicBias = 0.3
	MaxAverageDiff    = 0.4
	MaxHomeWinBias    = 0.05
)

// BiasReport flags systematic over- or under-prediction.
type BiasReport struct {
	Games          int      `json:"games"`
	AvgPredicted   float64  `json:"avg_predicted"`
	AvgActual      float64  `json:"avg_actual"`
	AvgDifference  float64  `json:"avg_difference"`
	SystematicBias float64  `json:"systematic_bias"`
	OverShare      float64  `json:"over_share"`
	UnderShare     float64  `json:"under_share"`
	NeutralShare   float64  `json:"neutral_share"`
	HomeWinBias    float64  `json:"home_win_bias"`
	Warnings       []string `json:"warnings,omitempty"`
}

// OK reports whether no warning was raised.
func (b BiasReport) OK() bool {
	return len(b.Warnings) == 0
}

// ValidateBias compares predicted totals and home win probabilities with results.
// A game counts as over or under when its predicted total misses by more than NeutralBand.
func ValidateBias(records []Record) BiasReport {
	b := BiasReport{Games: len(records)}
	if len(records) == 0 {
		return b
	}

	var over, under, neutral int
	var absDiff, predicted, actual, homeProb, homeWins float64
	for _, r := range records {
		diff := r.PredictedTotal - float64(r.ActualTotal())
		absDiff += math.Abs(diff)
		predicted += r.PredictedTotal
		actual += float64(r.ActualTotal())
		homeProb += r.HomeWinProb
		homeWins += boolToFloat(r.HomeWon())

		switch {
		case diff > NeutralBand:
			over++
		case diff < -NeutralBand:
			under++
		default:
			neutral++
		}
	}

	n := float64(len(records))
	b.AvgPredicted = predicted / n
	b.AvgActual = actual / n
	b.AvgDifference = absDiff / n
	b.SystematicBias = b.AvgPredicted - b.AvgActual
	b.OverShare = float64(over) / n
	b.UnderShare = float64(under) / n
	b.NeutralShare = float64(neutral) / n
	b.HomeWinBias = homeProb/n - homeWins/n

	if math.Abs(b.SystematicBias) > MaxSystematicBias {
		b.Warnings = append(b.Warnings, fmt.Sprintf("systematic bias of %+.2f goals", b.SystematicBias))
	}
	if b.UnderShare > DirectionalShare {
		b.Warnings = append(b.Warnings, fmt.Sprintf("under-predicted %.0f%% of games", b.UnderShare*100))
	}
	if b.OverShare > DirectionalShare {
		b.Warnings = append(b.Warnings, fmt.Sprintf("over-predicted %.0f%% of games", b.OverShare*100))
	}
	if b.AvgDifference > MaxAverageDiff {
		b.Warnings = append(b.Warnings, fmt.Sprintf("totals miss by %.2f goals on average", b.AvgDifference))
	}
	if math.Abs(b.HomeWinBias) > MaxHomeWinBias {
		b.Warnings = append(b.Warnings, fmt.Sprintf("home win probability off by %+.1f points", b.HomeWinBias*100))
	}
	return b
}

package backtest

import (
	"time"
)

// Record pairs one game's prediction with its final score.
type Record struct {
	Date           time.Time `json:"date"`
	Away           string    `json:"away"`
	Home           string    `json:"home"`
	PredictedAway  float64   `json:"predicted_away"`
	PredictedHome  float64   `json:"predicted_home"`
	PredictedTotal float64   `json:"predicted_total"`
	HomeWinProb    float64   `json:"home_win_prob"`
	AwayWinProb    float64   `json:"away_win_prob"`
	ActualAway     int       `json:"actual_away"`
	ActualHome     int       `json:"actual_home"`
}

// ActualTotal is the combined final score.
func (r Record) ActualTotal() int {
	return r.ActualAway + r.ActualHome
}

// HomeWon is false for ties as well as away wins.
func (r Record) HomeWon() bool {
	return r.ActualHome > r.ActualAway
}

// AwayWon is false for ties as well as home wins.
func (r Record) AwayWon() bool {
	return r.ActualAway > r.ActualHome
}

// GameError identifies a game excluded from the metrics.
type GameError struct {
	Game  string    `json:"game"`
	Date  time.Time `json:"date"`
	Error string    `json:"error"`
}

// Report is the immutable result of one backtest run.
type Report struct {
	RunID         string              `json:"run_id"`
	WithGoalie    bool                `json:"with_goalie"`
	StartDate     time.Time           `json:"start_date"`
	EndDate       time.Time           `json:"end_date"`
	TotalGames    int                 `json:"total_games"`
	Processed     int                 `json:"processed"`
	Skipped       int                 `json:"skipped"`
	Errored       int                 `json:"errored"`
	ErrorRate     float64             `json:"error_rate"`
	Metrics       Metrics             `json:"metrics"`
	Bias          BiasReport          `json:"bias"`
	BrierInterval *ConfidenceInterval `json:"brier_interval,omitempty"`
	Records       []Record            `json:"records"`
	Errors        []GameError         `json:"errors,omitempty"`
	Duration      time.Duration       `json:"duration_ns"`
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

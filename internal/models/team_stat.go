package models

import (
	"fmt"
	"strings"
)

// Situation is a game-state context a stat row is recorded under.
type Situation string

const (
	Situation5v5         Situation = "5v5"
	SituationPowerPlay   Situation = "powerplay"
	SituationPenaltyKill Situation = "penaltykill"
	SituationAll         Situation = "all"
)

// ParseSituation accepts the canonical names plus the raw-feed aliases (5on5, 5on4, 4on5).
func ParseSituation(s string) (Situation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "5v5", "5on5", "even":
		return Situation5v5, nil
	case "powerplay", "pp", "5on4":
		return SituationPowerPlay, nil
	case "penaltykill", "pk", "4on5":
		return SituationPenaltyKill, nil
	case "all":
		return SituationAll, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSituation, s)
	}
}

// TeamSituationalStat holds one team's counting stats for one situation, plus
// the rates derived from them. IceTime is in seconds.
type TeamSituationalStat struct {
	Team        string    `json:"team"`
	Situation   Situation `json:"situation"`
	GamesPlayed int       `json:"games_played"`
	IceTime     float64   `json:"ice_time"`

	GoalsFor                   float64 `json:"goals_for"`
	GoalsAgainst               float64 `json:"goals_against"`
	ShotsOnGoalFor             float64 `json:"shots_on_goal_for"`
	ShotsOnGoalAgainst         float64 `json:"shots_on_goal_against"`
	XGoalsFor                  float64 `json:"xgoals_for"`
	XGoalsAgainst              float64 `json:"xgoals_against"`
	ScoreAdjustedXGoalsFor     float64 `json:"score_adjusted_xgoals_for"`
	ScoreAdjustedXGoalsAgainst float64 `json:"score_adjusted_xgoals_against"`
	HighDangerXGoalsFor        float64 `json:"high_danger_xgoals_for"`
	HighDangerXGoalsAgainst    float64 `json:"high_danger_xgoals_against"`
	PenaltyMinutes             float64 `json:"penalty_minutes"`
	PenaltyMinutesDrawn        float64 `json:"penalty_minutes_drawn"`

	// Derived
	XGFPer60              float64 `json:"xgf_per_60"`
	XGAPer60              float64 `json:"xga_per_60"`
	ScoreAdjXGFPer60      float64 `json:"score_adj_xgf_per_60"`
	ScoreAdjXGAPer60      float64 `json:"score_adj_xga_per_60"`
	GoalsForPer60         float64 `json:"goals_for_per_60"`
	GoalsAgainstPer60     float64 `json:"goals_against_per_60"`
	HighDangerXGFPer60    float64 `json:"high_danger_xgf_per_60"`
	HighDangerXGAPer60    float64 `json:"high_danger_xga_per_60"`
	XGDPer60              float64 `json:"xgd_per_60"`
	PDO                   float64 `json:"pdo"`
	ShootingEfficiency    float64 `json:"shooting_efficiency"`
	SavePerformance       float64 `json:"save_performance"`
	SituationalTimeWeight float64 `json:"situational_time_weight"`
	RegressionScore       float64 `json:"regression_score"`
}

// OffensiveRate prefers the score-adjusted rate and falls back to raw xGF/60.
func (s *TeamSituationalStat) OffensiveRate() float64 {
	if s.ScoreAdjXGFPer60 > 0 {
		return s.ScoreAdjXGFPer60
	}
	return s.XGFPer60
}

// DefensiveRate prefers the score-adjusted rate and falls back to raw xGA/60.
func (s *TeamSituationalStat) DefensiveRate() float64 {
	if s.ScoreAdjXGAPer60 > 0 {
		return s.ScoreAdjXGAPer60
	}
	return s.XGAPer60
}

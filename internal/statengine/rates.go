package statengine

import (
	"github.com/yourusername/puck-savant/internal/models"
)

// Static situational time-weights, also stored on each derived row.
var staticSituationWeights = map[models.Situation]float64{
	models.Situation5v5:         0.77,
	models.SituationPowerPlay:   0.12,
	models.SituationPenaltyKill: 0.11,
	models.SituationAll:         1.0,
}

// Per60 converts a counting stat to a per-60-minute rate. iceTime is in seconds.
func Per60(value, iceTime float64) float64 {
	if iceTime <= 0 {
		return 0
	}
	return value / iceTime * 3600
}

// PDO is shooting percentage plus save percentage, 100 when either side has no shots.
func PDO(goalsFor, shotsFor, goalsAgainst, shotsAgainst float64) float64 {
	if shotsFor <= 0 || shotsAgainst <= 0 {
		return 100
	}
	shootingPct := goalsFor / shotsFor * 100
	savePct := (1 - goalsAgainst/shotsAgainst) * 100
	return shootingPct + savePct
}

// ShootingEfficiency is goals per expected goal, 1 without a sample.
func ShootingEfficiency(goalsFor, xGoalsFor float64) float64 {
	if xGoalsFor <= 0 {
		return 1
	}
	return goalsFor / xGoalsFor
}

// SavePerformance is the share of expected goals against that were prevented.
func SavePerformance(goalsAgainst, xGoalsAgainst float64) float64 {
	if xGoalsAgainst <= 0 {
		return 0
	}
	return 1 - goalsAgainst/xGoalsAgainst
}

// RegressionScore flags teams whose results outrun their underlying play.
// Positive means overperforming and due to regress down; negative the reverse.
func RegressionScore(shootingEff, pdo float64) float64 {
	score := 0.0
	if shootingEff > 1.1 {
		score += (shootingEff - 1.0) * 20
	}
	if shootingEff < 0.9 {
		score -= (1.0 - shootingEff) * 20
	}
	if pdo > 102 {
		score += (pdo - 100) * 2
	}
	if pdo < 98 {
		score -= (100 - pdo) * 2
	}
	return score
}

// DeriveRates fills the derived fields of a raw row. Counting stats are left untouched.
func DeriveRates(s models.TeamSituationalStat) models.TeamSituationalStat {
	ice := s.IceTime

	s.XGFPer60 = Per60(s.XGoalsFor, ice)
	s.XGAPer60 = Per60(s.XGoalsAgainst, ice)
	s.ScoreAdjXGFPer60 = Per60(s.ScoreAdjustedXGoalsFor, ice)
	s.ScoreAdjXGAPer60 = Per60(s.ScoreAdjustedXGoalsAgainst, ice)
	s.GoalsForPer60 = Per60(s.GoalsFor, ice)
	s.GoalsAgainstPer60 = Per60(s.GoalsAgainst, ice)
	s.HighDangerXGFPer60 = Per60(s.HighDangerXGoalsFor, ice)
	s.HighDangerXGAPer60 = Per60(s.HighDangerXGoalsAgainst, ice)
	s.XGDPer60 = s.XGFPer60 - s.XGAPer60

	s.PDO = PDO(s.GoalsFor, s.ShotsOnGoalFor, s.GoalsAgainst, s.ShotsOnGoalAgainst)
	s.ShootingEfficiency = ShootingEfficiency(s.GoalsFor, s.XGoalsFor)
	s.SavePerformance = SavePerformance(s.GoalsAgainst, s.XGoalsAgainst)
	s.RegressionScore = RegressionScore(s.ShootingEfficiency, s.PDO)
	s.SituationalTimeWeight = staticSituationWeights[s.Situation]

	return s
}

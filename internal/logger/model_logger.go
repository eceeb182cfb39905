// Package logger provides prediction-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// ModelLogger provides dedicated logging for score and probability predictions.
type ModelLogger struct {
	*logrus.Entry
}

// NewModelLogger creates a new model logger.
func NewModelLogger(baseLogger *logrus.Logger) *ModelLogger {
	return &ModelLogger{
		Entry: baseLogger.WithField("component", "model"),
	}
}

// LogPrediction logs a finished game prediction.
func (ml *ModelLogger) LogPrediction(away, home string, awayScore, homeScore, homeWinProb float64, withGoalie bool) {
	ml.WithFields(logrus.Fields{
		"away":          away,
		"home":          home,
		"away_score":    awayScore,
		"home_score":    homeScore,
		"home_win_prob": homeWinProb,
		"with_goalie":   withGoalie,
	}).Debug("Game predicted")
}

// LogMissingStats logs a prediction that fell back to zero because a team has no 5v5 row.
func (ml *ModelLogger) LogMissingStats(team, opponent string) {
	ml.WithFields(logrus.Fields{
		"team":     team,
		"opponent": opponent,
	}).Debug("Missing 5v5 stats, predicting zero goals")
}

// LogAdjustment logs a goalie or schedule multiplier applied to a prediction.
func (ml *ModelLogger) LogAdjustment(kind, team string, multiplier float64) {
	ml.WithFields(logrus.Fields{
		"kind":       kind,
		"team":       team,
		"multiplier": multiplier,
	}).Debug("Adjustment applied")
}

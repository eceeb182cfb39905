// Package logger provides backtest-specific logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// BacktestLogger provides dedicated logging for backtest runs.
type BacktestLogger struct {
	*logrus.Entry
}

// NewBacktestLogger creates a new backtest logger.
func NewBacktestLogger(baseLogger *logrus.Logger) *BacktestLogger {
	return &BacktestLogger{
		Entry: baseLogger.WithField("component", "backtest"),
	}
}

// LogRunStarted logs the start of a backtest run.
func (bl *BacktestLogger) LogRunStarted(runID string, games int, withGoalie bool) {
	bl.WithFields(logrus.Fields{
		"run_id":      runID,
		"games":       games,
		"with_goalie": withGoalie,
	}).Info("Starting backtest run")
}

// LogSkippedGame logs a game dropped for missing fields.
func (bl *BacktestLogger) LogSkippedGame(runID, game string) {
	bl.WithFields(logrus.Fields{
		"run_id": runID,
		"game":   game,
	}).Debug("Skipping incomplete game")
}

// LogGameError logs a game whose prediction failed.
func (bl *BacktestLogger) LogGameError(runID string, date time.Time, away, home string, err error) {
	bl.WithFields(logrus.Fields{
		"run_id": runID,
		"date":   date.Format("2006-01-02"),
		"away":   away,
		"home":   home,
		"error":  err.Error(),
	}).Error("Error predicting game")
}

// LogRunCompleted logs the headline metrics of a finished run.
func (bl *BacktestLogger) LogRunCompleted(runID string, processed, skipped, errored int, brier, rmse float64, duration time.Duration) {
	bl.WithFields(logrus.Fields{
		"run_id":      runID,
		"processed":   processed,
		"skipped":     skipped,
		"errors":      errored,
		"brier_score": brier,
		"rmse":        rmse,
		"duration_ms": duration.Milliseconds(),
	}).Info("Backtest run completed")
}

// Package logger provides edge-finding logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// EdgeLogger provides dedicated logging for betting-opportunity evaluation.
type EdgeLogger struct {
	*logrus.Entry
}

// NewEdgeLogger creates a new edge logger.
func NewEdgeLogger(baseLogger *logrus.Logger) *EdgeLogger {
	return &EdgeLogger{
		Entry: baseLogger.WithField("component", "ensemble"),
	}
}

// LogOpportunity logs a graded opportunity.
func (el *EdgeLogger) LogOpportunity(id, game, pick, grade string, odds int, evPercent, kellyFraction float64) {
	el.WithFields(logrus.Fields{
		"opportunity_id": id,
		"game":           game,
		"pick":           pick,
		"odds":           odds,
		"grade":          grade,
		"ev_percent":     evPercent,
		"kelly_fraction": kellyFraction,
	}).Info("Opportunity graded")
}

// LogFiltered logs a candidate dropped from the ranked output.
func (el *EdgeLogger) LogFiltered(game, pick, reason string) {
	el.WithFields(logrus.Fields{
		"game":   game,
		"pick":   pick,
		"reason": reason,
	}).Debug("Candidate filtered")
}

// Package datasource supplies the already-parsed inputs the models are built from.
package datasource

import (
	"context"
	"errors"
	"time"

	"github.com/yourusername/puck-savant/internal/models"
	"github.com/yourusername/puck-savant/internal/service"
)

// Source defines the interface for loading model inputs from a provider
type Source interface {
	// TeamStats returns one row per team and situation.
	TeamStats(ctx context.Context) ([]models.TeamSituationalStat, error)

	// GoalieStats returns one row per goalie, team and situation.
	GoalieStats(ctx context.Context) ([]models.GoalieStat, error)

	// Schedule returns the season schedule with full team names.
	Schedule(ctx context.Context) ([]models.ScheduleRow, error)

	// Games returns played games within [start, end]. Zero bounds are open.
	Games(ctx context.Context, start, end time.Time) ([]models.HistoricalGame, error)

	// Slate returns the priced games on date; a zero date returns every priced game.
	Slate(ctx context.Context, date time.Time) ([]service.SlateGame, error)

	// Name returns the name of the data source
	Name() string
}

// SourceError represents errors from data source operations
type SourceError struct {
	Source  string
	Code    string
	Message string
	Err     error
}

func (e SourceError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

func (e SourceError) Unwrap() error { return e.Err }

// Common error codes
const (
	ErrCodeNotFound    = "not_found"
	ErrCodeInvalidData = "invalid_data"
	ErrCodeCancelled   = "cancelled"
)

var (
	ErrNotFound    = errors.New("data not found")
	ErrInvalidData = errors.New("invalid data format")
)

// NewSourceError creates a new data source error
func NewSourceError(source, code, message string, err error) SourceError {
	return SourceError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

package models

import "errors"

// Custom errors
var (
	ErrDuplicateStat       = errors.New("duplicate team/situation stat row")
	ErrDuplicateGoalie     = errors.New("duplicate goalie/team/situation row")
	ErrUnknownTeam         = errors.New("unknown team")
	ErrUnknownSituation    = errors.New("unknown situation")
	ErrInvalidOdds         = errors.New("invalid american odds")
	ErrInvalidProbability  = errors.New("probability must be in (0, 1)")
	ErrNoGames             = errors.New("no games supplied")
	ErrNonFinitePrediction = errors.New("prediction is not a finite number")
)

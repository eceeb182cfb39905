package models

import "time"

// GameResult is the outcome of a played game from one team's perspective.
type GameResult string

const (
	ResultWin      GameResult = "W"
	ResultLoss     GameResult = "L"
	ResultOTLoss   GameResult = "OTL"
	ResultUnplayed GameResult = ""
)

// ScheduleEntry is one game on one team's schedule.
type ScheduleEntry struct {
	Team     string     `json:"team"`
	Date     time.Time  `json:"date"`
	Opponent string     `json:"opponent"`
	IsHome   bool       `json:"is_home"`
	Result   GameResult `json:"result"`
}

// ScheduleRow is a season-schedule line as supplied by the feed, with full team names.
type ScheduleRow struct {
	Date         time.Time `json:"date"`
	Visitor      string    `json:"visitor"`
	Home         string    `json:"home"`
	VisitorGoals *int      `json:"visitor_goals,omitempty"`
	HomeGoals    *int      `json:"home_goals,omitempty"`
	Overtime     bool      `json:"overtime"`
}

// RestInfo describes a team's rest situation for a game.
type RestInfo struct {
	DaysRest    *int    `json:"days_rest"`
	Adjustment  float64 `json:"adjustment"`
	Description string  `json:"description"`
}

// Package schedule indexes a season schedule and prices rest and travel effects.
package schedule

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/puck-savant/internal/logger"
	"github.com/yourusername/puck-savant/internal/models"
	"github.com/yourusername/puck-savant/internal/teams"
)

// Rest adjustments by days since the previous game.
const (
	AnomalousRestAdjustment = -0.04
	BackToBackAdjustment    = -0.03
	NormalRestAdjustment    = 0.0
	ExtendedRestAdjustment  = 0.04
)

// Model holds each team's games sorted by date. It is read-only after construction
// and safe for concurrent use.
type Model struct {
	games  map[string][]models.ScheduleEntry
	logger *logrus.Logger
}

// NewModel indexes entries per team in ascending date order.
func NewModel(entries []models.ScheduleEntry, log *logrus.Logger) *Model {
	if log == nil {
		log = logger.Discard()
	}
	m := &Model{games: make(map[string][]models.ScheduleEntry), logger: log}
	for _, e := range entries {
		m.games[e.Team] = append(m.games[e.Team], e)
	}
	for team := range m.games {
		games := m.games[team]
		sort.SliceStable(games, func(i, j int) bool { return games[i].Date.Before(games[j].Date) })
	}

	log.WithFields(logrus.Fields{
		"component": "schedule",
		"teams":     len(m.games),
		"entries":   len(entries),
	}).Debug("Schedule indexed")
	return m
}

// FromRows builds the model from feed rows, mapping team names through lookup.
// Each row yields one entry for the visitor and one for the home side.
func FromRows(rows []models.ScheduleRow, lookup teams.Lookup, log *logrus.Logger) (*Model, error) {
	entries := make([]models.ScheduleEntry, 0, len(rows)*2)
	for i, row := range rows {
		visitor, err := lookup.Code(row.Visitor)
		if err != nil {
			return nil, fmt.Errorf("schedule row %d: %w", i, err)
		}
		home, err := lookup.Code(row.Home)
		if err != nil {
			return nil, fmt.Errorf("schedule row %d: %w", i, err)
		}

		visitorResult, homeResult := results(row)
		entries = append(entries,
			models.ScheduleEntry{Team: visitor, Date: row.Date, Opponent: home, IsHome: false, Result: visitorResult},
			models.ScheduleEntry{Team: home, Date: row.Date, Opponent: visitor, IsHome: true, Result: homeResult},
		)
	}
	return NewModel(entries, log), nil
}

// Games returns a copy of a team's schedule.
func (m *Model) Games(team string) []models.ScheduleEntry {
	games := m.games[team]
	out := make([]models.ScheduleEntry, len(games))
	copy(out, games)
	return out
}

// DaysRest is the number of calendar days since the team's previous game.
// ok is false for unknown teams and for a team's first game.
func (m *Model) DaysRest(team string, date time.Time) (days int, ok bool) {
	games := m.games[team]
	prev := m.previousIndex(games, date)
	if prev < 0 {
		return 0, false
	}
	return dayDiff(games[prev].Date, date), true
}

// RestAdjustment prices the team's rest before a game on date.
func (m *Model) RestAdjustment(team string, date time.Time) float64 {
	days, ok := m.DaysRest(team, date)
	if !ok {
		return 0
	}
	return restAdjustment(days)
}

// IsBackToBack reports whether the team played the previous day.
func (m *Model) IsBackToBack(team string, date time.Time) bool {
	days, ok := m.DaysRest(team, date)
	return ok && days == 1
}

// RestInfo describes the team's rest before a game on date.
func (m *Model) RestInfo(team string, date time.Time) models.RestInfo {
	days, ok := m.DaysRest(team, date)
	if !ok {
		return models.RestInfo{Description: "No previous game"}
	}
	info := models.RestInfo{DaysRest: &days, Adjustment: restAdjustment(days)}
	switch {
	case days <= 0:
		info.Description = "Schedule anomaly"
	case days == 1:
		info.Description = "Back-to-back"
	case days == 2:
		info.Description = "Normal rest"
	default:
		info.Description = fmt.Sprintf("Well rested (%d days)", days)
	}
	return info
}

// RoadTripLength is the number of consecutive away games the team played
// before date. A game on date itself is not counted.
func (m *Model) RoadTripLength(team string, date time.Time) int {
	return m.awayStreakBefore(team, date)
}

// RoadTripAdjustment prices fatigue for a team playing away on date. The
// penalty starts with the third straight road game.
func (m *Model) RoadTripAdjustment(team string, date time.Time) float64 {
	if _, known := m.games[team]; !known {
		return 0
	}
	switch n := m.RoadTripLength(team, date); {
	case n >= 4:
		return -0.08
	case n == 3:
		return -0.05
	case n == 2:
		return -0.03
	default:
		return 0
	}
}

// HomecomingAdjustment prices the first home game after a road trip of three or more.
func (m *Model) HomecomingAdjustment(team string, date time.Time) float64 {
	switch n := m.awayStreakBefore(team, date); {
	case n >= 5:
		return 0.06
	case n == 4:
		return 0.05
	case n == 3:
		return 0.03
	default:
		return 0
	}
}

// CombinedAdjustment sums rest with either the homecoming boost or the road-trip penalty.
// Callers apply it as predicted *= 1 + adjustment.
func (m *Model) CombinedAdjustment(team string, date time.Time, isHome bool) float64 {
	adj := m.RestAdjustment(team, date)
	if isHome {
		adj += m.HomecomingAdjustment(team, date)
	} else {
		adj += m.RoadTripAdjustment(team, date)
	}
	return adj
}

// previousIndex finds the game before the one on date. A game already on the
// schedule for that day is treated as the current game.
func (m *Model) previousIndex(games []models.ScheduleEntry, date time.Time) int {
	day := dayOf(date)
	n := sort.Search(len(games), func(i int) bool { return dayOf(games[i].Date).After(day) })
	if n > 0 && dayOf(games[n-1].Date).Equal(day) {
		return n - 2
	}
	return n - 1
}

func (m *Model) awayStreakBefore(team string, date time.Time) int {
	games := m.games[team]
	streak := 0
	for i := m.previousIndex(games, date); i >= 0 && !games[i].IsHome; i-- {
		streak++
	}
	return streak
}

func restAdjustment(days int) float64 {
	switch {
	case days <= 0:
		return AnomalousRestAdjustment
	case days == 1:
		return BackToBackAdjustment
	case days == 2:
		return NormalRestAdjustment
	default:
		return ExtendedRestAdjustment
	}
}

func results(row models.ScheduleRow) (visitor, home models.GameResult) {
	if row.VisitorGoals == nil || row.HomeGoals == nil {
		return models.ResultUnplayed, models.ResultUnplayed
	}
	loss := models.ResultLoss
	if row.Overtime {
		loss = models.ResultOTLoss
	}
	if *row.HomeGoals > *row.VisitorGoals {
		return loss, models.ResultWin
	}
	return models.ResultWin, loss
}

func dayOf(t time.Time) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}

func dayDiff(from, to time.Time) int {
	return int(math.Round(dayOf(to).Sub(dayOf(from)).Hours() / 24))
}

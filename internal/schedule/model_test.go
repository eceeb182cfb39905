package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/puck-savant/internal/models"
	"github.com/yourusername/puck-savant/internal/teams"
)

func day(d int) time.Time {
	return time.Date(2024, 10, d, 19, 0, 0, 0, time.UTC)
}

// buildTrip gives BOS a home opener, five straight road games, then a home game.
func buildTrip() *Model {
	type g struct {
		d    int
		home bool
		opp  string
	}
	var entries []models.ScheduleEntry
	for _, x := range []g{
		{1, true, "FLA"},
		{3, false, "TOR"},
		{4, false, "MTL"},
		{6, false, "OTT"},
		{7, false, "DET"},
		{10, false, "BUF"},
		{12, true, "NYR"},
	} {
		entries = append(entries, models.ScheduleEntry{Team: "BOS", Date: day(x.d), Opponent: x.opp, IsHome: x.home})
	}
	return NewModel(entries, nil)
}

func TestDaysRest(t *testing.T) {
	m := buildTrip()

	_, ok := m.DaysRest("BOS", day(1))
	assert.False(t, ok, "first game has no previous game")

	days, ok := m.DaysRest("BOS", day(4))
	require.True(t, ok)
	assert.Equal(t, 1, days)

	days, ok = m.DaysRest("BOS", day(10))
	require.True(t, ok)
	assert.Equal(t, 3, days)

	// A date not on the schedule measures from the last game before it.
	days, ok = m.DaysRest("BOS", day(20))
	require.True(t, ok)
	assert.Equal(t, 8, days)

	_, ok = m.DaysRest("XXX", day(4))
	assert.False(t, ok)
}

func TestRestAdjustment(t *testing.T) {
	m := buildTrip()

	assert.Equal(t, 0.0, m.RestAdjustment("BOS", day(1)))
	assert.Equal(t, -0.03, m.RestAdjustment("BOS", day(4)))
	assert.Equal(t, 0.0, m.RestAdjustment("BOS", day(6)))
	assert.Equal(t, 0.04, m.RestAdjustment("BOS", day(10)))
	assert.Equal(t, 0.0, m.RestAdjustment("XXX", day(10)))
	assert.True(t, m.IsBackToBack("BOS", day(7)))
	assert.False(t, m.IsBackToBack("BOS", day(10)))

	allowed := map[float64]bool{-0.04: true, -0.03: true, 0: true, 0.04: true}
	for d := 1; d <= 25; d++ {
		assert.True(t, allowed[m.RestAdjustment("BOS", day(d))], "day %d", d)
	}
}

func TestRestAdjustmentSameDayAnomaly(t *testing.T) {
	m := NewModel([]models.ScheduleEntry{
		{Team: "SEA", Date: day(5), Opponent: "VAN"},
		{Team: "SEA", Date: day(5), Opponent: "CGY"},
	}, nil)

	days, ok := m.DaysRest("SEA", day(5))
	require.True(t, ok)
	assert.Equal(t, 0, days)
	assert.Equal(t, -0.04, m.RestAdjustment("SEA", day(5)))
	assert.Equal(t, "Schedule anomaly", m.RestInfo("SEA", day(5)).Description)
}

func TestRoadTripAdjustment(t *testing.T) {
	m := buildTrip()

	assert.Equal(t, 0, m.RoadTripLength("BOS", day(3)))
	assert.Equal(t, 1, m.RoadTripLength("BOS", day(4)))
	assert.Equal(t, 4, m.RoadTripLength("BOS", day(10)))
	assert.Equal(t, 0.0, m.RoadTripAdjustment("BOS", day(3)))
	assert.Equal(t, 0.0, m.RoadTripAdjustment("BOS", day(4)))
	assert.Equal(t, -0.03, m.RoadTripAdjustment("BOS", day(6)))
	assert.Equal(t, -0.05, m.RoadTripAdjustment("BOS", day(7)))
	assert.Equal(t, -0.08, m.RoadTripAdjustment("BOS", day(10)))
	assert.Equal(t, 0.0, m.RoadTripAdjustment("XXX", day(10)))
}

func TestRoadTripSecondAwayGameIsFree(t *testing.T) {
	m := NewModel([]models.ScheduleEntry{
		{Team: "BOS", Date: day(1), Opponent: "FLA", IsHome: true},
		{Team: "BOS", Date: day(3), Opponent: "TOR"},
		{Team: "BOS", Date: day(5), Opponent: "MTL"},
	}, nil)

	assert.Equal(t, 1, m.RoadTripLength("BOS", day(5)))
	assert.Equal(t, 0.0, m.RoadTripAdjustment("BOS", day(5)))
	assert.Equal(t, 0.0, m.CombinedAdjustment("BOS", day(5), false))
	// Third straight road game two days later.
	assert.Equal(t, -0.03, m.RoadTripAdjustment("BOS", day(7)))
}

func TestHomecomingAdjustment(t *testing.T) {
	m := buildTrip()

	assert.Equal(t, 0.06, m.HomecomingAdjustment("BOS", day(12)))
	assert.Equal(t, 0.0, m.HomecomingAdjustment("BOS", day(1)))

	short := NewModel([]models.ScheduleEntry{
		{Team: "DAL", Date: day(1), Opponent: "STL"},
		{Team: "DAL", Date: day(3), Opponent: "CHI"},
		{Team: "DAL", Date: day(5), Opponent: "MIN"},
		{Team: "DAL", Date: day(8), Opponent: "COL", IsHome: true},
	}, nil)
	assert.Equal(t, 0.03, short.HomecomingAdjustment("DAL", day(8)))

	four := NewModel(append(short.Games("DAL")[:3:3],
		models.ScheduleEntry{Team: "DAL", Date: day(6), Opponent: "WPG"},
		models.ScheduleEntry{Team: "DAL", Date: day(8), Opponent: "COL", IsHome: true},
	), nil)
	assert.Equal(t, 0.05, four.HomecomingAdjustment("DAL", day(8)))
}

func TestCombinedAdjustment(t *testing.T) {
	m := buildTrip()

	// Home after five away games with a day off between: normal rest plus homecoming.
	assert.InDelta(t, 0.06, m.CombinedAdjustment("BOS", day(12), true), 1e-12)
	// Back-to-back on the fourth road game.
	assert.InDelta(t, -0.03-0.05, m.CombinedAdjustment("BOS", day(7), false), 1e-12)
	// Three days off before the fifth road game.
	assert.InDelta(t, 0.04-0.08, m.CombinedAdjustment("BOS", day(10), false), 1e-12)
	assert.Equal(t, 0.0, m.CombinedAdjustment("XXX", day(10), true))
}

func TestRestInfo(t *testing.T) {
	m := buildTrip()

	first := m.RestInfo("BOS", day(1))
	assert.Nil(t, first.DaysRest)
	assert.Equal(t, "No previous game", first.Description)

	b2b := m.RestInfo("BOS", day(4))
	require.NotNil(t, b2b.DaysRest)
	assert.Equal(t, 1, *b2b.DaysRest)
	assert.Equal(t, "Back-to-back", b2b.Description)
	assert.Equal(t, -0.03, b2b.Adjustment)

	assert.Equal(t, "Well rested (3 days)", m.RestInfo("BOS", day(10)).Description)
}

func TestFromRows(t *testing.T) {
	three, two := 3, 2
	rows := []models.ScheduleRow{
		{Date: day(9), Visitor: "Boston Bruins", Home: "Toronto Maple Leafs", VisitorGoals: &three, HomeGoals: &two, Overtime: true},
		{Date: day(8), Visitor: "Montreal Canadiens", Home: "Boston Bruins"},
	}

	m, err := FromRows(rows, teams.NewNHLTable(), nil)
	require.NoError(t, err)

	bos := m.Games("BOS")
	require.Len(t, bos, 2)
	assert.Equal(t, day(8), bos[0].Date)
	assert.True(t, bos[0].IsHome)
	assert.Equal(t, models.ResultUnplayed, bos[0].Result)
	assert.Equal(t, "TOR", bos[1].Opponent)
	assert.Equal(t, models.ResultWin, bos[1].Result)

	tor := m.Games("TOR")
	require.Len(t, tor, 1)
	assert.Equal(t, models.ResultOTLoss, tor[0].Result)
	assert.True(t, m.IsBackToBack("BOS", day(9)))

	_, err = FromRows([]models.ScheduleRow{{Date: day(1), Visitor: "Quebec Nordiques", Home: "Boston Bruins"}}, teams.NewNHLTable(), nil)
	assert.ErrorIs(t, err, models.ErrUnknownTeam)
}

func TestEntriesSortedPerTeam(t *testing.T) {
	m := NewModel([]models.ScheduleEntry{
		{Team: "CAR", Date: day(9)},
		{Team: "CAR", Date: day(2)},
		{Team: "CAR", Date: day(5)},
	}, nil)

	games := m.Games("CAR")
	for i := 1; i < len(games); i++ {
		assert.True(t, games[i-1].Date.Before(games[i].Date))
	}
}

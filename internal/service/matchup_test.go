package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/puck-savant/internal/models"
	"github.com/yourusername/puck-savant/internal/schedule"
)

func TestMatchup(t *testing.T) {
	sched := schedule.NewModel([]models.ScheduleEntry{
		{Team: "NJD", Date: gameDate.AddDate(0, 0, -1), Opponent: "PHI", IsHome: true},
		{Team: "NJD", Date: gameDate, Opponent: "NYR"},
		{Team: "NYR", Date: gameDate.AddDate(0, 0, -3), Opponent: "BOS"},
		{Team: "NYR", Date: gameDate, Opponent: "NJD", IsHome: true},
	}, nil)
	p := newTestPredictor(t, WithScheduleModel(sched))

	m, err := p.Matchup(GameRequest{Away: "Devils", Home: "NYR", Date: gameDate, HomeGoalie: "Jonathan Quick"})
	require.NoError(t, err)

	assert.Equal(t, "NJD", m.Away)
	assert.Equal(t, "Jake Allen", m.AwayStarter)
	assert.Equal(t, "Jonathan Quick", m.HomeStarter)
	require.NotNil(t, m.AwayRest)
	assert.Equal(t, "Back-to-back", m.AwayRest.Description)
	require.NotNil(t, m.HomeRest)
	assert.Equal(t, "Well rested (3 days)", m.HomeRest.Description)

	_, err = p.Matchup(GameRequest{Away: "Hartford Whalers", Home: "NYR"})
	assert.ErrorIs(t, err, models.ErrUnknownTeam)
}

func TestMatchupWithoutSchedule(t *testing.T) {
	m, err := newTestPredictor(t).Matchup(GameRequest{Away: "NJD", Home: "NYR", Date: gameDate})
	require.NoError(t, err)
	assert.Equal(t, "Igor Shesterkin", m.HomeStarter)
	assert.Nil(t, m.AwayRest)
	assert.Nil(t, m.HomeRest)
}

func TestReportSlate(t *testing.T) {
	p := newTestPredictor(t, WithCache(NewPredictionCache(time.Minute)))

	report := p.ReportSlate([]SlateGame{
		{
			GameRequest:      GameRequest{Away: "NJD", Home: "NYR", Date: gameDate},
			AwayMoneyline:    -130,
			HomeMoneyline:    110,
			TotalLine:        5.5,
			ExternalHomeProb: float64Ptr(0.6),
		},
		{
			GameRequest:   GameRequest{Away: "NYR", Home: "NJD", Date: gameDate.AddDate(0, 0, 1)},
			AwayMoneyline: -200,
			HomeMoneyline: 170,
		},
		{
			GameRequest:   GameRequest{Away: "Hartford Whalers", Home: "NYR", Date: gameDate},
			AwayMoneyline: 100,
			HomeMoneyline: -120,
			TotalLine:     6,
		},
	})

	require.NotEmpty(t, report.Opportunities)
	assert.Equal(t, "NYR", report.Opportunities[0].Candidate.Pick)
	assert.Len(t, report.Matchups, 2)

	require.Len(t, report.Totals, 1)
	total := report.Totals[0]
	assert.Equal(t, 5.5, total.Line)
	assert.Equal(t, "NJD", total.Game.Away)
	// the model's four goals sit well under 5.5
	assert.Equal(t, LeanUnder, total.Lean)
}

package models

import (
	"fmt"
	"time"
)

// Game is a per-request prediction for one matchup. HomeSpread is -1.5 when the
// home side is favoured and +1.5 otherwise; the away side takes the opposite line.
type Game struct {
	Away             string    `json:"away"`
	Home             string    `json:"home"`
	Date             time.Time `json:"date"`
	AwayScore        float64   `json:"away_score"`
	HomeScore        float64   `json:"home_score"`
	Total            float64   `json:"total"`
	HomeWinProb      float64   `json:"home_win_prob"`
	AwayWinProb      float64   `json:"away_win_prob"`
	HomeSpread       float64   `json:"home_spread"`
	HomePuckLineProb float64   `json:"home_puck_line_prob"`
	AwayPuckLineProb float64   `json:"away_puck_line_prob"`
	AwayGoalie       string    `json:"away_goalie,omitempty"`
	HomeGoalie       string    `json:"home_goalie,omitempty"`
}

// HistoricalGame is a completed game fed to the backtest. Nil scores mark
// incomplete records.
type HistoricalGame struct {
	Date       time.Time `json:"date"`
	Away       string    `json:"away"`
	Home       string    `json:"home"`
	AwayScore  *int      `json:"away_score"`
	HomeScore  *int      `json:"home_score"`
	AwayGoalie string    `json:"away_goalie,omitempty"`
	HomeGoalie string    `json:"home_goalie,omitempty"`
}

// Complete reports whether the game has everything the backtest needs.
func (g *HistoricalGame) Complete() bool {
	return g.Away != "" && g.Home != "" && !g.Date.IsZero() && g.AwayScore != nil && g.HomeScore != nil
}

// String identifies the game in logs.
func (g *HistoricalGame) String() string {
	return fmt.Sprintf("%s %s@%s", g.Date.Format("2006-01-02"), g.Away, g.Home)
}

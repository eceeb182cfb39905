package service

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/puck-savant/internal/models"
)

// SlateGame is one priced matchup. Zero puck-line odds mean the market is not offered
// and a zero TotalLine means no total is posted.
// ExternalHomeProb is an optional third-party home win probability.
type SlateGame struct {
	GameRequest
	AwayMoneyline    int      `json:"away_moneyline"`
	HomeMoneyline    int      `json:"home_moneyline"`
	AwayPuckLine     int      `json:"away_puck_line,omitempty"`
	HomePuckLine     int      `json:"home_puck_line,omitempty"`
	TotalLine        float64  `json:"total_line,omitempty"`
	ExternalHomeProb *float64 `json:"external_home_prob,omitempty"`
}

// Candidates predicts the game and lists every priced outcome for the ensemble.
func (p *GamePredictor) Candidates(sg SlateGame) ([]models.Candidate, models.Game, error) {
	game, err := p.PredictGame(sg.GameRequest)
	if err != nil {
		return nil, models.Game{}, err
	}

	var awayExt, homeExt *float64
	if sg.ExternalHomeProb != nil {
		h := *sg.ExternalHomeProb
		a := 1 - h
		homeExt, awayExt = &h, &a
	}

	cands := []models.Candidate{
		{
			Away:         game.Away,
			Home:         game.Home,
			Market:       models.MarketMoneyline,
			Pick:         game.Away,
			Odds:         sg.AwayMoneyline,
			OpposingOdds: sg.HomeMoneyline,
			ModelProb:    game.AwayWinProb,
			ExternalProb: awayExt,
		},
		{
			Away:         game.Away,
			Home:         game.Home,
			Market:       models.MarketMoneyline,
			Pick:         game.Home,
			Odds:         sg.HomeMoneyline,
			OpposingOdds: sg.AwayMoneyline,
			ModelProb:    game.HomeWinProb,
			ExternalProb: homeExt,
		},
	}
	if sg.AwayPuckLine != 0 && sg.HomePuckLine != 0 {
		cands = append(cands,
			models.Candidate{
				Away:         game.Away,
				Home:         game.Home,
				Market:       models.MarketPuckLine,
				Pick:         fmt.Sprintf("%s %+.1f", game.Away, -game.HomeSpread),
				Odds:         sg.AwayPuckLine,
				OpposingOdds: sg.HomePuckLine,
				ModelProb:    game.AwayPuckLineProb,
			},
			models.Candidate{
				Away:         game.Away,
				Home:         game.Home,
				Market:       models.MarketPuckLine,
				Pick:         fmt.Sprintf("%s %+.1f", game.Home, game.HomeSpread),
				Odds:         sg.HomePuckLine,
				OpposingOdds: sg.AwayPuckLine,
				ModelProb:    game.HomePuckLineProb,
			},
		)
	}
	return cands, game, nil
}

// EvaluateSlate turns a day's priced games into graded opportunities, best first.
// Games that cannot be predicted are logged and left out.
func (p *GamePredictor) EvaluateSlate(slate []SlateGame) []models.Opportunity {
	var all []models.Candidate
	for _, sg := range slate {
		cands, _, err := p.Candidates(sg)
		if err != nil {
			p.logger.WithFields(logrus.Fields{
				"away":  sg.Away,
				"home":  sg.Home,
				"error": err.Error(),
			}).Warn("Skipping slate game")
			continue
		}
		all = append(all, cands...)
	}

	p.logger.WithFields(logrus.Fields{
		"games":      len(slate),
		"candidates": len(all),
	}).Info("Evaluating slate")
	return p.calculator.GetTopEdges(all)
}

package service

import (
	"github.com/sirupsen/logrus"

	"github.com/yourusername/puck-savant/internal/models"
)

// Matchup is the context around one game: who is expected in net and how rested
// each side is. Fields stay empty when the collaborator behind them is not configured.
type Matchup struct {
	Away        string           `json:"away"`
	Home        string           `json:"home"`
	AwayStarter string           `json:"away_starter,omitempty"`
	HomeStarter string           `json:"home_starter,omitempty"`
	AwayRest    *models.RestInfo `json:"away_rest,omitempty"`
	HomeRest    *models.RestInfo `json:"home_rest,omitempty"`
}

// SlateReport is everything the slate CLI prints for one day.
type SlateReport struct {
	Opportunities []models.Opportunity `json:"opportunities"`
	Totals        []TotalAnalysis      `json:"totals,omitempty"`
	Matchups      []Matchup            `json:"matchups,omitempty"`
}

// Matchup resolves team codes and fills in probable starters and rest. A goaltender
// named in the request wins over the team's games-played leader.
func (p *GamePredictor) Matchup(req GameRequest) (Matchup, error) {
	away, err := p.lookup.Code(req.Away)
	if err != nil {
		return Matchup{}, err
	}
	home, err := p.lookup.Code(req.Home)
	if err != nil {
		return Matchup{}, err
	}

	m := Matchup{Away: away, Home: home, AwayStarter: req.AwayGoalie, HomeStarter: req.HomeGoalie}
	if p.goalies != nil {
		if m.AwayStarter == "" {
			m.AwayStarter, _ = p.goalies.Starter(away)
		}
		if m.HomeStarter == "" {
			m.HomeStarter, _ = p.goalies.Starter(home)
		}
	}
	if p.schedule != nil && !req.Date.IsZero() {
		awayRest := p.schedule.RestInfo(away, req.Date)
		homeRest := p.schedule.RestInfo(home, req.Date)
		m.AwayRest, m.HomeRest = &awayRest, &homeRest
	}
	return m, nil
}

// ReportSlate grades the slate, analyses every posted total and describes each
// matchup. Games that cannot be predicted are logged and left out of the extras.
func (p *GamePredictor) ReportSlate(slate []SlateGame) SlateReport {
	report := SlateReport{Opportunities: p.EvaluateSlate(slate)}
	for _, sg := range slate {
		m, err := p.Matchup(sg.GameRequest)
		if err != nil {
			continue
		}
		report.Matchups = append(report.Matchups, m)

		if sg.TotalLine <= 0 {
			continue
		}
		total, err := p.AnalyzeTotal(sg.GameRequest, sg.TotalLine)
		if err != nil {
			p.logger.WithFields(logrus.Fields{
				"away":  sg.Away,
				"home":  sg.Home,
				"line":  sg.TotalLine,
				"error": err.Error(),
			}).Warn("Skipping total")
			continue
		}
		report.Totals = append(report.Totals, total)
	}
	return report
}

package service

import (
	"fmt"
	"math"

	"github.com/yourusername/puck-savant/internal/ensemble"
	"github.com/yourusername/puck-savant/internal/models"
	"github.com/yourusername/puck-savant/internal/statengine"
)

// Total leans.
const (
	LeanOver  = "OVER"
	LeanUnder = "UNDER"
	LeanPass  = "PASS"
)

// Signal weights and confidences for the totals combiner.
const (
	xgSignalWeight       = 0.40
	xgSignalConfidence   = 0.90
	paceSignalWeight     = 0.23
	paceSignalConfidence = 0.75
	goalieSignalWeight   = 0.27
	goalieSignalConf     = 0.80

	leagueShotPace = 60.0
	defaultShots60 = 30.0
	minLeanEdge    = 0.02
)

// TotalAnalysis is the over/under view of one game against a posted line.
type TotalAnalysis struct {
	Game        models.Game          `json:"game"`
	Line        float64              `json:"line"`
	PoissonOver float64              `json:"poisson_over"`
	Signals     []ensemble.Signal    `json:"signals"`
	Combination ensemble.Combination `json:"combination"`
	Lean        string               `json:"lean"`
}

// AnalyzeTotal folds model, pace and goaltending signals into an over probability.
// The goaltending signal is only present when the request enables goalies and a
// goalie model is configured.
func (p *GamePredictor) AnalyzeTotal(req GameRequest, line float64) (TotalAnalysis, error) {
	if line <= 0 || math.IsNaN(line) {
		return TotalAnalysis{}, fmt.Errorf("total line must be positive, got %v", line)
	}
	game, err := p.PredictGame(req)
	if err != nil {
		return TotalAnalysis{}, err
	}

	signals := []ensemble.Signal{p.xgSignal(game, line), p.paceSignal(game, line)}
	if req.WithGoalie && p.goalies != nil {
		signals = append(signals, p.goalieSignal(game))
	}

	combo := ensemble.CombineSignals(signals)
	lean := LeanPass
	switch {
	case combo.Probability >= 0.5+minLeanEdge:
		lean = LeanOver
	case combo.Probability <= 0.5-minLeanEdge:
		lean = LeanUnder
	}

	return TotalAnalysis{
		Game:        game,
		Line:        line,
		PoissonOver: statengine.TotalOverProb(game.HomeScore, game.AwayScore, line),
		Signals:     signals,
		Combination: combo,
		Lean:        lean,
	}, nil
}

// xgSignal moves 10 points per goal of model edge over the line.
func (p *GamePredictor) xgSignal(game models.Game, line float64) ensemble.Signal {
	diff := game.Total - line
	return ensemble.Signal{
		Name:        "xG Model",
		Probability: clamp(0.5+diff*0.10, 0.30, 0.70),
		Weight:      xgSignalWeight,
		Confidence:  xgSignalConfidence,
		Detail:      fmt.Sprintf("model %.2f vs line %.1f (%+.2f)", game.Total, line, diff),
	}
}

// paceSignal compares combined all-situation shot rates with the league norm.
func (p *GamePredictor) paceSignal(game models.Game, line float64) ensemble.Signal {
	pace := (p.shotPace(game.Away) + p.shotPace(game.Home)) / 2
	factor := pace / leagueShotPace
	return ensemble.Signal{
		Name:        "Pace",
		Probability: clamp(0.5+(factor-1)*line*0.15, 0.35, 0.65),
		Weight:      paceSignalWeight,
		Confidence:  paceSignalConfidence,
		Detail:      fmt.Sprintf("%.2fx league pace (%.1f shots/60)", factor, pace),
	}
}

// goalieSignal leans under for goaltenders saving more than expected.
func (p *GamePredictor) goalieSignal(game models.Game) ensemble.Signal {
	away, _ := p.goalies.FacingGSAE(game.Away, game.AwayGoalie)
	home, _ := p.goalies.FacingGSAE(game.Home, game.HomeGoalie)
	combined := (away + home) / 2
	return ensemble.Signal{
		Name:        "Goaltending",
		Probability: clamp(0.5-combined*0.05, 0.35, 0.65),
		Weight:      goalieSignalWeight,
		Confidence:  goalieSignalConf,
		Detail:      fmt.Sprintf("combined GSAE %+.1f", combined),
	}
}

func (p *GamePredictor) shotPace(team string) float64 {
	row, ok := p.engine.Stat(team, models.SituationAll)
	if !ok || row.IceTime <= 0 {
		return 2 * defaultShots60
	}
	shotsFor := statengine.Per60(row.ShotsOnGoalFor, row.IceTime)
	against := statengine.Per60(row.ShotsOnGoalAgainst, row.IceTime)
	if shotsFor <= 0 {
		shotsFor = defaultShots60
	}
	if against <= 0 {
		against = defaultShots60
	}
	return shotsFor + against
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Package service combines the stat engine, its collaborators and the ensemble into game-level operations.
package service

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/puck-savant/internal/ensemble"
	"github.com/yourusername/puck-savant/internal/goalie"
	"github.com/yourusername/puck-savant/internal/logger"
	"github.com/yourusername/puck-savant/internal/metrics"
	"github.com/yourusername/puck-savant/internal/models"
	"github.com/yourusername/puck-savant/internal/schedule"
	"github.com/yourusername/puck-savant/internal/statengine"
	"github.com/yourusername/puck-savant/internal/teams"
)

// PuckLineSpread is the standard NHL run line.
const PuckLineSpread = 1.5

// GameRequest asks for one matchup. Team fields accept codes or any name the lookup knows.
// WithGoalie and WithSchedule toggle the collaborators for this call only.
type GameRequest struct {
	Away         string    `json:"away"`
	Home         string    `json:"home"`
	Date         time.Time `json:"date"`
	AwayGoalie   string    `json:"away_goalie,omitempty"`
	HomeGoalie   string    `json:"home_goalie,omitempty"`
	WithGoalie   bool      `json:"with_goalie"`
	WithSchedule bool      `json:"with_schedule"`
}

// GamePredictor produces game predictions and betting opportunities.
type GamePredictor struct {
	engine     *statengine.Engine
	calculator *ensemble.Calculator
	goalies    *goalie.Model
	schedule   *schedule.Model
	lookup     teams.Lookup
	cache      *PredictionCache
	logger     *logrus.Logger
	modelLog   *logger.ModelLogger
}

// Option configures a GamePredictor.
type Option func(*GamePredictor)

// WithGoalieModel enables goaltender adjustments for requests that ask for them.
func WithGoalieModel(m *goalie.Model) Option {
	return func(p *GamePredictor) { p.goalies = m }
}

// WithScheduleModel enables rest and travel adjustments for requests that ask for them.
func WithScheduleModel(m *schedule.Model) Option {
	return func(p *GamePredictor) { p.schedule = m }
}

// WithLookup resolves team names in requests.
func WithLookup(l teams.Lookup) Option {
	return func(p *GamePredictor) { p.lookup = l }
}

// WithCache memoises predictions.
func WithCache(c *PredictionCache) Option {
	return func(p *GamePredictor) { p.cache = c }
}

// WithLogger sets the predictor's logger.
func WithLogger(l *logrus.Logger) Option {
	return func(p *GamePredictor) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewGamePredictor creates a predictor over a built engine and calculator.
func NewGamePredictor(engine *statengine.Engine, calculator *ensemble.Calculator, opts ...Option) (*GamePredictor, error) {
	if engine == nil {
		return nil, fmt.Errorf("stat engine is required")
	}
	if calculator == nil {
		return nil, fmt.Errorf("ensemble calculator is required")
	}

	p := &GamePredictor{
		engine:     engine,
		calculator: calculator,
		lookup:     teams.NewNHLTable(),
		logger:     logrus.New(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.modelLog = logger.NewModelLogger(p.logger)
	return p, nil
}

// PredictGame predicts both scores and derives win and puck-line probabilities.
// Unknown team names are an error; teams without stats predict 0 goals.
func (p *GamePredictor) PredictGame(req GameRequest) (models.Game, error) {
	away, err := p.lookup.Code(req.Away)
	if err != nil {
		return models.Game{}, fmt.Errorf("away team: %w", err)
	}
	home, err := p.lookup.Code(req.Home)
	if err != nil {
		return models.Game{}, fmt.Errorf("home team: %w", err)
	}

	key := CacheKey{
		Away:         away,
		Home:         home,
		Date:         req.Date,
		AwayGoalie:   req.AwayGoalie,
		HomeGoalie:   req.HomeGoalie,
		WithGoalie:   req.WithGoalie,
		WithSchedule: req.WithSchedule,
	}
	if p.cache != nil {
		if game, ok := p.cache.Get(key); ok {
			metrics.RecordPrediction(true)
			return game, nil
		}
	}

	var goalies statengine.GoalieAdjuster
	if req.WithGoalie && p.goalies != nil {
		goalies = p.goalies
	}
	var sched statengine.ScheduleAdjuster
	if req.WithSchedule && p.schedule != nil {
		sched = p.schedule
	}

	homeScore := p.engine.PredictTeamScore(statengine.ScoreRequest{
		Team:           home,
		Opponent:       away,
		IsHome:         true,
		OpposingGoalie: req.AwayGoalie,
		Date:           req.Date,
		Goalies:        goalies,
		Schedule:       sched,
	})
	awayScore := p.engine.PredictTeamScore(statengine.ScoreRequest{
		Team:           away,
		Opponent:       home,
		IsHome:         false,
		OpposingGoalie: req.HomeGoalie,
		Date:           req.Date,
		Goalies:        goalies,
		Schedule:       sched,
	})

	homeProb := statengine.PoissonWinProb(homeScore, awayScore)
	spread := PuckLineSpread
	if homeScore >= awayScore {
		spread = -PuckLineSpread
	}

	game := models.Game{
		Away:             away,
		Home:             home,
		Date:             req.Date,
		AwayScore:        awayScore,
		HomeScore:        homeScore,
		Total:            homeScore + awayScore,
		HomeWinProb:      homeProb,
		AwayWinProb:      1 - homeProb,
		HomeSpread:       spread,
		HomePuckLineProb: statengine.PuckLineProb(homeScore, awayScore, spread),
		AwayPuckLineProb: statengine.PuckLineProb(awayScore, homeScore, -spread),
		AwayGoalie:       req.AwayGoalie,
		HomeGoalie:       req.HomeGoalie,
	}

	p.modelLog.LogPrediction(away, home, awayScore, homeScore, homeProb, goalies != nil)
	metrics.RecordPrediction(false)
	if p.cache != nil {
		p.cache.Set(key, game)
	}
	return game, nil
}

// Package backtest replays historical games through the stat engine and scores the predictions.
package backtest

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/yourusername/puck-savant/internal/logger"
	"github.com/yourusername/puck-savant/internal/metrics"
	"github.com/yourusername/puck-savant/internal/models"
	"github.com/yourusername/puck-savant/internal/statengine"
)

// Predictor produces the expected goals for one side of a game.
type Predictor interface {
	PredictTeamScore(req statengine.ScoreRequest) float64
}

// Engine orchestrates backtesting runs
type Engine struct {
	config    Config
	predictor Predictor
	goalies   statengine.GoalieAdjuster
	schedule  statengine.ScheduleAdjuster
	logger    *logrus.Logger
	log       *logger.BacktestLogger
}

// NewEngine creates a new backtesting engine. goalies and schedule may be nil.
func NewEngine(cfg Config, predictor Predictor, goalies statengine.GoalieAdjuster, schedule statengine.ScheduleAdjuster, log *logrus.Logger) (*Engine, error) {
	if predictor == nil {
		return nil, fmt.Errorf("predictor is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.New()
	}

	return &Engine{
		config:    cfg,
		predictor: predictor,
		goalies:   goalies,
		schedule:  schedule,
		logger:    log,
		log:       logger.NewBacktestLogger(log),
	}, nil
}

// Config returns the backtest configuration
func (e *Engine) Config() Config {
	return e.config
}

// Logger returns the engine logger
func (e *Engine) Logger() *logrus.Logger {
	return e.logger
}

// Run replays games using the configured goalie toggle.
func (e *Engine) Run(ctx context.Context, games []models.HistoricalGame) (*Report, error) {
	return e.RunBacktest(ctx, games, e.config.WithGoalie)
}

// RunBacktest predicts every complete game and scores the predictions.
// Incomplete games are skipped. Games whose prediction fails are logged,
// counted and left out of the metrics; the run itself only fails when ctx ends.
func (e *Engine) RunBacktest(ctx context.Context, games []models.HistoricalGame, withGoalie bool) (*Report, error) {
	started := time.Now()
	runID := uuid.New().String()
	e.log.LogRunStarted(runID, len(games), withGoalie)

	var goalies statengine.GoalieAdjuster
	if withGoalie {
		goalies = e.goalies
	}

	outcomes := make([]outcome, len(games))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.config.Workers)
	for i := range games {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = e.replay(games[i], goalies)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		metrics.RecordBacktestRun(withGoalie, "cancelled")
		return nil, fmt.Errorf("backtest %s interrupted: %w", runID, err)
	}

	report := &Report{
		RunID:      runID,
		WithGoalie: withGoalie,
		TotalGames: len(games),
	}
	for i, o := range outcomes {
		switch {
		case o.skipped:
			report.Skipped++
			e.log.LogSkippedGame(runID, games[i].String())
		case o.err != nil:
			report.Errored++
			report.Errors = append(report.Errors, GameError{
				Game:  games[i].String(),
				Date:  games[i].Date,
				Error: o.err.Error(),
			})
			e.log.LogGameError(runID, games[i].Date, games[i].Away, games[i].Home, o.err)
		default:
			report.Records = append(report.Records, o.record)
		}
	}
	report.Processed = len(report.Records)
	if report.TotalGames > 0 {
		report.ErrorRate = float64(report.Errored) / float64(report.TotalGames)
	}
	if report.Processed > 0 {
		report.StartDate = report.Records[0].Date
		report.EndDate = report.Records[0].Date
		for _, r := range report.Records[1:] {
			if r.Date.Before(report.StartDate) {
				report.StartDate = r.Date
			}
			if r.Date.After(report.EndDate) {
				report.EndDate = r.Date
			}
		}
	}

	report.Metrics = CalculateMetrics(report.Records, e.config.BaselineTotal)
	report.Bias = ValidateBias(report.Records)

	if e.config.BootstrapIterations > 0 && report.Processed > 0 {
		ci, err := BootstrapBrier(ctx, report.Records, BootstrapConfig{
			Iterations:      e.config.BootstrapIterations,
			ConfidenceLevel: e.config.ConfidenceLevel,
			Seed:            e.config.Seed,
		})
		if err != nil {
			metrics.RecordBacktestRun(withGoalie, "cancelled")
			return nil, fmt.Errorf("backtest %s interrupted: %w", runID, err)
		}
		report.BrierInterval = &ci
	}

	report.Duration = time.Since(started)
	metrics.RecordBacktestRun(withGoalie, "completed")
	metrics.RecordBacktestGames(report.Processed, report.Skipped, report.Errored)
	metrics.UpdateBrierScore(withGoalie, report.Metrics.BrierScore)
	metrics.ObserveBacktestDuration(report.Duration.Seconds())
	e.log.LogRunCompleted(runID, report.Processed, report.Skipped, report.Errored,
		report.Metrics.BrierScore, report.Metrics.RMSE, report.Duration)

	return report, nil
}

// Compare runs the same games with and without the goalie adjustment.
func (e *Engine) Compare(ctx context.Context, games []models.HistoricalGame) (Comparison, error) {
	with, err := e.RunBacktest(ctx, games, true)
	if err != nil {
		return Comparison{}, err
	}
	without, err := e.RunBacktest(ctx, games, false)
	if err != nil {
		return Comparison{}, err
	}
	return CompareReports(with, without), nil
}

type outcome struct {
	record  Record
	skipped bool
	err     error
}

func (e *Engine) replay(game models.HistoricalGame, goalies statengine.GoalieAdjuster) (out outcome) {
	if !game.Complete() {
		return outcome{skipped: true}
	}

	defer func() {
		if r := recover(); r != nil {
			out = outcome{err: fmt.Errorf("prediction panicked: %v", r)}
		}
	}()

	record, err := e.predict(game, goalies)
	if err != nil {
		return outcome{err: err}
	}
	return outcome{record: record}
}

func (e *Engine) predict(game models.HistoricalGame, goalies statengine.GoalieAdjuster) (Record, error) {
	home := e.predictor.PredictTeamScore(statengine.ScoreRequest{
		Team:           game.Home,
		Opponent:       game.Away,
		IsHome:         true,
		OpposingGoalie: game.AwayGoalie,
		Date:           game.Date,
		Goalies:        goalies,
		Schedule:       e.schedule,
	})
	away := e.predictor.PredictTeamScore(statengine.ScoreRequest{
		Team:           game.Away,
		Opponent:       game.Home,
		IsHome:         false,
		OpposingGoalie: game.HomeGoalie,
		Date:           game.Date,
		Goalies:        goalies,
		Schedule:       e.schedule,
	})
	if !finite(home) || !finite(away) {
		return Record{}, fmt.Errorf("%w: home %v, away %v", models.ErrNonFinitePrediction, home, away)
	}

	homeProb := statengine.PoissonWinProb(home, away)
	return Record{
		Date:           game.Date,
		Away:           game.Away,
		Home:           game.Home,
		PredictedAway:  away,
		PredictedHome:  home,
		PredictedTotal: home + away,
		HomeWinProb:    homeProb,
		AwayWinProb:    1 - homeProb,
		ActualAway:     *game.AwayScore,
		ActualHome:     *game.HomeScore,
	}, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// IsInterrupted reports whether err came from a cancelled or expired context.
func IsInterrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

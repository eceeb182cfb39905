// Package app assembles the models from configuration and a data source.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/yourusername/puck-savant/internal/backtest"
	"github.com/yourusername/puck-savant/internal/config"
	"github.com/yourusername/puck-savant/internal/datasource"
	"github.com/yourusername/puck-savant/internal/ensemble"
	"github.com/yourusername/puck-savant/internal/goalie"
	"github.com/yourusername/puck-savant/internal/models"
	"github.com/yourusername/puck-savant/internal/schedule"
	"github.com/yourusername/puck-savant/internal/service"
	"github.com/yourusername/puck-savant/internal/statengine"
	"github.com/yourusername/puck-savant/internal/teams"
)

// Components are the built models shared by the commands.
type Components struct {
	Config     *config.Config
	Source     datasource.Source
	Lookup     *teams.Table
	Engine     *statengine.Engine
	Goalies    *goalie.Model
	Schedule   *schedule.Model
	Calculator *ensemble.Calculator
	Logger     *logrus.Logger
}

// LoadConfig reads path on top of the defaults and validates the result.
func LoadConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadWithDefaults(path)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Build loads every input from src concurrently and constructs the models.
func Build(ctx context.Context, cfg *config.Config, src datasource.Source, log *logrus.Logger) (*Components, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if src == nil {
		return nil, fmt.Errorf("data source is required")
	}
	if log == nil {
		log = logrus.New()
	}

	var (
		teamRows   []models.TeamSituationalStat
		goalieRows []models.GoalieStat
		schedRows  []models.ScheduleRow
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		teamRows, err = src.TeamStats(gctx)
		return err
	})
	g.Go(func() (err error) {
		goalieRows, err = src.GoalieStats(gctx)
		return err
	})
	g.Go(func() (err error) {
		schedRows, err = src.Schedule(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load inputs from %s: %w", src.Name(), err)
	}
	if len(teamRows) == 0 {
		return nil, fmt.Errorf("no team stats in %s", src.Name())
	}

	params, err := statengine.FromConfig(cfg.Model)
	if err != nil {
		return nil, err
	}
	engine, err := statengine.NewEngine(teamRows, statengine.WithParams(params), statengine.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("failed to build stat engine: %w", err)
	}

	goalieOpts, err := goalie.OptionsFromConfig(cfg.Goalie)
	if err != nil {
		return nil, err
	}
	goalies, err := goalie.NewModel(goalieRows, append(goalieOpts, goalie.WithLogger(log))...)
	if err != nil {
		return nil, fmt.Errorf("failed to build goalie model: %w", err)
	}

	lookup := teams.NewNHLTable()
	sched, err := schedule.FromRows(schedRows, lookup, log)
	if err != nil {
		return nil, fmt.Errorf("failed to build schedule model: %w", err)
	}

	log.WithFields(logrus.Fields{
		"source":   src.Name(),
		"teams":    len(engine.Teams()),
		"goalies":  len(goalieRows),
		"schedule": len(schedRows),
	}).Info("Models built")

	return &Components{
		Config:     cfg,
		Source:     src,
		Lookup:     lookup,
		Engine:     engine,
		Goalies:    goalies,
		Schedule:   sched,
		Calculator: ensemble.NewCalculator(ensemble.ParamsFromConfig(cfg.Ensemble), log),
		Logger:     log,
	}, nil
}

// Predictor wires a GamePredictor over the components. The cache is enabled when
// the configured TTL is positive.
func (c *Components) Predictor(opts ...service.Option) (*service.GamePredictor, error) {
	base := []service.Option{
		service.WithGoalieModel(c.Goalies),
		service.WithScheduleModel(c.Schedule),
		service.WithLookup(c.Lookup),
		service.WithLogger(c.Logger),
	}
	if ttl := c.Config.Cache.TTLSeconds; ttl > 0 {
		base = append(base, service.WithCache(service.NewPredictionCache(time.Duration(ttl)*time.Second)))
	}
	return service.NewGamePredictor(c.Engine, c.Calculator, append(base, opts...)...)
}

// Backtest creates a harness over the stat engine using the backtest config section.
func (c *Components) Backtest() (*backtest.Engine, error) {
	btCfg, err := backtest.FromConfig(&c.Config.Backtest)
	if err != nil {
		return nil, err
	}
	return backtest.NewEngine(btCfg, c.Engine, c.Goalies, c.Schedule, c.Logger)
}

// Check reports whether the models can serve predictions. It satisfies the
// health server's readiness checker.
func (c *Components) Check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.Engine == nil || len(c.Engine.Teams()) == 0 {
		return fmt.Errorf("stat engine has no teams")
	}
	if c.Calculator == nil {
		return fmt.Errorf("ensemble calculator is not configured")
	}
	return nil
}

package backtest

import (
	"fmt"

	"github.com/yourusername/puck-savant/internal/config"
)

// Config holds backtest-specific settings.
type Config struct {
	Workers             int
	WithGoalie          bool
	BootstrapIterations int
	ConfidenceLevel     float64
	Seed                int64
	BaselineTotal       float64
}

// DefaultConfig returns a sequential run against the 6.0 goal baseline.
func DefaultConfig() Config {
	return Config{
		Workers:         1,
		WithGoalie:      true,
		ConfidenceLevel: 0.95,
		Seed:            42,
		BaselineTotal:   6.0,
	}
}

// FromConfig converts app config to backtest config
func FromConfig(cfg *config.BacktestConfig) (Config, error) {
	if cfg == nil {
		return Config{}, fmt.Errorf("backtest config is required")
	}

	bt := Config{
		Workers:             cfg.Workers,
		WithGoalie:          cfg.WithGoalie,
		BootstrapIterations: cfg.BootstrapIterations,
		ConfidenceLevel:     0.95,
		Seed:                cfg.RandomSeed,
		BaselineTotal:       cfg.BaselineTotal,
	}

	return bt, bt.Validate()
}

// Validate validates backtest config parameters
func (c Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1")
	}
	if c.BootstrapIterations < 0 {
		return fmt.Errorf("bootstrap iterations cannot be negative")
	}
	if c.ConfidenceLevel <= 0 || c.ConfidenceLevel >= 1 {
		return fmt.Errorf("confidence level must be between 0 and 1")
	}
	if c.BaselineTotal <= 0 {
		return fmt.Errorf("baseline total must be positive")
	}
	return nil
}

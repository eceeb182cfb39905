// Package config provides configuration management for the Puck Savant application.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	defaultConfigPath = "config/config.yaml"
	envPrefix         = "PUCK_SAVANT"
)

// Load reads and parses the configuration from file and environment variables
// It expands environment variable placeholders in the YAML file (${VAR_NAME})
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = defaultConfigPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v := newViper()
	if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// LoadWithDefaults loads configuration on top of the tuned defaults.
// A missing file is not an error; defaults and environment variables still apply.
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = defaultConfigPath
	}

	v := newViper()
	setDefaults(v, Default())

	if data, err := os.ReadFile(configPath); err == nil {
		if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("app.name", d.App.Name)
	v.SetDefault("app.environment", d.App.Environment)
	v.SetDefault("app.log_level", d.App.LogLevel)

	v.SetDefault("model.home_ice_factor", d.Model.HomeIceFactor)
	v.SetDefault("model.offense_weight", d.Model.OffenseWeight)
	v.SetDefault("model.defense_weight", d.Model.DefenseWeight)
	breakpoints := make([]map[string]interface{}, 0, len(d.Model.Regression))
	for _, bp := range d.Model.Regression {
		breakpoints = append(breakpoints, map[string]interface{}{"min_games": bp.MinGames, "weight": bp.Weight})
	}
	v.SetDefault("model.regression", breakpoints)
	v.SetDefault("model.pdo.upper", d.Model.PDO.Upper)
	v.SetDefault("model.pdo.lower", d.Model.PDO.Lower)
	v.SetDefault("model.pdo.max_pull", d.Model.PDO.MaxPull)
	v.SetDefault("model.pdo.pull_per_point", d.Model.PDO.PullPerPoint)
	v.SetDefault("model.shooting.hot_threshold", d.Model.Shooting.HotThreshold)
	v.SetDefault("model.shooting.cold_threshold", d.Model.Shooting.ColdThreshold)
	v.SetDefault("model.shooting.hot_factor", d.Model.Shooting.HotFactor)
	v.SetDefault("model.shooting.cold_factor", d.Model.Shooting.ColdFactor)
	v.SetDefault("model.situational.strategy", d.Model.Situational.Strategy)
	v.SetDefault("model.situational.even_strength", d.Model.Situational.EvenStrength)
	v.SetDefault("model.situational.power_play", d.Model.Situational.PowerPlay)
	v.SetDefault("model.situational.penalty_kill", d.Model.Situational.PenaltyKill)
	v.SetDefault("model.situational.min_special_team", d.Model.Situational.MinSpecialTeam)
	v.SetDefault("model.situational.max_special_team", d.Model.Situational.MaxSpecialTeam)

	v.SetDefault("goalie.situation", d.Goalie.Situation)
	v.SetDefault("goalie.threshold", d.Goalie.Threshold)
	v.SetDefault("goalie.suppression", d.Goalie.Suppression)
	v.SetDefault("goalie.inflation", d.Goalie.Inflation)

	v.SetDefault("ensemble.market_model_weight", d.Ensemble.MarketModelWeight)
	v.SetDefault("ensemble.external_model_weight", d.Ensemble.ExternalModelWeight)
	v.SetDefault("ensemble.kelly_fraction", d.Ensemble.KellyFraction)
	v.SetDefault("ensemble.max_kelly", d.Ensemble.MaxKelly)
	v.SetDefault("ensemble.min_ev_percent", d.Ensemble.MinEVPercent)
	v.SetDefault("ensemble.max_market_disagreement", d.Ensemble.MaxMarketDisagreement)
	v.SetDefault("ensemble.bankroll", d.Ensemble.Bankroll)
	v.SetDefault("ensemble.grades.a_plus", d.Ensemble.Grades.APlus)
	v.SetDefault("ensemble.grades.a", d.Ensemble.Grades.A)
	v.SetDefault("ensemble.grades.b_plus", d.Ensemble.Grades.BPlus)
	v.SetDefault("ensemble.grades.b", d.Ensemble.Grades.B)

	v.SetDefault("backtest.workers", d.Backtest.Workers)
	v.SetDefault("backtest.with_goalie", d.Backtest.WithGoalie)
	v.SetDefault("backtest.bootstrap_iterations", d.Backtest.BootstrapIterations)
	v.SetDefault("backtest.random_seed", d.Backtest.RandomSeed)
	v.SetDefault("backtest.baseline_total", d.Backtest.BaselineTotal)

	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.address", d.Metrics.Address)
	v.SetDefault("cache.ttl_seconds", d.Cache.TTLSeconds)
	v.SetDefault("data.source", d.Data.Source)
	v.SetDefault("data.path", d.Data.Path)
}

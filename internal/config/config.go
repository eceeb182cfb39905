// Package config provides configuration management for the Puck Savant application.
package config

// Config represents the complete application configuration
type Config struct {
	App      AppConfig      `mapstructure:"app" validate:"required"`
	Model    ModelConfig    `mapstructure:"model" validate:"required"`
	Goalie   GoalieConfig   `mapstructure:"goalie" validate:"required"`
	Ensemble EnsembleConfig `mapstructure:"ensemble" validate:"required"`
	Backtest BacktestConfig `mapstructure:"backtest" validate:"required"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Data     DataConfig     `mapstructure:"data"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// ModelConfig holds the hand-tuned constants of the expected-goals model.
type ModelConfig struct {
	HomeIceFactor float64                `mapstructure:"home_ice_factor" validate:"gte=1,lte=1.2"`
	OffenseWeight float64                `mapstructure:"offense_weight" validate:"gte=0,lte=1"`
	DefenseWeight float64                `mapstructure:"defense_weight" validate:"gte=0,lte=1"`
	Regression    []RegressionBreakpoint `mapstructure:"regression" validate:"required,min=1,dive"`
	PDO           PDOConfig              `mapstructure:"pdo"`
	Shooting      ShootingConfig         `mapstructure:"shooting"`
	Situational   SituationalConfig      `mapstructure:"situational"`
}

// RegressionBreakpoint applies Weight to every team with at least MinGames played.
type RegressionBreakpoint struct {
	MinGames int     `mapstructure:"min_games" validate:"gte=0"`
	Weight   float64 `mapstructure:"weight" validate:"gte=0,lte=1"`
}

// PDOConfig bounds the luck correction.
type PDOConfig struct {
	Upper        float64 `mapstructure:"upper" validate:"gt=100"`
	Lower        float64 `mapstructure:"lower" validate:"gt=0,lt=100"`
	MaxPull      float64 `mapstructure:"max_pull" validate:"gte=0,lte=0.2"`
	PullPerPoint float64 `mapstructure:"pull_per_point" validate:"gte=0"`
}

// ShootingConfig defines the shooting-talent step.
type ShootingConfig struct {
	HotThreshold  float64 `mapstructure:"hot_threshold" validate:"gt=1"`
	ColdThreshold float64 `mapstructure:"cold_threshold" validate:"gt=0,lt=1"`
	HotFactor     float64 `mapstructure:"hot_factor" validate:"gte=1"`
	ColdFactor    float64 `mapstructure:"cold_factor" validate:"gt=0,lte=1"`
}

// SituationalConfig selects how 60 minutes are split between game states.
type SituationalConfig struct {
	Strategy       string  `mapstructure:"strategy" validate:"required,situational"`
	EvenStrength   float64 `mapstructure:"even_strength" validate:"gt=0,lte=1"`
	PowerPlay      float64 `mapstructure:"power_play" validate:"gte=0,lte=1"`
	PenaltyKill    float64 `mapstructure:"penalty_kill" validate:"gte=0,lte=1"`
	MinSpecialTeam float64 `mapstructure:"min_special_team" validate:"gte=0,lte=0.5"`
	MaxSpecialTeam float64 `mapstructure:"max_special_team" validate:"gte=0,lte=0.5"`
}

// GoalieConfig configures the goaltender step adjustment.
type GoalieConfig struct {
	Situation   string  `mapstructure:"situation" validate:"required,situation"`
	Threshold   float64 `mapstructure:"threshold" validate:"gt=0"`
	Suppression float64 `mapstructure:"suppression" validate:"gt=0,lte=1"`
	Inflation   float64 `mapstructure:"inflation" validate:"gte=1"`
}

// EnsembleConfig holds blending weights, grading and stake sizing.
type EnsembleConfig struct {
	MarketModelWeight     float64     `mapstructure:"market_model_weight" validate:"gte=0,lte=1"`
	ExternalModelWeight   float64     `mapstructure:"external_model_weight" validate:"gte=0,lte=1"`
	KellyFraction         float64     `mapstructure:"kelly_fraction" validate:"gt=0,lte=1"`
	MaxKelly              float64     `mapstructure:"max_kelly" validate:"gt=0,lte=1"`
	MinEVPercent          float64     `mapstructure:"min_ev_percent" validate:"gte=0"`
	MaxMarketDisagreement float64     `mapstructure:"max_market_disagreement" validate:"gt=0,lte=1"`
	Bankroll              float64     `mapstructure:"bankroll" validate:"gte=0"`
	Grades                GradeConfig `mapstructure:"grades"`
}

// GradeConfig holds the minimum EV percent for each edge grade above C.
type GradeConfig struct {
	APlus float64 `mapstructure:"a_plus" validate:"gt=0"`
	A     float64 `mapstructure:"a" validate:"gt=0"`
	BPlus float64 `mapstructure:"b_plus" validate:"gt=0"`
	B     float64 `mapstructure:"b" validate:"gt=0"`
}

// BacktestConfig represents backtesting configuration
type BacktestConfig struct {
	Workers             int     `mapstructure:"workers" validate:"gte=1,lte=64"`
	WithGoalie          bool    `mapstructure:"with_goalie"`
	BootstrapIterations int     `mapstructure:"bootstrap_iterations" validate:"gte=0"`
	RandomSeed          int64   `mapstructure:"random_seed"`
	BaselineTotal       float64 `mapstructure:"baseline_total" validate:"gt=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}

// CacheConfig configures the prediction cache.
type CacheConfig struct {
	TTLSeconds int `mapstructure:"ttl_seconds" validate:"gte=0"`
}

// DataConfig selects where model inputs are read from.
type DataConfig struct {
	Source string `mapstructure:"source" validate:"omitempty,oneof=file"`
	Path   string `mapstructure:"path"`
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Default returns the tuned constants the model was calibrated with.
func Default() *Config {
	return &Config{
		App: AppConfig{Name: "puck-savant", Environment: "development", LogLevel: "info"},
		Model: ModelConfig{
			HomeIceFactor: 1.05,
			OffenseWeight: 0.40,
			DefenseWeight: 0.60,
			Regression: []RegressionBreakpoint{
				{MinGames: 40, Weight: 0.10},
				{MinGames: 20, Weight: 0.20},
				{MinGames: 10, Weight: 0.30},
				{MinGames: 5, Weight: 0.40},
				{MinGames: 0, Weight: 0.50},
			},
			PDO:      PDOConfig{Upper: 106, Lower: 94, MaxPull: 0.02, PullPerPoint: 0.01},
			Shooting: ShootingConfig{HotThreshold: 1.10, ColdThreshold: 0.90, HotFactor: 1.03, ColdFactor: 0.97},
			Situational: SituationalConfig{
				Strategy:       "static",
				EvenStrength:   0.77,
				PowerPlay:      0.12,
				PenaltyKill:    0.11,
				MinSpecialTeam: 0.05,
				MaxSpecialTeam: 0.20,
			},
		},
		Goalie: GoalieConfig{Situation: "5v5", Threshold: 10, Suppression: 0.85, Inflation: 1.15},
		Ensemble: EnsembleConfig{
			MarketModelWeight:     0.65,
			ExternalModelWeight:   0.30,
			KellyFraction:         0.25,
			MaxKelly:              0.05,
			MinEVPercent:          1.5,
			MaxMarketDisagreement: 0.15,
			Bankroll:              1000,
			Grades:                GradeConfig{APlus: 5.0, A: 3.5, BPlus: 2.5, B: 1.5},
		},
		Backtest: BacktestConfig{Workers: 1, WithGoalie: true, BootstrapIterations: 0, RandomSeed: 42, BaselineTotal: 6.0},
		Metrics:  MetricsConfig{Enabled: false, Address: ":9090"},
		Cache:    CacheConfig{TTLSeconds: 300},
		Data:     DataConfig{Source: "file", Path: "data/dataset.json"},
	}
}

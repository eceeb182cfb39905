// Package config provides configuration management for the Puck Savant application.
package config

import (
	"os"
	"strings"
	"testing"
)

const (
	validConfigPath       = "testdata/valid_config.yaml"
	partialConfigPath     = "testdata/partial_config.yaml"
	invalidConfigPath     = "testdata/invalid_config.yaml"
	nonexistentConfigPath = "testdata/nonexistent_config.yaml"
	expectedNoErrorMsg    = "expected no error, got %v"
	expectedNonNilConfig  = "expected non-nil config"
	testBankrollVar       = "TEST_BANKROLL"
)

// TestLoadConfigSuccess tests loading a valid configuration file
func TestLoadConfigSuccess(t *testing.T) {
	os.Setenv(testBankrollVar, "2500")
	defer os.Unsetenv(testBankrollVar)

	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}
	if cfg == nil {
		t.Fatal(expectedNonNilConfig)
	}

	if cfg.App.Name != "puck-savant" {
		t.Errorf("expected app name 'puck-savant', got '%s'", cfg.App.Name)
	}
	if cfg.Model.Situational.Strategy != "dynamic" {
		t.Errorf("expected dynamic strategy, got '%s'", cfg.Model.Situational.Strategy)
	}
	if len(cfg.Model.Regression) != 5 {
		t.Fatalf("expected 5 regression breakpoints, got %d", len(cfg.Model.Regression))
	}
	if cfg.Model.Regression[0].MinGames != 40 || cfg.Model.Regression[0].Weight != 0.10 {
		t.Errorf("unexpected first breakpoint %+v", cfg.Model.Regression[0])
	}
	if cfg.Ensemble.Bankroll != 2500 {
		t.Errorf("expected bankroll expanded from environment to be 2500, got %v", cfg.Ensemble.Bankroll)
	}
	if cfg.Ensemble.Grades.APlus != 6.0 || cfg.Ensemble.Grades.B != 1.5 {
		t.Errorf("unexpected grade thresholds %+v", cfg.Ensemble.Grades)
	}
	if cfg.Backtest.Workers != 4 {
		t.Errorf("expected 4 workers, got %d", cfg.Backtest.Workers)
	}
	if cfg.Data.Path != "testdata/dataset.json" {
		t.Errorf("expected dataset path from file, got '%s'", cfg.Data.Path)
	}

	if err := Validate(cfg); err != nil {
		t.Errorf(expectedNoErrorMsg, err)
	}
}

// TestLoadConfigFileNotFound tests handling of missing configuration file
func TestLoadConfigFileNotFound(t *testing.T) {
	_, err := Load(nonexistentConfigPath)
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
	if !strings.Contains(err.Error(), "config file not found") {
		t.Errorf("unexpected error message: %v", err)
	}
}

// TestLoadWithDefaultsMissingFile tests that defaults alone validate
func TestLoadWithDefaultsMissingFile(t *testing.T) {
	cfg, err := LoadWithDefaults(nonexistentConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	if cfg.Model.HomeIceFactor != 1.05 {
		t.Errorf("expected default home ice factor 1.05, got %v", cfg.Model.HomeIceFactor)
	}
	if cfg.Ensemble.MarketModelWeight != 0.65 {
		t.Errorf("expected default market model weight 0.65, got %v", cfg.Ensemble.MarketModelWeight)
	}
	if len(cfg.Model.Regression) != 5 {
		t.Fatalf("expected default regression breakpoints, got %d", len(cfg.Model.Regression))
	}
	if cfg.Data.Source != "file" {
		t.Errorf("expected default data source 'file', got '%s'", cfg.Data.Source)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf(expectedNoErrorMsg, err)
	}
}

// TestLoadWithDefaultsPartialFile tests that file values override defaults
func TestLoadWithDefaultsPartialFile(t *testing.T) {
	cfg, err := LoadWithDefaults(partialConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	if cfg.App.Environment != "staging" {
		t.Errorf("expected staging, got %s", cfg.App.Environment)
	}
	if cfg.Backtest.Workers != 2 {
		t.Errorf("expected 2 workers, got %d", cfg.Backtest.Workers)
	}
	if cfg.Goalie.Threshold != 10 {
		t.Errorf("expected default goalie threshold 10, got %v", cfg.Goalie.Threshold)
	}
	if cfg.Ensemble.Grades != (GradeConfig{APlus: 5.0, A: 3.5, BPlus: 2.5, B: 1.5}) {
		t.Errorf("expected default grade thresholds, got %+v", cfg.Ensemble.Grades)
	}
}

// TestEnvironmentOverride tests that prefixed environment variables override file values
func TestEnvironmentOverride(t *testing.T) {
	os.Setenv("PUCK_SAVANT_APP_LOG_LEVEL", "error")
	defer os.Unsetenv("PUCK_SAVANT_APP_LOG_LEVEL")

	cfg, err := LoadWithDefaults(partialConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}
	if cfg.App.LogLevel != "error" {
		t.Errorf("expected log level from environment, got %s", cfg.App.LogLevel)
	}
}

// TestValidateInvalidConfig tests that struct tag failures are reported per field
func TestValidateInvalidConfig(t *testing.T) {
	cfg, err := Load(invalidConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	err = Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"Environment", "LogLevel"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected error to mention %s, got %v", want, err)
		}
	}
}

// TestValidateCrossField tests the relationships between tuned constants
func TestValidateCrossField(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "blend weights must sum to one",
			mutate:  func(c *Config) { c.Model.OffenseWeight = 0.5 },
			wantErr: "sum to 1",
		},
		{
			name: "breakpoints must descend",
			mutate: func(c *Config) {
				c.Model.Regression[1].MinGames = 50
			},
			wantErr: "strictly descending",
		},
		{
			name: "weights must not increase with games",
			mutate: func(c *Config) {
				c.Model.Regression[0].Weight = 0.35
			},
			wantErr: "must not increase",
		},
		{
			name: "last breakpoint covers zero games",
			mutate: func(c *Config) {
				c.Model.Regression = c.Model.Regression[:4]
			},
			wantErr: "min_games 0",
		},
		{
			name:    "pdo lower bound below 100",
			mutate:  func(c *Config) { c.Model.PDO.Lower = 102 },
			wantErr: "numeric constraint",
		},
		{
			name:    "static split sums to one",
			mutate:  func(c *Config) { c.Model.Situational.PowerPlay = 0.2 },
			wantErr: "static situational split",
		},
		{
			name:    "grade thresholds descend",
			mutate:  func(c *Config) { c.Ensemble.Grades.BPlus = 4.0 },
			wantErr: "strictly descend from a_plus",
		},
		{
			name:    "grade thresholds are distinct",
			mutate:  func(c *Config) { c.Ensemble.Grades.A = c.Ensemble.Grades.APlus },
			wantErr: "strictly descend from a_plus",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := Validate(cfg)
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

// TestDefaultIsValid tests that the shipped constants pass validation
func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := Validate(cfg); err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}
	if !cfg.IsDevelopment() || cfg.IsProduction() {
		t.Error("expected default environment to be development")
	}
}

// Package config provides configuration management for the Puck Savant application.
package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/yourusername/puck-savant/internal/models"
)

const weightTolerance = 1e-6

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() *CustomValidator {
	v := validator.New()

	_ = v.RegisterValidation("environment", validateEnvironment)
	_ = v.RegisterValidation("loglevel", validateLogLevel)
	_ = v.RegisterValidation("situational", validateSituationalStrategy)
	_ = v.RegisterValidation("situation", validateSituation)

	return &CustomValidator{validator: v}
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	return NewValidator().Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	if err := cv.validator.Struct(cfg); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	return validateCrossField(cfg)
}

func validateEnvironment(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

func validateLogLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

func validateSituationalStrategy(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "static", "dynamic":
		return true
	default:
		return false
	}
}

func validateSituation(fl validator.FieldLevel) bool {
	_, err := models.ParseSituation(fl.Field().String())
	return err == nil
}

// validateCrossField performs cross-field validations
func validateCrossField(cfg *Config) error {
	m := cfg.Model

	if math.Abs(m.OffenseWeight+m.DefenseWeight-1) > weightTolerance {
		return fmt.Errorf("offense_weight and defense_weight must sum to 1, got %.3f", m.OffenseWeight+m.DefenseWeight)
	}

	for i := 1; i < len(m.Regression); i++ {
		prev, cur := m.Regression[i-1], m.Regression[i]
		if cur.MinGames >= prev.MinGames {
			return fmt.Errorf("regression breakpoints must be listed by strictly descending min_games")
		}
		if cur.Weight < prev.Weight {
			return fmt.Errorf("regression weight must not increase with games played (min_games %d)", prev.MinGames)
		}
	}
	if last := m.Regression[len(m.Regression)-1]; last.MinGames != 0 {
		return fmt.Errorf("regression breakpoints must end with min_games 0")
	}

	if m.PDO.Lower >= m.PDO.Upper {
		return fmt.Errorf("pdo lower bound must be below upper bound")
	}

	s := m.Situational
	if s.Strategy == "static" && math.Abs(s.EvenStrength+s.PowerPlay+s.PenaltyKill-1) > weightTolerance {
		return fmt.Errorf("static situational split must sum to 1")
	}
	if s.MinSpecialTeam > s.MaxSpecialTeam {
		return fmt.Errorf("min_special_team cannot exceed max_special_team")
	}

	g := cfg.Ensemble.Grades
	if !(g.APlus > g.A && g.A > g.BPlus && g.BPlus > g.B) {
		return fmt.Errorf("grade thresholds must strictly descend from a_plus to b")
	}

	return nil
}

// formatValidationErrors formats validation errors into a readable string
func formatValidationErrors(validationErrors validator.ValidationErrors) error {
	var b strings.Builder
	for _, fieldError := range validationErrors {
		field := fieldError.StructField()
		tag := fieldError.Tag()

		switch tag {
		case "required":
			fmt.Fprintf(&b, "- Field '%s' is required\n", field)
		case "min", "max":
			fmt.Fprintf(&b, "- Field '%s' validation failed: %s constraint violated\n", field, tag)
		case "gt", "gte", "lt", "lte":
			fmt.Fprintf(&b, "- Field '%s' validation failed: numeric constraint %s violated\n", field, tag)
		case "environment":
			fmt.Fprintf(&b, "- Field '%s' must be one of: development, staging, production\n", field)
		case "loglevel":
			fmt.Fprintf(&b, "- Field '%s' must be one of: debug, info, warn, error\n", field)
		case "situational":
			fmt.Fprintf(&b, "- Field '%s' must be one of: static, dynamic\n", field)
		case "situation":
			fmt.Fprintf(&b, "- Field '%s' must be a known situation, got '%v'\n", field, fieldError.Value())
		default:
			fmt.Fprintf(&b, "- Field '%s' failed validation: %s\n", field, tag)
		}
	}
	return fmt.Errorf("configuration validation failed:\n%s", b.String())
}

package statengine

import (
	"fmt"

	"github.com/yourusername/puck-savant/internal/config"
)

// Params are the tuned constants of the expected-goals model.
type Params struct {
	HomeIceFactor   float64
	OffenseWeight   float64
	DefenseWeight   float64
	Regression      RegressionSchedule
	PDOUpper        float64
	PDOLower        float64
	PDOMaxPull      float64
	PDOPullPerPoint float64
	HotShooting     float64
	ColdShooting    float64
	HotFactor       float64
	ColdFactor      float64
	Weighting       SituationalWeighting
}

// DefaultParams returns the constants the model was calibrated with.
func DefaultParams() Params {
	return Params{
		HomeIceFactor:   1.05,
		OffenseWeight:   0.40,
		DefenseWeight:   0.60,
		Regression:      DefaultRegression,
		PDOUpper:        106,
		PDOLower:        94,
		PDOMaxPull:      0.02,
		PDOPullPerPoint: 0.01,
		HotShooting:     1.10,
		ColdShooting:    0.90,
		HotFactor:       1.03,
		ColdFactor:      0.97,
		Weighting:       NewStaticWeighting(StaticSplit),
	}
}

// FromConfig converts the model section of the application config.
func FromConfig(cfg config.ModelConfig) (Params, error) {
	bps := make([]Breakpoint, 0, len(cfg.Regression))
	for _, bp := range cfg.Regression {
		bps = append(bps, Breakpoint{MinGames: bp.MinGames, Weight: bp.Weight})
	}

	split := Split{
		EvenStrength: cfg.Situational.EvenStrength,
		PowerPlay:    cfg.Situational.PowerPlay,
		PenaltyKill:  cfg.Situational.PenaltyKill,
	}
	weighting, err := NewWeighting(cfg.Situational.Strategy, split, cfg.Situational.MinSpecialTeam, cfg.Situational.MaxSpecialTeam)
	if err != nil {
		return Params{}, fmt.Errorf("failed to build situational weighting: %w", err)
	}

	return Params{
		HomeIceFactor:   cfg.HomeIceFactor,
		OffenseWeight:   cfg.OffenseWeight,
		DefenseWeight:   cfg.DefenseWeight,
		Regression:      NewRegressionSchedule(bps),
		PDOUpper:        cfg.PDO.Upper,
		PDOLower:        cfg.PDO.Lower,
		PDOMaxPull:      cfg.PDO.MaxPull,
		PDOPullPerPoint: cfg.PDO.PullPerPoint,
		HotShooting:     cfg.Shooting.HotThreshold,
		ColdShooting:    cfg.Shooting.ColdThreshold,
		HotFactor:       cfg.Shooting.HotFactor,
		ColdFactor:      cfg.Shooting.ColdFactor,
		Weighting:       weighting,
	}, nil
}

// correctPDO nudges a rate toward neutral luck, only outside the [PDOLower, PDOUpper] band.
func (p Params) correctPDO(rate, pdo float64) float64 {
	switch {
	case pdo > p.PDOUpper:
		return rate * (1 - min(p.PDOMaxPull, (pdo-p.PDOUpper)*p.PDOPullPerPoint))
	case pdo < p.PDOLower:
		return rate * (1 + min(p.PDOMaxPull, (p.PDOLower-pdo)*p.PDOPullPerPoint))
	default:
		return rate
	}
}

// shootingFactor is the three-step shooting-talent multiplier.
func (p Params) shootingFactor(efficiency float64) float64 {
	switch {
	case efficiency > p.HotShooting:
		return p.HotFactor
	case efficiency < p.ColdShooting:
		return p.ColdFactor
	default:
		return 1.0
	}
}

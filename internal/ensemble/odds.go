package ensemble

import (
	"fmt"
	"math"

	"github.com/yourusername/puck-savant/internal/models"
)

func validOdds(american float64) bool {
	return !math.IsNaN(american) && (american >= 100 || american <= -100)
}

// ImpliedProbability converts American odds to the probability the price implies.
func ImpliedProbability(american float64) (float64, error) {
	if !validOdds(american) {
		return 0, fmt.Errorf("%w: %v", models.ErrInvalidOdds, american)
	}
	if american > 0 {
		return 100 / (american + 100), nil
	}
	return -american / (-american + 100), nil
}

// DecimalOdds converts American odds to the total return per unit staked.
func DecimalOdds(american float64) (float64, error) {
	if !validOdds(american) {
		return 0, fmt.Errorf("%w: %v", models.ErrInvalidOdds, american)
	}
	if american > 0 {
		return 1 + american/100, nil
	}
	return 1 + 100/-american, nil
}

// ProbabilityToAmerican returns the fair American price for p. The result is not rounded,
// so converting back recovers p.
func ProbabilityToAmerican(p float64) (float64, error) {
	if !(p > 0 && p < 1) {
		return 0, fmt.Errorf("%w: %v", models.ErrInvalidProbability, p)
	}
	if p >= 0.5 {
		return -(p / (1 - p)) * 100, nil
	}
	return (1 - p) / p * 100, nil
}

// RemoveVig normalises a two-way market's implied probabilities so they sum to one.
func RemoveVig(a, b float64) (float64, float64) {
	total := a + b
	if total <= 0 {
		return 0.5, 0.5
	}
	return a / total, b / total
}

// Overround is the bookmaker margin of a two-way market, as a fraction.
func Overround(a, b float64) float64 {
	return a + b - 1
}

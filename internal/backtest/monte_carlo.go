package backtest

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// BootstrapConfig configures resampling of the Brier score.
type BootstrapConfig struct {
	Iterations      int
	ConfidenceLevel float64
	Seed            int64
}

// ConfidenceInterval summarises the bootstrap distribution of the Brier score.
type ConfidenceInterval struct {
	Iterations           int     `json:"iterations"`
	Level                float64 `json:"level"`
	Mean                 float64 `json:"mean"`
	StdDev               float64 `json:"std_dev"`
	Lower                float64 `json:"lower"`
	Upper                float64 `json:"upper"`
	ProbabilityBeatsCoin float64 `json:"probability_beats_coin_flip"`
}

// String renders the interval as "95% CI [0.2100, 0.2300]".
func (c ConfidenceInterval) String() string {
	return fmt.Sprintf("%s CI [%.4f, %.4f]", formatPercent(c.Level), c.Lower, c.Upper)
}

// BootstrapBrier resamples records with replacement and reports the spread of
// the Brier score. The same seed always yields the same interval.
func BootstrapBrier(ctx context.Context, records []Record, cfg BootstrapConfig) (ConfidenceInterval, error) {
	if len(records) == 0 {
		return ConfidenceInterval{}, fmt.Errorf("no records to resample")
	}
	if cfg.Iterations <= 0 {
		cfg.Iterations = 1000
	}
	if cfg.ConfidenceLevel <= 0 || cfg.ConfidenceLevel >= 1 {
		cfg.ConfidenceLevel = 0.95
	}

	squared := make([]float64, len(records))
	for i, r := range records {
		d := r.HomeWinProb - boolToFloat(r.HomeWon())
		squared[i] = d * d
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	distribution := make([]float64, cfg.Iterations)
	for i := 0; i < cfg.Iterations; i++ {
		if i%100 == 0 {
			if err := ctx.Err(); err != nil {
				return ConfidenceInterval{}, err
			}
		}
		var sum float64
		for range squared {
			sum += squared[rng.Intn(len(squared))]
		}
		distribution[i] = sum / float64(len(squared))
	}

	mean, std := meanStd(distribution)
	tail := (1 - cfg.ConfidenceLevel) / 2

	return ConfidenceInterval{
		Iterations:           cfg.Iterations,
		Level:                cfg.ConfidenceLevel,
		Mean:                 mean,
		StdDev:               std,
		Lower:                percentile(distribution, tail),
		Upper:                percentile(distribution, 1-tail),
		ProbabilityBeatsCoin: probabilityBelow(distribution, NoSkillBrier),
	}, nil
}

func meanStd(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	variance := 0.0
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(len(values))
	return mean, math.Sqrt(variance)
}

func percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64{}, values...)
	sort.Float64s(sorted)
	idx := int(math.Floor(p * float64(len(sorted)-1)))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

func probabilityBelow(values []float64, threshold float64) float64 {
	if len(values) == 0 {
		return 0
	}
	count := 0
	for _, v := range values {
		if v < threshold {
			count++
		}
	}
	return float64(count) / float64(len(values))
}

func formatPercent(level float64) string {
	return fmt.Sprintf("%.0f%%", level*100)
}

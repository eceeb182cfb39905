// Package ensemble blends model probabilities with market and third-party signals,
// grades the resulting edge and sizes a stake.
package ensemble

import (
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/puck-savant/internal/config"
	"github.com/yourusername/puck-savant/internal/logger"
	"github.com/yourusername/puck-savant/internal/metrics"
	"github.com/yourusername/puck-savant/internal/models"
)

// GradeThresholds are the minimum evPercent for each grade above C.
type GradeThresholds struct {
	APlus float64
	A     float64
	BPlus float64
	B     float64
}

// DefaultGradeThresholds returns the production grade cut-offs.
func DefaultGradeThresholds() GradeThresholds {
	return GradeThresholds{APlus: 5.0, A: 3.5, BPlus: 2.5, B: 1.5}
}

// Grade steps evPercent onto the A+ to C scale.
func (g GradeThresholds) Grade(evPercent float64) models.Grade {
	switch {
	case evPercent >= g.APlus:
		return models.GradeAPlus
	case evPercent >= g.A:
		return models.GradeA
	case evPercent >= g.BPlus:
		return models.GradeBPlus
	case evPercent >= g.B:
		return models.GradeB
	default:
		return models.GradeC
	}
}

// Params are the blending weights and sizing limits.
type Params struct {
	MarketModelWeight     float64
	ExternalModelWeight   float64
	KellyFraction         float64
	MaxKelly              float64
	MinEVPercent          float64
	MaxMarketDisagreement float64
	Bankroll              decimal.Decimal
	Grades                GradeThresholds
}

// DefaultParams returns the production weights.
func DefaultParams() Params {
	return Params{
		MarketModelWeight:     0.65,
		ExternalModelWeight:   0.30,
		KellyFraction:         0.25,
		MaxKelly:              0.05,
		MinEVPercent:          DefaultGradeThresholds().B,
		MaxMarketDisagreement: 0.15,
		Bankroll:              decimal.NewFromInt(1000),
		Grades:                DefaultGradeThresholds(),
	}
}

// ParamsFromConfig converts the ensemble config section.
func ParamsFromConfig(cfg config.EnsembleConfig) Params {
	return Params{
		MarketModelWeight:     cfg.MarketModelWeight,
		ExternalModelWeight:   cfg.ExternalModelWeight,
		KellyFraction:         cfg.KellyFraction,
		MaxKelly:              cfg.MaxKelly,
		MinEVPercent:          cfg.MinEVPercent,
		MaxMarketDisagreement: cfg.MaxMarketDisagreement,
		Bankroll:              decimal.NewFromFloat(cfg.Bankroll),
		Grades: GradeThresholds{
			APlus: cfg.Grades.APlus,
			A:     cfg.Grades.A,
			BPlus: cfg.Grades.BPlus,
			B:     cfg.Grades.B,
		},
	}
}

// Calculator grades and sizes candidates. It holds no mutable state.
type Calculator struct {
	params Params
	log    *logger.EdgeLogger
}

// NewCalculator creates a calculator; a nil logger discards output.
// Unset grade thresholds fall back to the defaults.
func NewCalculator(params Params, log *logrus.Logger) *Calculator {
	if log == nil {
		log = logger.Discard()
	}
	if params.Grades == (GradeThresholds{}) {
		params.Grades = DefaultGradeThresholds()
	}
	return &Calculator{params: params, log: logger.NewEdgeLogger(log)}
}

// MarketEnsemble blends the model with the market-implied probability.
func (c *Calculator) MarketEnsemble(modelProb, marketProb float64) float64 {
	w := c.params.MarketModelWeight
	return clampUnit(clampUnit(modelProb)*w + clampUnit(marketProb)*(1-w))
}

// Calibrate blends the model with a third-party probability and reports how closely they agree.
func (c *Calculator) Calibrate(modelProb, externalProb float64) (float64, models.Confidence) {
	w := c.params.ExternalModelWeight
	blended := clampUnit(clampUnit(modelProb)*w + clampUnit(externalProb)*(1-w))
	return blended, ConfidenceLevel(modelProb, externalProb)
}

// CalculateEV is the expected profit of staking stake at the given American odds.
func (c *Calculator) CalculateEV(prob, american, stake float64) (float64, error) {
	dec, err := DecimalOdds(american)
	if err != nil {
		return 0, err
	}
	return clampUnit(prob)*stake*dec - stake, nil
}

// KellyStake is the fraction of bankroll to stake: quarter Kelly, capped at MaxKelly.
// Invalid odds or no edge yield 0.
func (c *Calculator) KellyStake(prob, american float64) float64 {
	dec, err := DecimalOdds(american)
	if err != nil || math.IsNaN(prob) {
		return 0
	}
	p := clampUnit(prob)
	b := dec - 1
	full := (b*p - (1 - p)) / b
	return math.Max(0, math.Min(c.params.MaxKelly, full*c.params.KellyFraction))
}

// QualityGrade steps evPercent onto the A+ to C scale using the configured thresholds.
func (c *Calculator) QualityGrade(evPercent float64) models.Grade {
	return c.params.Grades.Grade(evPercent)
}

// Evaluate blends, grades and sizes one candidate.
func (c *Calculator) Evaluate(cand models.Candidate) (models.Opportunity, error) {
	american := float64(cand.Odds)
	implied, err := ImpliedProbability(american)
	if err != nil {
		return models.Opportunity{}, fmt.Errorf("candidate %s %s: %w", cand.Pick, cand.Market, err)
	}

	opp := models.Opportunity{
		ID:         uuid.New(),
		Candidate:  cand,
		MarketProb: implied,
	}
	if cand.OpposingOdds != 0 {
		other, err := ImpliedProbability(float64(cand.OpposingOdds))
		if err != nil {
			return models.Opportunity{}, fmt.Errorf("candidate %s %s opposing price: %w", cand.Pick, cand.Market, err)
		}
		opp.FairProb, _ = RemoveVig(implied, other)
		opp.Overround = Overround(implied, other)
	}
	if cand.ExternalProb != nil {
		opp.BlendedProb, opp.Confidence = c.Calibrate(cand.ModelProb, *cand.ExternalProb)
	} else {
		opp.BlendedProb = c.MarketEnsemble(cand.ModelProb, implied)
	}

	opp.EVPercent = EVPercent(opp.BlendedProb, implied)
	opp.Grade = c.QualityGrade(opp.EVPercent)
	opp.KellyFraction = c.KellyStake(opp.BlendedProb, american)

	opp.Stake = c.params.Bankroll.Mul(decimal.NewFromFloat(opp.KellyFraction)).Round(2)
	dec, _ := DecimalOdds(american)
	stake := opp.Stake.InexactFloat64()
	opp.ExpectedValue = decimal.NewFromFloat(opp.BlendedProb*stake*dec - stake).Round(2)

	return opp, nil
}

// GetTopEdges evaluates every candidate and returns the playable ones, best first.
// Grade C and sub-minimum EV are dropped. Without a third-party probability, a model
// that strays further than MaxMarketDisagreement from the market is also dropped; the
// market is the de-vigged price when the opposing side is known.
func (c *Calculator) GetTopEdges(candidates []models.Candidate) []models.Opportunity {
	var out []models.Opportunity
	for _, cand := range candidates {
		game := cand.Away + "@" + cand.Home
		opp, err := c.Evaluate(cand)
		if err != nil {
			c.log.LogFiltered(game, cand.Pick, err.Error())
			continue
		}
		if opp.Grade == models.GradeC {
			c.log.LogFiltered(game, cand.Pick, "grade C")
			continue
		}
		if opp.EVPercent < c.params.MinEVPercent {
			c.log.LogFiltered(game, cand.Pick, "below minimum EV")
			continue
		}
		if cand.ExternalProb == nil && math.Abs(cand.ModelProb-opp.AgreementProb()) > c.params.MaxMarketDisagreement {
			c.log.LogFiltered(game, cand.Pick, "low market agreement")
			continue
		}

		metrics.RecordOpportunity(string(opp.Grade))
		c.log.LogOpportunity(opp.ID.String(), game, cand.Pick, string(opp.Grade), cand.Odds, opp.EVPercent, opp.KellyFraction)
		out = append(out, opp)
	}

	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := out[i].Grade.Rank(), out[j].Grade.Rank()
		if ri != rj {
			return ri > rj
		}
		return out[i].EVPercent > out[j].EVPercent
	})
	return out
}

// EVPercent is the percentage edge of a blended probability over the market's.
func EVPercent(blendedProb, marketProb float64) float64 {
	if marketProb <= 0 {
		return 0
	}
	return (blendedProb/marketProb - 1) * 100
}

// ConfidenceLevel grades agreement between the model and a third-party probability.
func ConfidenceLevel(modelProb, externalProb float64) models.Confidence {
	diff := math.Abs(modelProb - externalProb)
	switch {
	case diff < 0.03:
		return models.ConfidenceHigh
	case diff < 0.06:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}

func clampUnit(p float64) float64 {
	if math.IsNaN(p) {
		return 0.5
	}
	return math.Max(0, math.Min(1, p))
}

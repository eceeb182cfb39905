package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MarketType is the betting market an outcome belongs to.
type MarketType string

const (
	MarketMoneyline MarketType = "MONEYLINE"
	MarketPuckLine  MarketType = "PUCKLINE"
)

// Grade is the quality grade of an edge.
type Grade string

const (
	GradeAPlus Grade = "A+"
	GradeA     Grade = "A"
	GradeBPlus Grade = "B+"
	GradeB     Grade = "B"
	GradeC     Grade = "C"
)

// Rank orders grades; higher is better.
func (g Grade) Rank() int {
	switch g {
	case GradeAPlus:
		return 4
	case GradeA:
		return 3
	case GradeBPlus:
		return 2
	case GradeB:
		return 1
	default:
		return 0
	}
}

// Confidence expresses agreement between the model and a third-party source.
type Confidence string

const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
	ConfidenceNone   Confidence = ""
)

// Candidate is one priced outcome awaiting evaluation. OpposingOdds is the price of
// the other side of the same two-way market; zero means it is unknown.
type Candidate struct {
	Away         string     `json:"away"`
	Home         string     `json:"home"`
	Market       MarketType `json:"market"`
	Pick         string     `json:"pick"`
	Odds         int        `json:"odds"`
	OpposingOdds int        `json:"opposing_odds,omitempty"`
	ModelProb    float64    `json:"model_prob"`
	ExternalProb *float64   `json:"external_prob,omitempty"`
}

// Opportunity is a graded, sized candidate. FairProb and Overround are set only
// when the opposing price is known.
type Opportunity struct {
	ID            uuid.UUID       `json:"id"`
	Candidate     Candidate       `json:"candidate"`
	MarketProb    float64         `json:"market_prob"`
	FairProb      float64         `json:"fair_prob,omitempty"`
	Overround     float64         `json:"overround,omitempty"`
	BlendedProb   float64         `json:"blended_prob"`
	EVPercent     float64         `json:"ev_percent"`
	Grade         Grade           `json:"grade"`
	Confidence    Confidence      `json:"confidence"`
	KellyFraction float64         `json:"kelly_fraction"`
	Stake         decimal.Decimal `json:"stake"`
	ExpectedValue decimal.Decimal `json:"expected_value"`
}

// AgreementProb is the market probability the model is compared against: the
// vig-free price when known, otherwise the raw implied one.
func (o Opportunity) AgreementProb() float64 {
	if o.FairProb > 0 {
		return o.FairProb
	}
	return o.MarketProb
}

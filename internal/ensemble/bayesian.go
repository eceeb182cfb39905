package ensemble

import "math"

// Signal is one piece of evidence about a two-way outcome.
type Signal struct {
	Name        string
	Probability float64
	Weight      float64
	Confidence  float64
	Detail      string
}

// Step records how one signal moved the running probability.
type Step struct {
	Signal    string  `json:"signal"`
	Prior     float64 `json:"prior"`
	Posterior float64 `json:"posterior"`
	Impact    float64 `json:"impact"`
}

// Combination is the result of folding a list of signals into one probability.
type Combination struct {
	Probability float64 `json:"probability"`
	Edge        float64 `json:"edge"`
	Favored     bool    `json:"favored"`
	Steps       []Step  `json:"steps"`
}

const (
	bayesFloor = 0.30
	bayesCeil  = 0.70
)

// CombineSignals starts from a coin flip and applies each signal as a weighted update,
// keeping the running probability within [0.30, 0.70].
func CombineSignals(signals []Signal) Combination {
	prob := 0.5
	steps := make([]Step, 0, len(signals))
	for _, s := range signals {
		prior := prob
		prob = BayesianUpdate(prob, s.Probability, s.Weight, s.Confidence)
		steps = append(steps, Step{Signal: s.Name, Prior: prior, Posterior: prob, Impact: prob - prior})
	}
	return Combination{
		Probability: prob,
		Edge:        math.Abs(prob - 0.5),
		Favored:     prob > 0.5,
		Steps:       steps,
	}
}

// BayesianUpdate moves prior toward signal by weight×confidence.
func BayesianUpdate(prior, signal, weight, confidence float64) float64 {
	w := clampUnit(weight * confidence)
	next := prior*(1-w) + signal*w
	return math.Max(bayesFloor, math.Min(bayesCeil, next))
}

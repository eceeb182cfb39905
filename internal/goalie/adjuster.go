package goalie

// Adjuster turns an opposing goaltender's GSAE into a multiplier on the shooting team's goals.
type Adjuster interface {
	Multiplier(gsae float64) float64
}

// StepAdjuster is a flat three-level step: hot goalies suppress scoring,
// cold goalies inflate it, everyone else is neutral.
type StepAdjuster struct {
	Threshold   float64
	Suppression float64
	Inflation   float64
}

// DefaultStepAdjuster returns the ±10 GSAE, ±15% step.
func DefaultStepAdjuster() StepAdjuster {
	return StepAdjuster{Threshold: 10, Suppression: 0.85, Inflation: 1.15}
}

// Multiplier implements Adjuster.
func (s StepAdjuster) Multiplier(gsae float64) float64 {
	switch {
	case gsae > s.Threshold:
		return s.Suppression
	case gsae < -s.Threshold:
		return s.Inflation
	default:
		return 1.0
	}
}

package statengine

import "math"

const (
	// MaxGoals is the per-team upper bound of the scoreline grid.
	MaxGoals = 10
	// MinProbability and MaxProbability bound every returned probability.
	MinProbability = 0.05
	MaxProbability = 0.95
	// FavoriteTieShare is the share of regulation ties credited to the side with more expected goals.
	FavoriteTieShare = 0.58
)

// PoissonPMF is P(k; lambda). A non-positive lambda puts all mass on zero.
func PoissonPMF(k int, lambda float64) float64 {
	if k < 0 {
		return 0
	}
	if lambda <= 0 || math.IsNaN(lambda) {
		if k == 0 {
			return 1
		}
		return 0
	}
	lg, _ := math.Lgamma(float64(k) + 1)
	return math.Exp(float64(k)*math.Log(lambda) - lambda - lg)
}

// scoreGrid is the joint regulation scoreline distribution, indexed [team][opp].
type scoreGrid [MaxGoals + 1][MaxGoals + 1]float64

func newScoreGrid(teamGoals, oppGoals float64) *scoreGrid {
	teamGoals, oppGoals = sanitize(teamGoals), sanitize(oppGoals)

	var teamPMF, oppPMF [MaxGoals + 1]float64
	for k := 0; k <= MaxGoals; k++ {
		teamPMF[k] = PoissonPMF(k, teamGoals)
		oppPMF[k] = PoissonPMF(k, oppGoals)
	}

	g := &scoreGrid{}
	for i := 0; i <= MaxGoals; i++ {
		for j := 0; j <= MaxGoals; j++ {
			g[i][j] = teamPMF[i] * oppPMF[j]
		}
	}
	return g
}

// PoissonWinProb is the probability the team with teamGoals expected goals wins,
// with regulation ties split 58/42 toward the side with more expected goals.
func PoissonWinProb(teamGoals, oppGoals float64) float64 {
	teamGoals, oppGoals = sanitize(teamGoals), sanitize(oppGoals)
	g := newScoreGrid(teamGoals, oppGoals)

	var win, tie float64
	for i := 0; i <= MaxGoals; i++ {
		for j := 0; j <= MaxGoals; j++ {
			switch {
			case i > j:
				win += g[i][j]
			case i == j:
				tie += g[i][j]
			}
		}
	}

	share := 0.5
	switch {
	case teamGoals > oppGoals:
		share = FavoriteTieShare
	case teamGoals < oppGoals:
		share = 1 - FavoriteTieShare
	}

	return ClampProbability(win + tie*share)
}

// PuckLineProb is the probability the team covers spread (for example -1.5 or +1.5).
// A regulation tie is settled by one goal, so it covers any positive spread and no negative one.
func PuckLineProb(teamGoals, oppGoals, spread float64) float64 {
	g := newScoreGrid(teamGoals, oppGoals)

	var cover float64
	for i := 0; i <= MaxGoals; i++ {
		for j := 0; j <= MaxGoals; j++ {
			if float64(i-j)+spread > 0 {
				cover += g[i][j]
			}
		}
	}
	return ClampProbability(cover)
}

// TotalOverProb is the probability the combined regulation score exceeds line.
func TotalOverProb(teamGoals, oppGoals, line float64) float64 {
	g := newScoreGrid(teamGoals, oppGoals)

	var over float64
	for i := 0; i <= MaxGoals; i++ {
		for j := 0; j <= MaxGoals; j++ {
			if float64(i+j) > line {
				over += g[i][j]
			}
		}
	}
	return ClampProbability(over)
}

// ClampProbability bounds p to [MinProbability, MaxProbability]; NaN maps to 0.5.
func ClampProbability(p float64) float64 {
	if math.IsNaN(p) {
		return 0.5
	}
	return math.Max(MinProbability, math.Min(MaxProbability, p))
}

func sanitize(goals float64) float64 {
	if math.IsNaN(goals) || math.IsInf(goals, 0) || goals < 0 {
		return 0
	}
	return goals
}

package statengine

import "sort"

// Breakpoint applies Weight to every team with at least MinGames played.
type Breakpoint struct {
	MinGames int
	Weight   float64
}

// RegressionSchedule maps games played to the weight placed on the league average.
// Breakpoints are kept sorted by descending MinGames.
type RegressionSchedule []Breakpoint

// DefaultRegression is the sample-size table the model was tuned with.
var DefaultRegression = RegressionSchedule{
	{MinGames: 40, Weight: 0.10},
	{MinGames: 20, Weight: 0.20},
	{MinGames: 10, Weight: 0.30},
	{MinGames: 5, Weight: 0.40},
	{MinGames: 0, Weight: 0.50},
}

// NewRegressionSchedule sorts breakpoints into lookup order.
func NewRegressionSchedule(bps []Breakpoint) RegressionSchedule {
	out := make(RegressionSchedule, len(bps))
	copy(out, bps)
	sort.Slice(out, func(i, j int) bool { return out[i].MinGames > out[j].MinGames })
	return out
}

// Weight returns the league-average weight for a team with gamesPlayed games.
func (r RegressionSchedule) Weight(gamesPlayed int) float64 {
	if len(r) == 0 {
		return 0
	}
	for _, bp := range r {
		if gamesPlayed >= bp.MinGames {
			return bp.Weight
		}
	}
	return r[len(r)-1].Weight
}

// Apply pulls stat toward leagueAvg by the weight for gamesPlayed.
func (r RegressionSchedule) Apply(stat, leagueAvg float64, gamesPlayed int) float64 {
	w := r.Weight(gamesPlayed)
	return stat*(1-w) + leagueAvg*w
}

// RegressionWeight is the default schedule's weight for gamesPlayed.
func RegressionWeight(gamesPlayed int) float64 {
	return DefaultRegression.Weight(gamesPlayed)
}

// ApplyRegressionToMean regresses stat toward leagueAvg with the default schedule.
func ApplyRegressionToMean(stat, leagueAvg float64, gamesPlayed int) float64 {
	return DefaultRegression.Apply(stat, leagueAvg, gamesPlayed)
}

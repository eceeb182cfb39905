package statengine

import (
	"fmt"
	"math"

	"github.com/yourusername/puck-savant/internal/models"
)

// Split is the share of a 60-minute game spent in each state, from the scoring team's view.
type Split struct {
	EvenStrength float64
	PowerPlay    float64
	PenaltyKill  float64
}

// StaticSplit is the league-typical 77/12/11 division.
var StaticSplit = Split{EvenStrength: 0.77, PowerPlay: 0.12, PenaltyKill: 0.11}

// SituationalWeighting decides how much of the game a matchup spends at each strength.
// team and opponent are the "all" rows and may be nil.
type SituationalWeighting interface {
	Split(team, opponent *models.TeamSituationalStat) Split
	Name() string
}

// StaticWeighting always returns the same split.
type StaticWeighting struct {
	split Split
}

// NewStaticWeighting returns a static strategy using split.
func NewStaticWeighting(split Split) *StaticWeighting {
	return &StaticWeighting{split: split}
}

// Split implements SituationalWeighting.
func (s *StaticWeighting) Split(_, _ *models.TeamSituationalStat) Split {
	return s.split
}

// Name implements SituationalWeighting.
func (s *StaticWeighting) Name() string { return "static" }

// DynamicWeighting derives power-play time from the opponent's penalty minutes and
// penalty-kill time from the team's own, each clamped to [Min, Max].
type DynamicWeighting struct {
	Fallback Split
	Min      float64
	Max      float64
}

// NewDynamicWeighting returns a penalty-minutes strategy.
func NewDynamicWeighting(fallback Split, lo, hi float64) *DynamicWeighting {
	return &DynamicWeighting{Fallback: fallback, Min: lo, Max: hi}
}

// Split implements SituationalWeighting.
func (d *DynamicWeighting) Split(team, opponent *models.TeamSituationalStat) Split {
	teamPIM, teamOK := penaltyMinutesPerGame(team)
	oppPIM, oppOK := penaltyMinutesPerGame(opponent)
	if !teamOK || !oppOK {
		return d.Fallback
	}

	ppMinutes := oppPIM
	if team.PenaltyMinutesDrawn > 0 {
		ppMinutes = (oppPIM + team.PenaltyMinutesDrawn/float64(team.GamesPlayed)) / 2
	}

	pp := clamp(ppMinutes/60, d.Min, d.Max)
	pk := clamp(teamPIM/60, d.Min, d.Max)
	return Split{EvenStrength: 1 - pp - pk, PowerPlay: pp, PenaltyKill: pk}
}

// Name implements SituationalWeighting.
func (d *DynamicWeighting) Name() string { return "dynamic" }

// NewWeighting builds a strategy by its configured name.
func NewWeighting(name string, split Split, lo, hi float64) (SituationalWeighting, error) {
	switch name {
	case "", "static":
		return NewStaticWeighting(split), nil
	case "dynamic":
		return NewDynamicWeighting(split, lo, hi), nil
	default:
		return nil, fmt.Errorf("unknown situational strategy %q", name)
	}
}

func penaltyMinutesPerGame(s *models.TeamSituationalStat) (float64, bool) {
	if s == nil || s.GamesPlayed <= 0 || s.PenaltyMinutes <= 0 {
		return 0, false
	}
	return s.PenaltyMinutes / float64(s.GamesPlayed), true
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Package statengine turns team rate statistics into expected goals and win probabilities.
package statengine

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/puck-savant/internal/logger"
	"github.com/yourusername/puck-savant/internal/models"
)

// GoalieAdjuster supplies the multiplier applied to a team's goals for the goaltender it faces.
type GoalieAdjuster interface {
	OpponentMultiplier(opponent, goalie string) float64
}

// ScheduleAdjuster supplies the summed rest and travel adjustment for a team on a date.
type ScheduleAdjuster interface {
	CombinedAdjustment(team string, date time.Time, isHome bool) float64
}

// ScoreRequest is one call to PredictTeamScore. Goalies and Schedule are optional;
// a nil collaborator leaves that adjustment out of this prediction only.
type ScoreRequest struct {
	Team           string
	Opponent       string
	IsHome         bool
	OpposingGoalie string
	Date           time.Time
	Goalies        GoalieAdjuster
	Schedule       ScheduleAdjuster
}

type statKey struct {
	team      string
	situation models.Situation
}

// Engine holds the league's situational stats and the baselines derived from them.
// It is read-only after NewEngine returns and safe for concurrent use.
type Engine struct {
	params      Params
	stats       map[statKey]models.TeamSituationalStat
	calibration float64
	evenBase    float64
	ppBase      float64
	pkBase      float64
	log         *logger.ModelLogger
}

// Option configures an Engine.
type Option func(*Engine)

// WithParams replaces the default model constants.
func WithParams(p Params) Option {
	return func(e *Engine) { e.params = p }
}

// WithLogger sets the engine's logger.
func WithLogger(l *logrus.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = logger.NewModelLogger(l)
		}
	}
}

// NewEngine derives rates for every row and computes the league baselines.
// Each (team, situation) pair may appear once.
func NewEngine(rows []models.TeamSituationalStat, opts ...Option) (*Engine, error) {
	e := &Engine{
		params: DefaultParams(),
		stats:  make(map[statKey]models.TeamSituationalStat, len(rows)),
		log:    logger.NewModelLogger(logger.Discard()),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.params.Weighting == nil {
		e.params.Weighting = NewStaticWeighting(StaticSplit)
	}
	if len(e.params.Regression) == 0 {
		e.params.Regression = DefaultRegression
	}

	for _, row := range rows {
		key := statKey{team: row.Team, situation: row.Situation}
		if _, exists := e.stats[key]; exists {
			return nil, fmt.Errorf("%w: %s/%s", models.ErrDuplicateStat, row.Team, row.Situation)
		}
		e.stats[key] = DeriveRates(row)
	}

	e.calibration = e.computeCalibration()
	e.evenBase = e.meanRate(models.Situation5v5, offense) * e.calibration
	e.ppBase = e.meanRate(models.SituationPowerPlay, offense) * e.calibration
	e.pkBase = e.meanRate(models.SituationPenaltyKill, defense) * e.calibration

	e.log.WithFields(logrus.Fields{
		"rows":        len(e.stats),
		"calibration": e.calibration,
		"league_xgf":  e.evenBase,
		"weighting":   e.params.Weighting.Name(),
	}).Info("Stat engine initialised")

	return e, nil
}

// Stat returns the derived row for a team and situation.
func (e *Engine) Stat(team string, situation models.Situation) (models.TeamSituationalStat, bool) {
	s, ok := e.stats[statKey{team: team, situation: situation}]
	return s, ok
}

// Teams lists every team with a 5v5 row, sorted.
func (e *Engine) Teams() []string {
	return e.teamsIn(models.Situation5v5)
}

// teamsIn lists the teams with a row in situation, sorted so sums over them are reproducible.
func (e *Engine) teamsIn(situation models.Situation) []string {
	var out []string
	for k := range e.stats {
		if k.situation == situation {
			out = append(out, k.team)
		}
	}
	sort.Strings(out)
	return out
}

// CalibrationFactor is actual goals per score-adjusted expected goal across 5v5 rows.
func (e *Engine) CalibrationFactor() float64 { return e.calibration }

// LeagueBaseline is the calibrated league-average 5v5 xGF/60.
func (e *Engine) LeagueBaseline() float64 { return e.evenBase }

// Params returns the model constants in use.
func (e *Engine) Params() Params { return e.params }

// PredictTeamScore returns the goals req.Team is expected to score against req.Opponent.
// It returns 0 when either side lacks a 5v5 row and is never negative.
func (e *Engine) PredictTeamScore(req ScoreRequest) float64 {
	team5v5, ok := e.stats[statKey{req.Team, models.Situation5v5}]
	if !ok {
		e.log.LogMissingStats(req.Team, req.Opponent)
		return 0
	}
	opp5v5, ok := e.stats[statKey{req.Opponent, models.Situation5v5}]
	if !ok {
		e.log.LogMissingStats(req.Opponent, req.Team)
		return 0
	}

	split := e.params.Weighting.Split(e.row(req.Team, models.SituationAll), e.row(req.Opponent, models.SituationAll))

	evenRate := e.blendedRate(&team5v5, &opp5v5, e.evenBase, e.evenBase)
	goals := evenRate * split.EvenStrength
	if req.IsHome {
		goals *= e.params.HomeIceFactor
	}

	teamPP, ppOK := e.stats[statKey{req.Team, models.SituationPowerPlay}]
	oppPK, pkOK := e.stats[statKey{req.Opponent, models.SituationPenaltyKill}]
	if ppOK && pkOK {
		goals += e.blendedRate(&teamPP, &oppPK, e.ppBase, e.pkBase) * split.PowerPlay
	}

	if req.Goalies != nil {
		m := req.Goalies.OpponentMultiplier(req.Opponent, req.OpposingGoalie)
		if m != 1 {
			e.log.LogAdjustment("goalie", req.Team, m)
		}
		goals *= m
	}

	if req.Schedule != nil && !req.Date.IsZero() {
		adj := req.Schedule.CombinedAdjustment(req.Team, req.Date, req.IsHome)
		if adj != 0 {
			e.log.LogAdjustment("schedule", req.Team, 1+adj)
		}
		goals *= 1 + adj
	}

	if math.IsNaN(goals) || goals < 0 {
		return 0
	}
	return goals
}

// PredictGameTotal is the sum of both teams' expected goals.
func (e *Engine) PredictGameTotal(away, home string, date time.Time, goalies GoalieAdjuster, schedule ScheduleAdjuster) float64 {
	awayGoals := e.PredictTeamScore(ScoreRequest{Team: away, Opponent: home, Date: date, Goalies: goalies, Schedule: schedule})
	homeGoals := e.PredictTeamScore(ScoreRequest{Team: home, Opponent: away, IsHome: true, Date: date, Goalies: goalies, Schedule: schedule})
	return awayGoals + homeGoals
}

// RegressionCandidates returns 5v5 rows whose regression score magnitude is at least
// threshold, most extreme first.
func (e *Engine) RegressionCandidates(threshold float64) []models.TeamSituationalStat {
	var out []models.TeamSituationalStat
	for k, s := range e.stats {
		if k.situation == models.Situation5v5 && math.Abs(s.RegressionScore) >= threshold {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		ai, aj := math.Abs(out[i].RegressionScore), math.Abs(out[j].RegressionScore)
		if ai != aj {
			return ai > aj
		}
		return out[i].Team < out[j].Team
	})
	return out
}

// blendedRate regresses, luck-corrects, blends and talent-adjusts one attack-vs-defence pairing.
func (e *Engine) blendedRate(attack, defence *models.TeamSituationalStat, offBase, defBase float64) float64 {
	p := e.params

	off := p.Regression.Apply(attack.OffensiveRate(), offBase, attack.GamesPlayed)
	def := p.Regression.Apply(defence.DefensiveRate(), defBase, defence.GamesPlayed)

	off = p.correctPDO(off, attack.PDO)
	def = p.correctPDO(def, defence.PDO)

	rate := off*p.OffenseWeight + def*p.DefenseWeight
	return rate * p.shootingFactor(attack.ShootingEfficiency)
}

func (e *Engine) row(team string, situation models.Situation) *models.TeamSituationalStat {
	s, ok := e.stats[statKey{team, situation}]
	if !ok {
		return nil
	}
	return &s
}

func (e *Engine) computeCalibration() float64 {
	var goals, xg float64
	for _, team := range e.teamsIn(models.Situation5v5) {
		s := e.stats[statKey{team, models.Situation5v5}]
		goals += s.GoalsFor
		if s.ScoreAdjustedXGoalsFor > 0 {
			xg += s.ScoreAdjustedXGoalsFor
		} else {
			xg += s.XGoalsFor
		}
	}
	if xg <= 0 || goals <= 0 {
		return 1
	}
	return goals / xg
}

type side int

const (
	offense side = iota
	defense
)

func (e *Engine) meanRate(situation models.Situation, which side) float64 {
	var sum float64
	var n int
	for _, team := range e.teamsIn(situation) {
		s := e.stats[statKey{team, situation}]
		if which == offense {
			sum += s.OffensiveRate()
		} else {
			sum += s.DefensiveRate()
		}
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

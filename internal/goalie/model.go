// Package goalie rates goaltenders by goals saved above expected and converts that
// into a scoring adjustment for the team facing them.
package goalie

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/puck-savant/internal/config"
	"github.com/yourusername/puck-savant/internal/logger"
	"github.com/yourusername/puck-savant/internal/models"
)

type goalieKey struct {
	name      string
	team      string
	situation models.Situation
}

// Model indexes goaltender rows. It is read-only after NewModel and safe for concurrent use.
type Model struct {
	rows      map[goalieKey]models.GoalieStat
	byTeam    map[string][]models.GoalieStat
	byName    map[string][]models.GoalieStat
	situation models.Situation
	adjuster  Adjuster
	logger    *logrus.Logger
}

// Option configures a Model.
type Option func(*Model)

// WithAdjuster swaps the GSAE-to-multiplier function.
func WithAdjuster(a Adjuster) Option {
	return func(m *Model) { m.adjuster = a }
}

// WithSituation sets the situation GSAE is read from for adjustments.
func WithSituation(s models.Situation) Option {
	return func(m *Model) { m.situation = s }
}

// WithLogger sets the model's logger.
func WithLogger(l *logrus.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// OptionsFromConfig maps the goalie config section onto options.
func OptionsFromConfig(cfg config.GoalieConfig) ([]Option, error) {
	situation, err := models.ParseSituation(cfg.Situation)
	if err != nil {
		return nil, fmt.Errorf("invalid goalie situation: %w", err)
	}
	return []Option{
		WithSituation(situation),
		WithAdjuster(StepAdjuster{Threshold: cfg.Threshold, Suppression: cfg.Suppression, Inflation: cfg.Inflation}),
	}, nil
}

// NewModel indexes rows by (name, team, situation).
func NewModel(rows []models.GoalieStat, opts ...Option) (*Model, error) {
	m := &Model{
		rows:      make(map[goalieKey]models.GoalieStat, len(rows)),
		byTeam:    make(map[string][]models.GoalieStat),
		byName:    make(map[string][]models.GoalieStat),
		situation: models.Situation5v5,
		adjuster:  DefaultStepAdjuster(),
		logger:    logger.Discard(),
	}
	for _, opt := range opts {
		opt(m)
	}

	for _, row := range rows {
		key := goalieKey{name: row.Name, team: row.Team, situation: row.Situation}
		if _, exists := m.rows[key]; exists {
			return nil, fmt.Errorf("%w: %s/%s/%s", models.ErrDuplicateGoalie, row.Name, row.Team, row.Situation)
		}
		m.rows[key] = row
		m.byTeam[row.Team] = append(m.byTeam[row.Team], row)
		m.byName[row.Name] = append(m.byName[row.Name], row)
	}
	// Fixed row order keeps float sums identical however the input was ordered.
	for _, rs := range m.byTeam {
		sortRows(rs)
	}
	for _, rs := range m.byName {
		sortRows(rs)
	}

	m.logger.WithFields(logrus.Fields{
		"component": "goalie",
		"rows":      len(m.rows),
		"teams":     len(m.byTeam),
	}).Debug("Goalie model initialised")

	return m, nil
}

// GSAE is expected goals faced minus goals allowed for a goaltender in a situation,
// summed across every team they played for. Unknown goaltenders return 0.
func (m *Model) GSAE(name string, situation models.Situation) float64 {
	var total float64
	for _, row := range m.byName[name] {
		if row.Situation == situation {
			total += row.XGoals - row.GoalsAllowed
		}
	}
	return total
}

// TeamGSAE is the ice-time-weighted average GSAE of a team's goaltenders.
func (m *Model) TeamGSAE(team string, situation models.Situation) float64 {
	var weighted, ice float64
	for _, row := range m.byTeam[team] {
		if row.Situation != situation || row.IceTime <= 0 {
			continue
		}
		weighted += (row.XGoals - row.GoalsAllowed) * row.IceTime
		ice += row.IceTime
	}
	if ice == 0 {
		return 0
	}
	return weighted / ice
}

// Resolve finds a team's goaltender by exact name, then by last name.
func (m *Model) Resolve(team, name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}
	rows := m.byTeam[team]
	for _, row := range rows {
		if strings.EqualFold(row.Name, name) {
			return row.Name, true
		}
	}
	last := lastName(name)
	for _, row := range rows {
		if strings.EqualFold(lastName(row.Name), last) {
			return row.Name, true
		}
	}
	return "", false
}

// OpponentMultiplier is the adjustment for a team shooting at opponent's goaltender.
// An unnamed or unknown goaltender falls back to the opponent's team average.
func (m *Model) OpponentMultiplier(opponent, goalie string) float64 {
	gsae, source := m.FacingGSAE(opponent, goalie)

	mult := m.adjuster.Multiplier(gsae)
	m.logger.WithFields(logrus.Fields{
		"component":  "goalie",
		"opponent":   opponent,
		"source":     source,
		"gsae":       gsae,
		"multiplier": mult,
	}).Debug("Goalie adjustment")
	return mult
}

// FacingGSAE is the GSAE a shooter faces in the model's situation: the named
// goaltender's when resolvable, otherwise the team average. source is the
// resolved name or "team".
func (m *Model) FacingGSAE(team, goalie string) (gsae float64, source string) {
	if resolved, ok := m.Resolve(team, goalie); ok {
		return m.GSAE(resolved, m.situation), resolved
	}
	return m.TeamGSAE(team, m.situation), "team"
}

// Starter is the team's goaltender with the most games played in the model's situation.
func (m *Model) Starter(team string) (string, bool) {
	var best models.GoalieStat
	found := false
	for _, row := range m.byTeam[team] {
		if row.Situation != m.situation {
			continue
		}
		if !found || row.GamesPlayed > best.GamesPlayed || (row.GamesPlayed == best.GamesPlayed && row.Name < best.Name) {
			best = row
			found = true
		}
	}
	return best.Name, found
}

// Profile summarises a goaltender's rows in the model's situation.
func (m *Model) Profile(name string) (models.GoalieProfile, bool) {
	var p models.GoalieProfile
	var shots, goals, hdShots, hdGoals, ice float64
	found := false
	for _, row := range m.byName[name] {
		if row.Situation != m.situation {
			continue
		}
		found = true
		p.GamesPlayed += row.GamesPlayed
		shots += row.ShotsFaced
		goals += row.GoalsAllowed
		hdShots += row.HighDangerShots
		hdGoals += row.HighDangerGoals
		p.GSAE += row.XGoals - row.GoalsAllowed
		if row.IceTime >= ice {
			p.Team = row.Team
			ice = row.IceTime
		}
	}
	if !found {
		return models.GoalieProfile{}, false
	}

	p.Name = name
	if shots > 0 {
		p.SavePct = 1 - goals/shots
	}
	if hdShots > 0 {
		p.HighDangerPct = 1 - hdGoals/hdShots
	}
	p.Form = Form(p.GSAE, p.GamesPlayed)
	p.Tier = Tier(p.GSAE)
	return p, true
}

// Rankings lists every profiled goaltender, best GSAE first.
func (m *Model) Rankings() []models.GoalieProfile {
	var out []models.GoalieProfile
	for name := range m.byName {
		if p, ok := m.Profile(name); ok {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].GSAE != out[j].GSAE {
			return out[i].GSAE > out[j].GSAE
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func sortRows(rows []models.GoalieStat) {
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		if a.Team != b.Team {
			return a.Team < b.Team
		}
		return a.Situation < b.Situation
	})
}

// Form labels a goaltender from his GSAE and sample size.
func Form(gsae float64, gamesPlayed int) models.GoalieForm {
	switch {
	case gamesPlayed < 5:
		return models.GoalieFormLimited
	case gsae > 5:
		return models.GoalieFormHot
	case gsae < -3:
		return models.GoalieFormCold
	default:
		return models.GoalieFormSteady
	}
}

// Tier places a GSAE value in the league tiers.
func Tier(gsae float64) models.GoalieTier {
	switch {
	case gsae > 10:
		return models.GoalieTierElite
	case gsae > 5:
		return models.GoalieTierStrong
	case gsae > -5:
		return models.GoalieTierAverage
	default:
		return models.GoalieTierWeak
	}
}

func lastName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

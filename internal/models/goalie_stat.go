package models

// GoalieStat is one goaltender's line for a team and situation. IceTime is in seconds.
type GoalieStat struct {
	Name            string    `json:"name"`
	Team            string    `json:"team"`
	Situation       Situation `json:"situation"`
	GamesPlayed     int       `json:"games_played"`
	IceTime         float64   `json:"ice_time"`
	XGoals          float64   `json:"xgoals"`
	GoalsAllowed    float64   `json:"goals_allowed"`
	ShotsFaced      float64   `json:"shots_faced"`
	HighDangerShots float64   `json:"high_danger_shots"`
	HighDangerGoals float64   `json:"high_danger_goals"`
}

// GoalieForm summarises recent performance.
type GoalieForm string

const (
	GoalieFormHot     GoalieForm = "Hot"
	GoalieFormCold    GoalieForm = "Cold"
	GoalieFormSteady  GoalieForm = "Steady"
	GoalieFormLimited GoalieForm = "Limited Sample"
)

// GoalieTier ranks a goaltender against the league by GSAE.
type GoalieTier string

const (
	GoalieTierElite   GoalieTier = "ELITE"
	GoalieTierStrong  GoalieTier = "STRONG"
	GoalieTierAverage GoalieTier = "AVERAGE"
	GoalieTierWeak    GoalieTier = "WEAK"
)

// GoalieProfile is the read model returned for a single goaltender.
type GoalieProfile struct {
	Name          string     `json:"name"`
	Team          string     `json:"team"`
	GamesPlayed   int        `json:"games_played"`
	GSAE          float64    `json:"gsae"`
	SavePct       float64    `json:"save_pct"`
	HighDangerPct float64    `json:"high_danger_save_pct"`
	Form          GoalieForm `json:"form"`
	Tier          GoalieTier `json:"tier"`
}

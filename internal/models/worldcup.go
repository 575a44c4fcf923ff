package models

import "strings"

// Stage is the phase a match belongs to once raw round labels are collapsed.
type Stage string

const (
	StageGroup    Stage = "group"
	StageKnockout Stage = "knockout"
)

// ClassifyStage maps a raw round label ("Group B", "Round of 16", "Final") onto a Stage.
// Anything that is not a group label counts as knockout, including third-place play-offs
// and the 1950 final round.
func ClassifyStage(label string) Stage {
	if strings.Contains(strings.ToLower(label), "group") {
		return StageGroup
	}
	return StageKnockout
}

// Match is one row of the matches table.
type Match struct {
	Year       int    `json:"year" validate:"gt=0"`
	Stage      string `json:"stage" validate:"required"`
	HomeTeam   string `json:"home_team" validate:"required"`
	AwayTeam   string `json:"away_team" validate:"required,nefield=HomeTeam"`
	HomeGoals  int    `json:"home_goals" validate:"gte=0"`
	AwayGoals  int    `json:"away_goals" validate:"gte=0"`
	Host       string `json:"host"`
	Attendance int    `json:"attendance" validate:"gte=0"`
}

// TotalGoals is the sum of both sides' goals.
func (m Match) TotalGoals() int {
	return m.HomeGoals + m.AwayGoals
}

// Winner returns the side that strictly outscored the other, or "" for a draw.
func (m Match) Winner() string {
	switch {
	case m.HomeGoals > m.AwayGoals:
		return m.HomeTeam
	case m.AwayGoals > m.HomeGoals:
		return m.AwayTeam
	default:
		return ""
	}
}

func (m Match) IsDraw() bool {
	return m.HomeGoals == m.AwayGoals
}

func (m Match) Category() Stage {
	return ClassifyStage(m.Stage)
}

// Involves reports whether team played in the match as either side.
func (m Match) Involves(team string) bool {
	return m.HomeTeam == team || m.AwayTeam == team
}

// GoalsFor returns the goals scored and conceded by team in this match.
// The caller must check Involves first.
func (m Match) GoalsFor(team string) (scored, conceded int) {
	if m.HomeTeam == team {
		return m.HomeGoals, m.AwayGoals
	}
	return m.AwayGoals, m.HomeGoals
}

// Tournament is one World Cup edition.
type Tournament struct {
	Year             int     `json:"year" validate:"gt=0"`
	Host             string  `json:"host" validate:"required"`
	Winner           string  `json:"winner"`
	RunnerUp         string  `json:"runner_up"`
	Matches          int     `json:"matches" validate:"gte=0"`
	Goals            int     `json:"goals" validate:"gte=0"`
	AvgGoalsPerMatch float64 `json:"avg_goals_per_match" validate:"gte=0"`
}

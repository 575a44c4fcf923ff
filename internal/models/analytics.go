package models

import "time"

// WorldCupGoals is one point of the goals-per-edition trend line.
type WorldCupGoals struct {
	Year             int     `json:"year"`
	Host             string  `json:"host"`
	Winner           string  `json:"winner"`
	Matches          int     `json:"matches"`
	TotalGoals       int     `json:"total_goals"`
	AvgGoalsPerMatch float64 `json:"avg_goals_per_match"`
}

// TeamRanking is a leaderboard row for the top-teams view.
type TeamRanking struct {
	Rank        int    `json:"rank"`
	Team        string `json:"team"`
	Wins        int    `json:"wins"`
	GoalsScored int    `json:"goals_scored"`
	Titles      int    `json:"titles"`
	Matches     int    `json:"matches"`
}

// StageBreakdown holds parallel per-year slices so chart axes stay aligned.
type StageBreakdown struct {
	Years       []int        `json:"years"`
	GroupAvg    []float64    `json:"group_avg"`
	KnockoutAvg []float64    `json:"knockout_avg"`
	Overall     StageOverall `json:"overall"`
}

type StageOverall struct {
	Group    float64 `json:"group"`
	Knockout float64 `json:"knockout"`
}

// ContinentGoals is one slice of the continental pie chart.
type ContinentGoals struct {
	Continent string  `json:"continent"`
	Goals     int     `json:"goals"`
	Share     float64 `json:"share"` // percent of all goals, 1 dp
}

// TeamRecord summarises a team's whole World Cup history.
type TeamRecord struct {
	Team          string  `json:"team"`
	Matches       int     `json:"matches"`
	Wins          int     `json:"wins"`
	Draws         int     `json:"draws"`
	Losses        int     `json:"losses"`
	GoalsScored   int     `json:"goals_scored"`
	GoalsConceded int     `json:"goals_conceded"`
	Titles        int     `json:"titles"`
	Finals        int     `json:"finals"`
	WinRate       float64 `json:"win_rate"`
}

type HeadToHead struct {
	Matches   int `json:"matches"`
	Team1Wins int `json:"team1_wins"`
	Draws     int `json:"draws"`
	Team2Wins int `json:"team2_wins"`
}

type TeamComparison struct {
	Team1      TeamRecord `json:"team1"`
	Team2      TeamRecord `json:"team2"`
	HeadToHead HeadToHead `json:"head_to_head"`
}

// TournamentSummary mirrors the stored tournament row for the matches-per-year chart.
type TournamentSummary struct {
	Year         int    `json:"year"`
	Host         string `json:"host"`
	Winner       string `json:"winner"`
	RunnerUp     string `json:"runner_up"`
	TotalMatches int    `json:"total_matches"`
	TotalGoals   int    `json:"total_goals"`
}

// Snapshot describes the dataset an engine was built from.
type Snapshot struct {
	ID          string    `json:"id"`
	Source      string    `json:"source"`
	Matches     int       `json:"matches"`
	Tournaments int       `json:"tournaments"`
	Teams       int       `json:"teams"`
	LoadedAt    time.Time `json:"loaded_at"`
}

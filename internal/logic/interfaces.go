package logic

import "github.com/worldcup/stats-api/internal/models"

// AnalyticsService is the read-only query surface the HTTP and CLI layers depend on.
// Every query returns its result, a one-line insight and an error.
type AnalyticsService interface {
	GoalsPerWorldCup() ([]models.WorldCupGoals, string, error)
	TopTeams(metric string, limit int) ([]models.TeamRanking, string, error)
	GoalsByStage() (models.StageBreakdown, string, error)
	GoalsByContinent(basis string) ([]models.ContinentGoals, string, error)
	TeamComparison(team1, team2 string) (models.TeamComparison, string, error)
	AvailableTeams() ([]string, string, error)
	MatchesPerYear() ([]models.TournamentSummary, string, error)
	Snapshot() models.Snapshot
}

var _ AnalyticsService = (*Engine)(nil)

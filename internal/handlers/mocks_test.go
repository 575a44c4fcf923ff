package handlers

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/worldcup/stats-api/internal/models"
)

// MockAnalyticsService
type MockAnalyticsService struct {
	GoalsPerWorldCupFunc func() ([]models.WorldCupGoals, string, error)
	TopTeamsFunc         func(metric string, limit int) ([]models.TeamRanking, string, error)
	GoalsByStageFunc     func() (models.StageBreakdown, string, error)
	GoalsByContinentFunc func(basis string) ([]models.ContinentGoals, string, error)
	TeamComparisonFunc   func(team1, team2 string) (models.TeamComparison, string, error)
	AvailableTeamsFunc   func() ([]string, string, error)
	MatchesPerYearFunc   func() ([]models.TournamentSummary, string, error)

	Calls int
}

func (m *MockAnalyticsService) GoalsPerWorldCup() ([]models.WorldCupGoals, string, error) {
	m.Calls++
	if m.GoalsPerWorldCupFunc != nil {
		return m.GoalsPerWorldCupFunc()
	}
	return []models.WorldCupGoals{}, "", nil
}

func (m *MockAnalyticsService) TopTeams(metric string, limit int) ([]models.TeamRanking, string, error) {
	m.Calls++
	if m.TopTeamsFunc != nil {
		return m.TopTeamsFunc(metric, limit)
	}
	return []models.TeamRanking{}, "", nil
}

func (m *MockAnalyticsService) GoalsByStage() (models.StageBreakdown, string, error) {
	m.Calls++
	if m.GoalsByStageFunc != nil {
		return m.GoalsByStageFunc()
	}
	return models.StageBreakdown{}, "", nil
}

func (m *MockAnalyticsService) GoalsByContinent(basis string) ([]models.ContinentGoals, string, error) {
	m.Calls++
	if m.GoalsByContinentFunc != nil {
		return m.GoalsByContinentFunc(basis)
	}
	return []models.ContinentGoals{}, "", nil
}

func (m *MockAnalyticsService) TeamComparison(team1, team2 string) (models.TeamComparison, string, error) {
	m.Calls++
	if m.TeamComparisonFunc != nil {
		return m.TeamComparisonFunc(team1, team2)
	}
	return models.TeamComparison{}, "", nil
}

func (m *MockAnalyticsService) AvailableTeams() ([]string, string, error) {
	m.Calls++
	if m.AvailableTeamsFunc != nil {
		return m.AvailableTeamsFunc()
	}
	return []string{"Brazil", "Germany"}, "2 teams", nil
}

func (m *MockAnalyticsService) MatchesPerYear() ([]models.TournamentSummary, string, error) {
	m.Calls++
	if m.MatchesPerYearFunc != nil {
		return m.MatchesPerYearFunc()
	}
	return []models.TournamentSummary{}, "", nil
}

func (m *MockAnalyticsService) Snapshot() models.Snapshot {
	return models.Snapshot{ID: "snap-1", Source: "mock", Matches: 2, Tournaments: 1, Teams: 2}
}

// MockRedisClient keeps string keys in memory; unimplemented commands panic via the nil
// embedded interface.
type MockRedisClient struct {
	redis.Cmdable
	store   map[string]string
	GetErr  error
	PingErr error
}

func NewMockRedisClient() *MockRedisClient {
	return &MockRedisClient{store: make(map[string]string)}
}

func (m *MockRedisClient) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx, "get", key)
	if m.GetErr != nil {
		cmd.SetErr(m.GetErr)
		return cmd
	}
	v, ok := m.store[key]
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(v)
	return cmd
}

func (m *MockRedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx, "set", key)
	switch v := value.(type) {
	case []byte:
		m.store[key] = string(v)
	case string:
		m.store[key] = v
	}
	cmd.SetVal("OK")
	return cmd
}

func (m *MockRedisClient) Ping(ctx context.Context) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx, "ping")
	if m.PingErr != nil {
		cmd.SetErr(m.PingErr)
		return cmd
	}
	cmd.SetVal("PONG")
	return cmd
}

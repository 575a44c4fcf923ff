package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/worldcup/stats-api/internal/logic"
	"github.com/worldcup/stats-api/internal/models"
)

func newTestHandler(engine logic.AnalyticsService, cache ResponseCache) *Handler {
	return New(Config{Engine: engine, Cache: cache, Logger: zap.NewNop()})
}

func do(t *testing.T, h http.Handler, path string) (*httptest.ResponseRecorder, models.Envelope) {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var env models.Envelope
	if strings.HasPrefix(path, "/api/") {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			t.Fatalf("%s: body is not a JSON envelope: %v (%s)", path, err, w.Body.String())
		}
	}
	return w, env
}

func TestHealth(t *testing.T) {
	h := newTestHandler(&MockAnalyticsService{}, nil)
	w := httptest.NewRecorder()
	h.Health(w, httptest.NewRequest("GET", "/health", nil))

	if w.Code != http.StatusOK {
		t.Errorf("status = %v, want %v", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestReady(t *testing.T) {
	tests := []struct {
		name           string
		engine         logic.AnalyticsService
		cache          ResponseCache
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Engine loaded",
			engine:         &MockAnalyticsService{},
			expectedStatus: http.StatusOK,
			expectedBody:   `"id":"snap-1"`,
		},
		{
			name:           "Cache down is reported but not fatal",
			engine:         &MockAnalyticsService{},
			cache:          NewRedisCache(&MockRedisClient{store: map[string]string{}, PingErr: errors.New("refused")}),
			expectedStatus: http.StatusOK,
			expectedBody:   `"cache":false`,
		},
		{
			name:           "No engine",
			engine:         nil,
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `"ready":false`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(tt.engine, tt.cache)
			w := httptest.NewRecorder()
			h.Ready(w, httptest.NewRequest("GET", "/ready", nil))

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %v, want %v", w.Code, tt.expectedStatus)
			}
			if !strings.Contains(w.Body.String(), tt.expectedBody) {
				t.Errorf("body = %s, want %s", w.Body.String(), tt.expectedBody)
			}
		})
	}
}

func TestGetTopTeams(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		mockFunc       func(metric string, limit int) ([]models.TeamRanking, string, error)
		expectedStatus int
		expectedMetric string
		expectedLimit  int
	}{
		{
			name:           "Defaults",
			query:          "",
			expectedStatus: http.StatusOK,
			expectedMetric: "wins",
			expectedLimit:  10,
		},
		{
			name:           "Goals limit 5",
			query:          "?metric=goals&limit=5",
			expectedStatus: http.StatusOK,
			expectedMetric: "goals",
			expectedLimit:  5,
		},
		{
			name:           "Unknown metric",
			query:          "?metric=bogus",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Non-numeric limit",
			query:          "?limit=ten",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Zero limit",
			query:          "?limit=0",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:  "Engine rejects parameter",
			query: "?metric=titles",
			mockFunc: func(metric string, limit int) ([]models.TeamRanking, string, error) {
				return nil, "", fmt.Errorf("%w: nope", logic.ErrInvalidParameter)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Engine failure",
			mockFunc: func(metric string, limit int) ([]models.TeamRanking, string, error) {
				return nil, "", errors.New("boom")
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotMetric string
			var gotLimit int
			mock := &MockAnalyticsService{
				TopTeamsFunc: func(metric string, limit int) ([]models.TeamRanking, string, error) {
					gotMetric, gotLimit = metric, limit
					if tt.mockFunc != nil {
						return tt.mockFunc(metric, limit)
					}
					return []models.TeamRanking{{Rank: 1, Team: "Brazil", Wins: 76}}, "Brazil leads with 76 wins.", nil
				},
			}
			h := newTestHandler(mock, nil)

			w, env := do(t, h.Routes(nil), "/api/top-teams"+tt.query)

			if w.Code != tt.expectedStatus {
				t.Fatalf("status = %v, want %v (%s)", w.Code, tt.expectedStatus, w.Body.String())
			}
			if tt.expectedStatus != http.StatusOK {
				if env.Success || env.Error == "" {
					t.Errorf("error envelope = %+v", env)
				}
				if tt.expectedStatus == http.StatusInternalServerError && env.Error != "internal server error" {
					t.Errorf("internal error leaked: %q", env.Error)
				}
				return
			}
			if gotMetric != tt.expectedMetric || gotLimit != tt.expectedLimit {
				t.Errorf("engine called with (%q, %d), want (%q, %d)", gotMetric, gotLimit, tt.expectedMetric, tt.expectedLimit)
			}
			if !env.Success || env.Metric != tt.expectedMetric || env.Insight == "" {
				t.Errorf("envelope = %+v", env)
			}
		})
	}
}

func TestGetTeamComparison(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		expectedStatus int
		expectedTeams  [2]string
		expectedError  string
	}{
		{
			name:           "Defaults",
			expectedStatus: http.StatusOK,
			expectedTeams:  [2]string{"Brazil", "Germany"},
		},
		{
			name:           "Explicit teams keep their spelling",
			query:          "?team1=West+Germany&team2=Argentina",
			expectedStatus: http.StatusOK,
			expectedTeams:  [2]string{"West Germany", "Argentina"},
		},
		{
			name:           "Unknown team",
			query:          "?team1=Atlantis&team2=Brazil",
			expectedStatus: http.StatusNotFound,
			expectedError:  "Atlantis",
		},
		{
			name:           "Long unknown name is still an unknown team",
			query:          "?team2=Brazil&team1=" + strings.Repeat("Atlantis", 20),
			expectedStatus: http.StatusNotFound,
			expectedError:  "unknown team",
		},
		{
			name:           "Empty team",
			query:          "?team1=",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "team1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got [2]string
			mock := &MockAnalyticsService{
				TeamComparisonFunc: func(team1, team2 string) (models.TeamComparison, string, error) {
					got = [2]string{team1, team2}
					if strings.HasPrefix(team1, "Atlantis") {
						return models.TeamComparison{}, "", &logic.UnknownTeamError{Team: team1}
					}
					return models.TeamComparison{
						Team1: models.TeamRecord{Team: team1},
						Team2: models.TeamRecord{Team: team2},
					}, "even", nil
				},
			}
			h := newTestHandler(mock, nil)

			w, env := do(t, h.Routes(nil), "/api/team-comparison"+tt.query)

			if w.Code != tt.expectedStatus {
				t.Fatalf("status = %v, want %v (%s)", w.Code, tt.expectedStatus, w.Body.String())
			}
			if tt.expectedError != "" {
				if !strings.Contains(env.Error, tt.expectedError) {
					t.Errorf("error = %q, want it to mention %q", env.Error, tt.expectedError)
				}
				return
			}
			if got != tt.expectedTeams {
				t.Errorf("engine called with %v, want %v", got, tt.expectedTeams)
			}
		})
	}
}

func TestGetGoalsByContinent(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		expectedStatus int
		expectedBasis  string
	}{
		{"Default basis", "", http.StatusOK, "host"},
		{"Team basis", "?basis=team", http.StatusOK, "team"},
		{"Unknown basis", "?basis=planet", http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotBasis string
			mock := &MockAnalyticsService{
				GoalsByContinentFunc: func(basis string) ([]models.ContinentGoals, string, error) {
					gotBasis = basis
					return []models.ContinentGoals{{Continent: "Europe", Goals: 10, Share: 100}}, "Europe leads", nil
				},
			}
			h := newTestHandler(mock, nil)

			w, _ := do(t, h.Routes(nil), "/api/goals-by-continent"+tt.query)

			if w.Code != tt.expectedStatus {
				t.Fatalf("status = %v, want %v", w.Code, tt.expectedStatus)
			}
			if gotBasis != tt.expectedBasis {
				t.Errorf("basis = %q, want %q", gotBasis, tt.expectedBasis)
			}
		})
	}
}

func TestParameterlessEndpoints(t *testing.T) {
	h := newTestHandler(&MockAnalyticsService{}, nil)
	router := h.Routes(nil)

	for _, path := range []string{
		"/api/goals-per-worldcup",
		"/api/goals-by-stage",
		"/api/matches-per-year",
		"/api/available-teams",
	} {
		t.Run(path, func(t *testing.T) {
			w, env := do(t, router, path)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %v, want 200", w.Code)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q", ct)
			}
			if !env.Success || env.Data == nil {
				t.Errorf("envelope = %+v", env)
			}
		})
	}
}

func TestResponseCache(t *testing.T) {
	mock := &MockAnalyticsService{}
	redisClient := NewMockRedisClient()
	h := newTestHandler(mock, NewRedisCache(redisClient))
	router := h.Routes(nil)

	first, _ := do(t, router, "/api/available-teams")
	second, _ := do(t, router, "/api/available-teams")

	if mock.Calls != 1 {
		t.Errorf("engine calls = %d, want 1", mock.Calls)
	}
	if first.Header().Get("X-Cache") != "MISS" || second.Header().Get("X-Cache") != "HIT" {
		t.Errorf("X-Cache = %q then %q", first.Header().Get("X-Cache"), second.Header().Get("X-Cache"))
	}
	if first.Body.String() != second.Body.String() {
		t.Errorf("cached body differs:\n%s\n%s", first.Body.String(), second.Body.String())
	}
	if _, ok := redisClient.store["wc:snap-1:/api/available-teams"]; !ok {
		t.Errorf("cache keys = %v", redisClient.store)
	}

	// Equivalent queries share one entry once defaults are applied.
	do(t, router, "/api/top-teams")
	do(t, router, "/api/top-teams?limit=10&metric=wins")
	if mock.Calls != 2 {
		t.Errorf("engine calls = %d, want 2", mock.Calls)
	}
	if _, ok := redisClient.store["wc:snap-1:/api/top-teams?limit=10&metric=wins"]; !ok {
		t.Errorf("cache keys = %v", redisClient.store)
	}
}

func TestResponseCacheSkipsErrors(t *testing.T) {
	mock := &MockAnalyticsService{
		TeamComparisonFunc: func(team1, team2 string) (models.TeamComparison, string, error) {
			return models.TeamComparison{}, "", &logic.UnknownTeamError{Team: team1}
		},
	}
	redisClient := NewMockRedisClient()
	h := newTestHandler(mock, NewRedisCache(redisClient))

	do(t, h.Routes(nil), "/api/team-comparison?team1=Atlantis")
	if len(redisClient.store) != 0 {
		t.Errorf("error response was cached: %v", redisClient.store)
	}
}

func TestResponseCacheFailureFallsThrough(t *testing.T) {
	mock := &MockAnalyticsService{}
	redisClient := NewMockRedisClient()
	redisClient.GetErr = errors.New("connection refused")
	h := newTestHandler(mock, NewRedisCache(redisClient))

	w, env := do(t, h.Routes(nil), "/api/available-teams")
	if w.Code != http.StatusOK || !env.Success {
		t.Fatalf("status = %v, envelope = %+v", w.Code, env)
	}
	if mock.Calls != 1 {
		t.Errorf("engine calls = %d, want 1", mock.Calls)
	}
}

func TestRoutes(t *testing.T) {
	h := newTestHandler(&MockAnalyticsService{}, nil)
	router := h.Routes([]string{"http://localhost:3000"})

	tests := []struct {
		path           string
		expectedStatus int
		expectedBody   string
	}{
		{"/health", http.StatusOK, `"status":"ok"`},
		{"/ready", http.StatusOK, `"ready":true`},
		{"/metrics", http.StatusOK, "worldcup_dataset_rows"},
		{"/swagger/doc.json", http.StatusOK, `"/api/top-teams"`},
		{"/nope", http.StatusNotFound, `"success":false`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest("GET", tt.path, nil))
			if w.Code != tt.expectedStatus {
				t.Errorf("status = %v, want %v", w.Code, tt.expectedStatus)
			}
			if !strings.Contains(w.Body.String(), tt.expectedBody) {
				t.Errorf("body does not contain %s", tt.expectedBody)
			}
		})
	}
}

func TestCORS(t *testing.T) {
	h := newTestHandler(&MockAnalyticsService{}, nil)
	router := h.Routes([]string{"http://localhost:3000"})

	req := httptest.NewRequest("GET", "/api/available-teams", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

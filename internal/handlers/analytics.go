package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/worldcup/stats-api/internal/logic"
	"github.com/worldcup/stats-api/internal/models"
)

// query is one engine call reduced to its envelope parts.
type query func() (interface{}, string, error)

// serve answers from the response cache when possible, otherwise runs q inside a span and
// renders the envelope. Only successful envelopes are cached.
func (h *Handler) serve(w http.ResponseWriter, r *http.Request, op string, params url.Values, metric string, q query) {
	ctx := r.Context()
	key := h.cacheKey(r.URL.Path, params)

	if h.cache != nil {
		body, err := h.cache.Get(ctx, key)
		switch {
		case err != nil:
			cacheLookups.WithLabelValues("error").Inc()
			h.logger.Warnw("cache read failed", "key", key, "error", err)
		case body != nil:
			cacheLookups.WithLabelValues("hit").Inc()
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Cache", "HIT")
			w.WriteHeader(http.StatusOK)
			w.Write(body)
			return
		default:
			cacheLookups.WithLabelValues("miss").Inc()
		}
	}

	data, insight, err := h.run(ctx, op, params, q)
	if err != nil {
		h.queryError(w, op, err)
		return
	}

	body, err := json.Marshal(models.Envelope{Success: true, Data: data, Insight: insight, Metric: metric})
	if err != nil {
		h.queryError(w, op, err)
		return
	}
	body = append(body, '\n')

	if h.cache != nil {
		if err := h.cache.Set(ctx, key, body, h.cacheTTL); err != nil {
			h.logger.Warnw("cache write failed", "key", key, "error", err)
		}
		w.Header().Set("X-Cache", "MISS")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func (h *Handler) run(ctx context.Context, op string, params url.Values, q query) (interface{}, string, error) {
	_, span := h.tracer.Start(ctx, "engine."+op, trace.WithAttributes(
		attribute.String("worldcup.operation", op),
		attribute.String("worldcup.params", params.Encode()),
	))
	defer span.End()

	start := time.Now()
	data, insight, err := q()
	queryDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return data, insight, err
}

// GetGoalsPerWorldCup returns goal totals per edition
// @Summary Goals per World Cup
// @Description Total goals and average goals per match for every edition, computed from match rows
// @Tags Analytics
// @Produce json
// @Success 200 {object} models.Envelope{data=[]models.WorldCupGoals}
// @Failure 500 {object} models.Envelope
// @Router /api/goals-per-worldcup [get]
func (h *Handler) GetGoalsPerWorldCup(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "goals_per_worldcup", nil, "", func() (interface{}, string, error) {
		return h.engine.GoalsPerWorldCup()
	})
}

// GetTopTeams ranks teams by wins, goals or titles
// @Summary Top teams
// @Tags Analytics
// @Produce json
// @Param metric query string false "Ranking metric" Enums(wins, goals, titles) default(wins)
// @Param limit query int false "Number of teams" default(10)
// @Success 200 {object} models.Envelope{data=[]models.TeamRanking}
// @Failure 400 {object} models.Envelope
// @Router /api/top-teams [get]
func (h *Handler) GetTopTeams(w http.ResponseWriter, r *http.Request) {
	req := models.TopTeamsRequest{Metric: logic.MetricWins, Limit: logic.DefaultTopTeamsLimit}
	if m := r.URL.Query().Get("metric"); m != "" {
		req.Metric = m
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil {
			h.errorResponse(w, http.StatusBadRequest, logic.ErrInvalidParameter.Error()+": limit must be an integer, got "+strconv.Quote(l))
			return
		}
		req.Limit = parsed
	}
	if err := h.validate(req); err != nil {
		h.queryError(w, "top_teams", err)
		return
	}

	params := url.Values{"metric": {req.Metric}, "limit": {strconv.Itoa(req.Limit)}}
	h.serve(w, r, "top_teams", params, req.Metric, func() (interface{}, string, error) {
		return h.engine.TopTeams(req.Metric, req.Limit)
	})
}

// GetGoalsByStage compares group and knockout scoring
// @Summary Goals by stage
// @Description Average goals per match in group and knockout matches, per year and overall
// @Tags Analytics
// @Produce json
// @Success 200 {object} models.Envelope{data=models.StageBreakdown}
// @Router /api/goals-by-stage [get]
func (h *Handler) GetGoalsByStage(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "goals_by_stage", nil, "", func() (interface{}, string, error) {
		return h.engine.GoalsByStage()
	})
}

// GetGoalsByContinent totals goals per continent
// @Summary Goals by continent
// @Tags Analytics
// @Produce json
// @Param basis query string false "Attribute goals to the host country or to each scoring team" Enums(host, team) default(host)
// @Success 200 {object} models.Envelope{data=[]models.ContinentGoals}
// @Failure 400 {object} models.Envelope
// @Router /api/goals-by-continent [get]
func (h *Handler) GetGoalsByContinent(w http.ResponseWriter, r *http.Request) {
	req := models.ContinentRequest{Basis: logic.BasisHost}
	if b := r.URL.Query().Get("basis"); b != "" {
		req.Basis = b
	}
	if err := h.validate(req); err != nil {
		h.queryError(w, "goals_by_continent", err)
		return
	}

	params := url.Values{"basis": {req.Basis}}
	h.serve(w, r, "goals_by_continent", params, "", func() (interface{}, string, error) {
		return h.engine.GoalsByContinent(req.Basis)
	})
}

// GetTeamComparison compares two teams head to head
// @Summary Team comparison
// @Description Full records of two teams plus their head-to-head tally. Names are case-sensitive.
// @Tags Analytics
// @Produce json
// @Param team1 query string false "First team" default(Brazil)
// @Param team2 query string false "Second team" default(Germany)
// @Success 200 {object} models.Envelope{data=models.TeamComparison}
// @Failure 400 {object} models.Envelope
// @Failure 404 {object} models.Envelope "Unknown team"
// @Router /api/team-comparison [get]
func (h *Handler) GetTeamComparison(w http.ResponseWriter, r *http.Request) {
	req := models.TeamComparisonRequest{Team1: "Brazil", Team2: "Germany"}
	q := r.URL.Query()
	if q.Has("team1") {
		req.Team1 = q.Get("team1")
	}
	if q.Has("team2") {
		req.Team2 = q.Get("team2")
	}
	if err := h.validate(req); err != nil {
		h.queryError(w, "team_comparison", err)
		return
	}

	params := url.Values{"team1": {req.Team1}, "team2": {req.Team2}}
	h.serve(w, r, "team_comparison", params, "", func() (interface{}, string, error) {
		return h.engine.TeamComparison(req.Team1, req.Team2)
	})
}

// GetMatchesPerYear returns the tournament table
// @Summary Matches per year
// @Tags Analytics
// @Produce json
// @Success 200 {object} models.Envelope{data=[]models.TournamentSummary}
// @Router /api/matches-per-year [get]
func (h *Handler) GetMatchesPerYear(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "matches_per_year", nil, "", func() (interface{}, string, error) {
		return h.engine.MatchesPerYear()
	})
}

// GetAvailableTeams lists every team in the match table
// @Summary Available teams
// @Tags Analytics
// @Produce json
// @Success 200 {object} models.Envelope{data=[]string}
// @Router /api/available-teams [get]
func (h *Handler) GetAvailableTeams(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "available_teams", nil, "", func() (interface{}, string, error) {
		return h.engine.AvailableTeams()
	})
}

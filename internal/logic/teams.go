package logic

import (
	"fmt"
	"sort"

	"github.com/worldcup/stats-api/internal/models"
)

// Ranking metrics accepted by TopTeams.
const (
	MetricWins   = "wins"
	MetricGoals  = "goals"
	MetricTitles = "titles"
)

// DefaultTopTeamsLimit is applied by callers that receive no limit.
const DefaultTopTeamsLimit = 10

func metricValue(metric string, r models.TeamRanking) int {
	switch metric {
	case MetricWins:
		return r.Wins
	case MetricGoals:
		return r.GoalsScored
	default:
		return r.Titles
	}
}

// TopTeams ranks every team that appears in the match table by metric, descending, with ties
// broken by team name ascending.
func (e *Engine) TopTeams(metric string, limit int) ([]models.TeamRanking, string, error) {
	switch metric {
	case MetricWins, MetricGoals, MetricTitles:
	default:
		return nil, "", invalidParameter("metric must be one of wins, goals, titles, got %q", metric)
	}
	if limit <= 0 {
		return nil, "", invalidParameter("limit must be positive, got %d", limit)
	}

	all := make([]models.TeamRanking, 0, len(e.teamNames))
	for _, name := range e.teamNames {
		t := e.teams[name]
		all = append(all, models.TeamRanking{
			Team:        name,
			Wins:        t.wins,
			GoalsScored: t.scored,
			Titles:      t.titles,
			Matches:     t.matches,
		})
	}
	// teamNames is already sorted, so a stable sort keeps the name order within ties.
	sort.SliceStable(all, func(i, j int) bool {
		return metricValue(metric, all[i]) > metricValue(metric, all[j])
	})

	if limit < len(all) {
		all = all[:limit]
	}
	for i := range all {
		all[i].Rank = i + 1
	}

	if len(all) == 0 {
		return all, "No teams to rank.", nil
	}
	insight := fmt.Sprintf("%s leads with %s.", all[0].Team, metricNoun(metric, metricValue(metric, all[0])))
	return all, insight, nil
}

// TeamComparison puts two teams' full records side by side with their head-to-head tally.
// Names are matched exactly.
func (e *Engine) TeamComparison(team1, team2 string) (models.TeamComparison, string, error) {
	for _, name := range []string{team1, team2} {
		if _, ok := e.teams[name]; !ok {
			return models.TeamComparison{}, "", &UnknownTeamError{Team: name}
		}
	}

	out := models.TeamComparison{
		Team1: e.record(team1),
		Team2: e.record(team2),
	}
	for _, m := range e.matches {
		if !(m.HomeTeam == team1 && m.AwayTeam == team2) && !(m.HomeTeam == team2 && m.AwayTeam == team1) {
			continue
		}
		out.HeadToHead.Matches++
		switch m.Winner() {
		case team1:
			out.HeadToHead.Team1Wins++
		case team2:
			out.HeadToHead.Team2Wins++
		default:
			out.HeadToHead.Draws++
		}
	}

	h := out.HeadToHead
	if h.Matches == 0 {
		return out, fmt.Sprintf("%s and %s have never met at a World Cup.", team1, team2), nil
	}
	insight := fmt.Sprintf("In %s between them, %s won %d, %s won %d and %d ended level.",
		plural(h.Matches, "meeting", "meetings"), team1, h.Team1Wins, team2, h.Team2Wins, h.Draws)
	switch {
	case h.Team1Wins > h.Team2Wins:
		insight += fmt.Sprintf(" %s leads the head-to-head.", team1)
	case h.Team2Wins > h.Team1Wins:
		insight += fmt.Sprintf(" %s leads the head-to-head.", team2)
	default:
		insight += " The head-to-head is even."
	}
	return out, insight, nil
}

func (e *Engine) record(team string) models.TeamRecord {
	t := e.teams[team]
	r := models.TeamRecord{
		Team:          team,
		Matches:       t.matches,
		Wins:          t.wins,
		Draws:         t.draws,
		Losses:        t.losses,
		GoalsScored:   t.scored,
		GoalsConceded: t.conceded,
		Titles:        t.titles,
		Finals:        t.finals,
	}
	if t.matches > 0 {
		r.WinRate = round1(float64(t.wins) / float64(t.matches) * 100)
	}
	return r
}

// AvailableTeams lists every distinct home or away team, alphabetically.
func (e *Engine) AvailableTeams() ([]string, string, error) {
	out := append([]string(nil), e.teamNames...)
	if out == nil {
		out = []string{}
	}
	return out, fmt.Sprintf("The match table lists %s.", plural(len(out), "team", "teams")), nil
}

package logic

import (
	"fmt"
	"sort"
	"strings"

	"github.com/worldcup/stats-api/internal/models"
)

// GoalsPerWorldCup returns one record per tournament, ordered by year. Totals and averages
// are recomputed from the match rows rather than taken from the tournament table.
func (e *Engine) GoalsPerWorldCup() ([]models.WorldCupGoals, string, error) {
	out := make([]models.WorldCupGoals, 0, len(e.tournament))
	best := -1
	for _, t := range e.tournament {
		row := models.WorldCupGoals{Year: t.Year, Host: t.Host, Winner: t.Winner}
		if y, ok := e.perYear[t.Year]; ok {
			row.Matches = y.matches
			row.TotalGoals = y.goals
			row.AvgGoalsPerMatch = round2(average(y.goals, y.matches))
		}
		if row.Matches > 0 && (best < 0 || row.AvgGoalsPerMatch > out[best].AvgGoalsPerMatch) {
			best = len(out)
		}
		out = append(out, row)
	}

	if best < 0 {
		return out, "No matches have been recorded for any World Cup yet.", nil
	}
	top := out[best]
	insight := fmt.Sprintf("The %d World Cup in %s holds the record for goals per match (%.2f across %s).",
		top.Year, top.Host, top.AvgGoalsPerMatch, plural(top.Matches, "match", "matches"))
	return out, insight, nil
}

// GoalsByStage splits every year's matches into group and knockout buckets. The three slices
// are parallel; an empty bucket reports 0.
func (e *Engine) GoalsByStage() (models.StageBreakdown, string, error) {
	out := models.StageBreakdown{
		Years:       make([]int, 0, len(e.years)),
		GroupAvg:    make([]float64, 0, len(e.years)),
		KnockoutAvg: make([]float64, 0, len(e.years)),
		Overall: models.StageOverall{
			Group:    round2(average(e.overall.groupGoals, e.overall.groupMatches)),
			Knockout: round2(average(e.overall.knockoutGoals, e.overall.knockMatches)),
		},
	}
	for _, year := range e.years {
		y := e.perYear[year]
		out.Years = append(out.Years, year)
		out.GroupAvg = append(out.GroupAvg, round2(average(y.groupGoals, y.groupMatches)))
		out.KnockoutAvg = append(out.KnockoutAvg, round2(average(y.knockoutGoals, y.knockMatches)))
	}

	g, k := out.Overall.Group, out.Overall.Knockout
	var insight string
	switch {
	case e.overall.matches == 0:
		insight = "No matches have been recorded yet."
	case e.overall.groupMatches == 0:
		insight = fmt.Sprintf("Knockout matches average %.2f goals; no group stage matches have been recorded.", k)
	case e.overall.knockMatches == 0:
		insight = fmt.Sprintf("Group stage matches average %.2f goals; no knockout matches have been recorded.", g)
	case g == k:
		insight = fmt.Sprintf("Group stage and knockout matches both average %.2f goals per match.", g)
	case g > k:
		insight = fmt.Sprintf("Group stage matches average %.2f goals while knockout matches average %.2f, %.2f more goals per match in the group stage.",
			g, k, round2(g-k))
	default:
		insight = fmt.Sprintf("Knockout matches average %.2f goals while group stage matches average %.2f, %.2f more goals per match once elimination is at stake.",
			k, g, round2(k-g))
	}
	return out, insight, nil
}

// GoalsByContinent totals match goals per continent. With BasisHost (the default) a match's
// goals go to the continent of its host country, falling back to the tournament host when the
// match row has none. With BasisTeam each side's goals go to that team's continent.
func (e *Engine) GoalsByContinent(basis string) ([]models.ContinentGoals, string, error) {
	if basis == "" {
		basis = BasisHost
	}

	totals := make(map[string]int)
	switch basis {
	case BasisHost:
		for _, m := range e.matches {
			host := m.Host
			if host == "" {
				host = e.byYear[m.Year].Host
			}
			totals[continentOf(e.continents, host)] += m.TotalGoals()
		}
	case BasisTeam:
		for _, m := range e.matches {
			totals[continentOf(e.continents, m.HomeTeam)] += m.HomeGoals
			totals[continentOf(e.continents, m.AwayTeam)] += m.AwayGoals
		}
	default:
		return nil, "", invalidParameter("basis must be one of %s, got %q", strings.Join([]string{BasisHost, BasisTeam}, ", "), basis)
	}

	grand := 0
	out := make([]models.ContinentGoals, 0, len(totals))
	for continent, goals := range totals {
		grand += goals
		out = append(out, models.ContinentGoals{Continent: continent, Goals: goals})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Goals != out[j].Goals {
			return out[i].Goals > out[j].Goals
		}
		return out[i].Continent < out[j].Continent
	})
	for i := range out {
		if grand > 0 {
			out[i].Share = round1(float64(out[i].Goals) / float64(grand) * 100)
		}
	}

	if grand == 0 {
		return out, "No goals have been recorded yet.", nil
	}
	top := out[0]
	insight := fmt.Sprintf("%s leads with %s, %.1f%% of all World Cup goals.",
		top.Continent, plural(top.Goals, "goal", "goals"), top.Share)
	return out, insight, nil
}

// MatchesPerYear returns the tournament table as stored, ordered by year.
func (e *Engine) MatchesPerYear() ([]models.TournamentSummary, string, error) {
	out := make([]models.TournamentSummary, 0, len(e.tournament))
	for _, t := range e.tournament {
		out = append(out, models.TournamentSummary{
			Year:         t.Year,
			Host:         t.Host,
			Winner:       t.Winner,
			RunnerUp:     t.RunnerUp,
			TotalMatches: t.Matches,
			TotalGoals:   t.Goals,
		})
	}

	var insight string
	switch len(out) {
	case 0:
		insight = "No tournaments have been loaded."
	case 1:
		insight = fmt.Sprintf("The %d World Cup was played over %s.", out[0].Year, plural(out[0].TotalMatches, "match", "matches"))
	default:
		first, last := out[0], out[len(out)-1]
		insight = fmt.Sprintf("The tournament has grown from %s in %d to %s in %d.",
			plural(first.TotalMatches, "match", "matches"), first.Year,
			plural(last.TotalMatches, "match", "matches"), last.Year)
	}
	return out, insight, nil
}

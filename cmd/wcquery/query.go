package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/worldcup/stats-api/internal/logic"
	"github.com/worldcup/stats-api/internal/models"
)

type command struct {
	usage string
	run   func(e logic.AnalyticsService, p params) (interface{}, string, string, error)
}

// params holds key=value arguments.
type params map[string]string

func (p params) get(key, fallback string) string {
	if v, ok := p[key]; ok {
		return v
	}
	return fallback
}

var commands = map[string]command{
	"goals-per-worldcup": {
		usage: "goals-per-worldcup",
		run: func(e logic.AnalyticsService, _ params) (interface{}, string, string, error) {
			data, insight, err := e.GoalsPerWorldCup()
			return data, insight, "", err
		},
	},
	"top-teams": {
		usage: "top-teams [metric=wins|goals|titles] [limit=10]",
		run: func(e logic.AnalyticsService, p params) (interface{}, string, string, error) {
			metric := p.get("metric", logic.MetricWins)
			limit, err := strconv.Atoi(p.get("limit", strconv.Itoa(logic.DefaultTopTeamsLimit)))
			if err != nil {
				return nil, "", "", fmt.Errorf("%w: limit must be an integer", logic.ErrInvalidParameter)
			}
			data, insight, err := e.TopTeams(metric, limit)
			return data, insight, metric, err
		},
	},
	"goals-by-stage": {
		usage: "goals-by-stage",
		run: func(e logic.AnalyticsService, _ params) (interface{}, string, string, error) {
			data, insight, err := e.GoalsByStage()
			return data, insight, "", err
		},
	},
	"goals-by-continent": {
		usage: "goals-by-continent [basis=host|team]",
		run: func(e logic.AnalyticsService, p params) (interface{}, string, string, error) {
			data, insight, err := e.GoalsByContinent(p.get("basis", logic.BasisHost))
			return data, insight, "", err
		},
	},
	"team-comparison": {
		usage: "team-comparison [team1=Brazil] [team2=Germany]",
		run: func(e logic.AnalyticsService, p params) (interface{}, string, string, error) {
			data, insight, err := e.TeamComparison(p.get("team1", "Brazil"), p.get("team2", "Germany"))
			return data, insight, "", err
		},
	},
	"matches-per-year": {
		usage: "matches-per-year",
		run: func(e logic.AnalyticsService, _ params) (interface{}, string, string, error) {
			data, insight, err := e.MatchesPerYear()
			return data, insight, "", err
		},
	},
	"available-teams": {
		usage: "available-teams",
		run: func(e logic.AnalyticsService, _ params) (interface{}, string, string, error) {
			data, insight, err := e.AvailableTeams()
			return data, insight, "", err
		},
	},
}

// usage lists every command, sorted.
func usage() string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString("Commands:\n")
	for _, name := range names {
		sb.WriteString("  " + commands[name].usage + "\n")
	}
	sb.WriteString("  help\n  exit\n")
	return sb.String()
}

// execute runs one command line against the engine. Arguments after the command name are
// key=value pairs; a value may contain spaces when the argument is quoted by the shell.
func execute(e logic.AnalyticsService, args []string) models.Envelope {
	if len(args) == 0 {
		return models.Envelope{Error: "no command given"}
	}
	cmd, ok := commands[args[0]]
	if !ok {
		return models.Envelope{Error: fmt.Sprintf("unknown command %q", args[0])}
	}

	p := params{}
	for _, arg := range args[1:] {
		key, value, found := strings.Cut(arg, "=")
		if !found {
			return models.Envelope{Error: fmt.Sprintf("%s: expected key=value, got %q", logic.ErrInvalidParameter, arg)}
		}
		p[key] = value
	}

	data, insight, metric, err := cmd.run(e, p)
	if err != nil {
		return models.Envelope{Error: err.Error()}
	}
	return models.Envelope{Success: true, Data: data, Insight: insight, Metric: metric}
}

// splitLine tokenizes a REPL line, honouring double quotes so team names with spaces survive.
func splitLine(line string) []string {
	var (
		out     []string
		cur     strings.Builder
		quoted  bool
		hasWord bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
			hasWord = true
		case (r == ' ' || r == '\t') && !quoted:
			if hasWord {
				out = append(out, cur.String())
				cur.Reset()
				hasWord = false
			}
		default:
			cur.WriteRune(r)
			hasWord = true
		}
	}
	if hasWord {
		out = append(out, cur.String())
	}
	return out
}

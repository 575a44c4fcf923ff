package logic

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/worldcup/stats-api/internal/models"
	"github.com/worldcup/stats-api/internal/store"
)

// Engine answers the aggregation queries over one loaded dataset. It is immutable after
// NewEngine returns and safe for concurrent use without locking.
type Engine struct {
	snapshot   models.Snapshot
	matches    []models.Match
	tournament []models.Tournament // ordered by year
	byYear     map[int]models.Tournament
	years      []int // distinct match years, ascending
	perYear    map[int]*yearTally
	teams      map[string]*teamTally
	teamNames  []string
	overall    yearTally
	continents map[string]string
}

type teamTally struct {
	matches  int
	wins     int
	draws    int
	losses   int
	scored   int
	conceded int
	titles   int
	finals   int
}

type yearTally struct {
	matches       int
	goals         int
	groupMatches  int
	groupGoals    int
	knockMatches  int
	knockoutGoals int
}

func (y *yearTally) add(m models.Match) {
	goals := m.TotalGoals()
	y.matches++
	y.goals += goals
	if m.Category() == models.StageGroup {
		y.groupMatches++
		y.groupGoals += goals
	} else {
		y.knockMatches++
		y.knockoutGoals += goals
	}
}

// Option customises an Engine.
type Option func(*Engine)

// WithContinents replaces the built-in country to continent table.
func WithContinents(table map[string]string) Option {
	return func(e *Engine) {
		e.continents = make(map[string]string, len(table))
		for k, v := range table {
			e.continents[k] = v
		}
	}
}

// NewEngine indexes ds and precomputes the per-year and per-team tallies. Cross-table
// invariant violations are reported as store.ErrDataLoad.
func NewEngine(ds *store.Dataset, logger *zap.Logger, opts ...Option) (*Engine, error) {
	if ds == nil {
		return nil, fmt.Errorf("%w: no dataset", store.ErrDataLoad)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	e := &Engine{
		matches:    append([]models.Match(nil), ds.Matches...),
		tournament: append([]models.Tournament(nil), ds.Tournaments...),
		byYear:     make(map[int]models.Tournament, len(ds.Tournaments)),
		perYear:    make(map[int]*yearTally),
		teams:      make(map[string]*teamTally),
		continents: defaultContinents,
	}
	for _, opt := range opts {
		opt(e)
	}

	sort.SliceStable(e.tournament, func(i, j int) bool { return e.tournament[i].Year < e.tournament[j].Year })
	for _, t := range e.tournament {
		if _, dup := e.byYear[t.Year]; dup {
			return nil, fmt.Errorf("%w: duplicate tournament year %d", store.ErrDataLoad, t.Year)
		}
		e.byYear[t.Year] = t
	}

	for i, m := range e.matches {
		if _, ok := e.byYear[m.Year]; !ok {
			return nil, fmt.Errorf("%w: match row %d references unknown tournament year %d", store.ErrDataLoad, i+1, m.Year)
		}
		y, ok := e.perYear[m.Year]
		if !ok {
			y = &yearTally{}
			e.perYear[m.Year] = y
			e.years = append(e.years, m.Year)
		}
		y.add(m)
		e.overall.add(m)

		e.tallyTeam(m, m.HomeTeam)
		e.tallyTeam(m, m.AwayTeam)
	}
	sort.Ints(e.years)

	for _, t := range e.tournament {
		if team, ok := e.teams[t.Winner]; ok {
			team.titles++
			team.finals++
		}
		if team, ok := e.teams[t.RunnerUp]; ok && t.RunnerUp != t.Winner {
			team.finals++
		}
	}

	e.teamNames = make([]string, 0, len(e.teams))
	for name := range e.teams {
		e.teamNames = append(e.teamNames, name)
	}
	sort.Strings(e.teamNames)

	e.snapshot = models.Snapshot{
		ID:          fingerprint(e.matches, e.tournament).String(),
		Source:      ds.Source,
		Matches:     len(e.matches),
		Tournaments: len(e.tournament),
		Teams:       len(e.teamNames),
		LoadedAt:    ds.LoadedAt,
	}
	if e.snapshot.LoadedAt.IsZero() {
		e.snapshot.LoadedAt = time.Now().UTC()
	}

	logger.Sugar().Infow("aggregation engine ready",
		"snapshot", e.snapshot.ID,
		"source", e.snapshot.Source,
		"matches", e.snapshot.Matches,
		"tournaments", e.snapshot.Tournaments,
		"teams", e.snapshot.Teams,
	)
	return e, nil
}

func (e *Engine) tallyTeam(m models.Match, team string) {
	t, ok := e.teams[team]
	if !ok {
		t = &teamTally{}
		e.teams[team] = t
	}
	scored, conceded := m.GoalsFor(team)
	t.matches++
	t.scored += scored
	t.conceded += conceded
	switch m.Winner() {
	case team:
		t.wins++
	case "":
		t.draws++
	default:
		t.losses++
	}
}

// Snapshot describes the dataset behind the engine. The ID is derived from the row
// content, so reloading identical tables yields the same ID.
func (e *Engine) Snapshot() models.Snapshot {
	return e.snapshot
}

func fingerprint(matches []models.Match, tournaments []models.Tournament) uuid.UUID {
	var buf bytes.Buffer
	for _, t := range tournaments {
		fmt.Fprintf(&buf, "t|%d|%s|%s|%s|%d|%d\n", t.Year, t.Host, t.Winner, t.RunnerUp, t.Matches, t.Goals)
	}
	for _, m := range matches {
		fmt.Fprintf(&buf, "m|%d|%s|%s|%s|%d|%d|%s\n", m.Year, m.Stage, m.HomeTeam, m.AwayTeam, m.HomeGoals, m.AwayGoals, m.Host)
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, buf.Bytes())
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func average(total, count int) float64 {
	if count == 0 {
		return 0
	}
	return float64(total) / float64(count)
}

// Package store loads the matches and tournaments tables from flat files or a warehouse and
// writes them back for seeding. Every load failure is reported as ErrDataLoad.
package store

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/worldcup/stats-api/internal/models"
)

// ErrDataLoad marks input tables that are missing or malformed. It is fatal at startup.
var ErrDataLoad = errors.New("data load failure")

// Source kinds accepted by Open.
const (
	SourceFile       = "file"
	SourcePostgres   = "postgres"
	SourceClickHouse = "clickhouse"
	SourceMySQL      = "mysql"
	SourceSQLite     = "sqlite"
	SourcePQ         = "pq"
)

// Dataset is the raw content of both tables, in source order.
type Dataset struct {
	Source      string
	Matches     []models.Match
	Tournaments []models.Tournament
	LoadedAt    time.Time
}

// Source reads the raw tables from one backing store.
type Source interface {
	Name() string
	ReadMatches(ctx context.Context) ([]models.Match, error)
	ReadTournaments(ctx context.Context) ([]models.Tournament, error)
	Close() error
}

// Sink writes the raw tables; used by the seeder.
type Sink interface {
	EnsureSchema(ctx context.Context) error
	Reset(ctx context.Context) error
	WriteMatches(ctx context.Context, rows []models.Match) error
	WriteTournaments(ctx context.Context, rows []models.Tournament) error
}

// SinkCloser is a Sink that owns its connection.
type SinkCloser interface {
	Sink
	Close() error
}

// Options selects and configures a Source.
type Options struct {
	Kind             string
	DataDir          string
	MatchesFile      string
	TournamentsFile  string
	DatabaseURL      string
	ClickHouseURL    string
	MatchesTable     string
	TournamentsTable string
	Logger           *zap.Logger
}

func (o Options) logger() *zap.SugaredLogger {
	if o.Logger == nil {
		return zap.NewNop().Sugar()
	}
	return o.Logger.Sugar()
}

func (o Options) tables() (string, string) {
	matches, tournaments := o.MatchesTable, o.TournamentsTable
	if matches == "" {
		matches = "matches"
	}
	if tournaments == "" {
		tournaments = "tournaments"
	}
	return matches, tournaments
}

// Open returns the Source for opts.Kind. Connections are established eagerly so a bad DSN
// fails startup instead of the first load.
func Open(ctx context.Context, opts Options) (Source, error) {
	kind := strings.ToLower(strings.TrimSpace(opts.Kind))
	if kind == "" {
		kind = SourceFile
	}

	var (
		src Source
		err error
	)
	switch kind {
	case SourceFile:
		src, err = NewFileSource(opts)
	case SourcePostgres:
		src, err = NewPostgresSource(ctx, opts)
	case SourceClickHouse:
		src, err = NewClickHouseSource(ctx, opts)
	case SourceMySQL, SourceSQLite, SourcePQ:
		src, err = NewSQLSource(ctx, kind, opts)
	default:
		err = fmt.Errorf("unknown data source %q", opts.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataLoad, err)
	}
	return src, nil
}

// OpenSink opens a writable warehouse source for seeding. Flat files are read-only.
func OpenSink(ctx context.Context, opts Options) (SinkCloser, error) {
	src, err := Open(ctx, opts)
	if err != nil {
		return nil, err
	}
	sink, ok := src.(SinkCloser)
	if !ok {
		src.Close()
		return nil, fmt.Errorf("data source %q is read-only", src.Name())
	}
	return sink, nil
}

// Load reads both tables concurrently and validates every row.
func Load(ctx context.Context, src Source) (*Dataset, error) {
	ds := &Dataset{Source: src.Name()}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := src.ReadMatches(ctx)
		if err != nil {
			return fmt.Errorf("matches: %w", err)
		}
		ds.Matches = rows
		return nil
	})
	g.Go(func() error {
		rows, err := src.ReadTournaments(ctx)
		if err != nil {
			return fmt.Errorf("tournaments: %w", err)
		}
		ds.Tournaments = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDataLoad, src.Name(), err)
	}

	deriveAverages(ds.Tournaments)
	if err := ValidateRows(ds); err != nil {
		return nil, err
	}
	ds.LoadedAt = time.Now().UTC()
	return ds, nil
}

// deriveAverages fills avg_goals_per_match for sources that do not store it.
func deriveAverages(rows []models.Tournament) {
	for i := range rows {
		t := &rows[i]
		if t.AvgGoalsPerMatch == 0 && t.Matches > 0 {
			t.AvgGoalsPerMatch = math.Round(float64(t.Goals)/float64(t.Matches)*100) / 100
		}
	}
}

var validate = validator.New()

// ValidateRows checks per-row field constraints. Cross-table invariants are checked by the
// engine when it indexes the rows.
func ValidateRows(ds *Dataset) error {
	if len(ds.Tournaments) == 0 {
		return fmt.Errorf("%w: tournaments table is empty", ErrDataLoad)
	}
	for i := range ds.Tournaments {
		if err := validate.Struct(&ds.Tournaments[i]); err != nil {
			return fmt.Errorf("%w: tournament row %d: %s", ErrDataLoad, i+1, describe(err))
		}
	}
	for i := range ds.Matches {
		if err := validate.Struct(&ds.Matches[i]); err != nil {
			return fmt.Errorf("%w: match row %d: %s", ErrDataLoad, i+1, describe(err))
		}
	}
	return nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}

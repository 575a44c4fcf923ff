package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/worldcup/stats-api/internal/models"
)

// PostgresSource reads and writes the tables through a pgx connection pool.
type PostgresSource struct {
	pool             *pgxpool.Pool
	matchesTable     string
	tournamentsTable string
	rawMatches       string
	rawTournaments   string
	logger           *zap.SugaredLogger
}

func NewPostgresSource(ctx context.Context, opts Options) (*PostgresSource, error) {
	if opts.DatabaseURL == "" {
		return nil, fmt.Errorf("postgres: DATABASE_URL is required")
	}
	rawMatches, rawTournaments := opts.tables()
	matches, err := quoteTable(dialectPostgres, rawMatches)
	if err != nil {
		return nil, err
	}
	tournaments, err := quoteTable(dialectPostgres, rawTournaments)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.New(ctx, opts.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}

	return &PostgresSource{
		pool:             pool,
		matchesTable:     matches,
		tournamentsTable: tournaments,
		rawMatches:       rawMatches,
		rawTournaments:   rawTournaments,
		logger:           opts.logger(),
	}, nil
}

func (s *PostgresSource) Name() string { return SourcePostgres }

func (s *PostgresSource) ReadMatches(ctx context.Context) ([]models.Match, error) {
	rows, err := s.pool.Query(ctx, selectMatchesSQL(s.matchesTable))
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	matches, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Match, error) {
		var m models.Match
		err := row.Scan(&m.Year, &m.Stage, &m.HomeTeam, &m.AwayTeam, &m.HomeGoals, &m.AwayGoals, &m.Host, &m.Attendance)
		return trimMatch(m), err
	})
	if err != nil {
		return nil, fmt.Errorf("scan matches: %w", err)
	}
	return matches, nil
}

func (s *PostgresSource) ReadTournaments(ctx context.Context) ([]models.Tournament, error) {
	rows, err := s.pool.Query(ctx, selectTournamentsSQL(s.tournamentsTable))
	if err != nil {
		return nil, fmt.Errorf("query tournaments: %w", err)
	}
	tournaments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Tournament, error) {
		var t models.Tournament
		err := row.Scan(&t.Year, &t.Host, &t.Winner, &t.RunnerUp, &t.Matches, &t.Goals, &t.AvgGoalsPerMatch)
		return trimTournament(t), err
	})
	if err != nil {
		return nil, fmt.Errorf("scan tournaments: %w", err)
	}
	return tournaments, nil
}

func (s *PostgresSource) EnsureSchema(ctx context.Context) error {
	for _, stmt := range createTableSQL(dialectPostgres, s.matchesTable, s.tournamentsTable) {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			s.logger.Errorw("failed to execute schema", "db", "PostgreSQL", "error", err)
			return err
		}
	}
	return nil
}

func (s *PostgresSource) Reset(ctx context.Context) error {
	for _, table := range []string{s.matchesTable, s.tournamentsTable} {
		if _, err := s.pool.Exec(ctx, resetTableSQL(dialectPostgres, table)); err != nil {
			return fmt.Errorf("reset %s: %w", table, err)
		}
	}
	return nil
}

// WriteMatches bulk-loads rows with the COPY protocol.
func (s *PostgresSource) WriteMatches(ctx context.Context, rows []models.Match) error {
	_, err := s.pool.CopyFrom(ctx, identifier(s.rawMatches), matchColumns,
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			return matchValues(rows[i]), nil
		}))
	if err != nil {
		return fmt.Errorf("copy matches: %w", err)
	}
	return nil
}

func (s *PostgresSource) WriteTournaments(ctx context.Context, rows []models.Tournament) error {
	_, err := s.pool.CopyFrom(ctx, identifier(s.rawTournaments), tournamentColumns,
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			return tournamentValues(rows[i]), nil
		}))
	if err != nil {
		return fmt.Errorf("copy tournaments: %w", err)
	}
	return nil
}

func (s *PostgresSource) Close() error {
	s.pool.Close()
	return nil
}

func identifier(name string) pgx.Identifier {
	return pgx.Identifier(strings.Split(name, "."))
}

func trimMatch(m models.Match) models.Match {
	m.Stage = strings.TrimSpace(m.Stage)
	m.HomeTeam = strings.TrimSpace(m.HomeTeam)
	m.AwayTeam = strings.TrimSpace(m.AwayTeam)
	m.Host = strings.TrimSpace(m.Host)
	return m
}

func trimTournament(t models.Tournament) models.Tournament {
	t.Host = strings.TrimSpace(t.Host)
	t.Winner = strings.TrimSpace(t.Winner)
	t.RunnerUp = strings.TrimSpace(t.RunnerUp)
	return t
}

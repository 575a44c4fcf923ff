package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/worldcup/stats-api/internal/models"
)

// SQLSource reads and writes the tables through database/sql. It serves MySQL, SQLite and
// PostgreSQL via lib/pq for deployments that cannot use the pgx pool.
type SQLSource struct {
	db               *sql.DB
	dialect          dialect
	matchesTable     string
	tournamentsTable string
	logger           *zap.SugaredLogger
}

var driverNames = map[string]string{
	SourceMySQL:  "mysql",
	SourceSQLite: "sqlite3",
	SourcePQ:     "postgres",
}

func NewSQLSource(ctx context.Context, kind string, opts Options) (*SQLSource, error) {
	driverName, ok := driverNames[kind]
	if !ok {
		return nil, fmt.Errorf("no database/sql driver for %q", kind)
	}
	if opts.DatabaseURL == "" {
		return nil, fmt.Errorf("%s: DATABASE_URL is required", kind)
	}

	db, err := sql.Open(driverName, opts.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", kind, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s ping: %w", kind, err)
	}
	return newSQLSource(db, dialect(kind), opts)
}

func newSQLSource(db *sql.DB, d dialect, opts Options) (*SQLSource, error) {
	rawMatches, rawTournaments := opts.tables()
	matches, err := quoteTable(d, rawMatches)
	if err != nil {
		return nil, err
	}
	tournaments, err := quoteTable(d, rawTournaments)
	if err != nil {
		return nil, err
	}
	return &SQLSource{
		db:               db,
		dialect:          d,
		matchesTable:     matches,
		tournamentsTable: tournaments,
		logger:           opts.logger(),
	}, nil
}

func (s *SQLSource) Name() string { return string(s.dialect) }

func (s *SQLSource) ReadMatches(ctx context.Context) ([]models.Match, error) {
	rows, err := s.db.QueryContext(ctx, selectMatchesSQL(s.matchesTable))
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		var m models.Match
		if err := rows.Scan(&m.Year, &m.Stage, &m.HomeTeam, &m.AwayTeam, &m.HomeGoals, &m.AwayGoals, &m.Host, &m.Attendance); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		matches = append(matches, trimMatch(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("match row iteration failed: %w", err)
	}
	return matches, nil
}

func (s *SQLSource) ReadTournaments(ctx context.Context) ([]models.Tournament, error) {
	rows, err := s.db.QueryContext(ctx, selectTournamentsSQL(s.tournamentsTable))
	if err != nil {
		return nil, fmt.Errorf("query tournaments: %w", err)
	}
	defer rows.Close()

	tournaments := make([]models.Tournament, 0)
	for rows.Next() {
		var t models.Tournament
		if err := rows.Scan(&t.Year, &t.Host, &t.Winner, &t.RunnerUp, &t.Matches, &t.Goals, &t.AvgGoalsPerMatch); err != nil {
			return nil, fmt.Errorf("scan tournament: %w", err)
		}
		tournaments = append(tournaments, trimTournament(t))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("tournament row iteration failed: %w", err)
	}
	return tournaments, nil
}

func (s *SQLSource) EnsureSchema(ctx context.Context) error {
	for _, stmt := range createTableSQL(s.dialect, s.matchesTable, s.tournamentsTable) {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			s.logger.Errorw("failed to execute schema", "db", s.dialect, "error", err)
			return err
		}
	}
	return nil
}

func (s *SQLSource) Reset(ctx context.Context) error {
	for _, table := range []string{s.matchesTable, s.tournamentsTable} {
		if _, err := s.db.ExecContext(ctx, resetTableSQL(s.dialect, table)); err != nil {
			return fmt.Errorf("reset %s: %w", table, err)
		}
	}
	return nil
}

func (s *SQLSource) WriteMatches(ctx context.Context, rows []models.Match) error {
	return s.insertAll(ctx, insertSQL(s.dialect, s.matchesTable, matchColumns), len(rows), func(i int) []interface{} {
		return matchValues(rows[i])
	})
}

func (s *SQLSource) WriteTournaments(ctx context.Context, rows []models.Tournament) error {
	return s.insertAll(ctx, insertSQL(s.dialect, s.tournamentsTable, tournamentColumns), len(rows), func(i int) []interface{} {
		return tournamentValues(rows[i])
	})
}

// insertAll runs one prepared INSERT per row inside a single transaction.
func (s *SQLSource) insertAll(ctx context.Context, query string, n int, values func(int) []interface{}) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		if _, err := stmt.ExecContext(ctx, values(i)...); err != nil {
			return fmt.Errorf("insert row %d: %w", i+1, err)
		}
	}
	return tx.Commit()
}

func (s *SQLSource) Close() error {
	return s.db.Close()
}

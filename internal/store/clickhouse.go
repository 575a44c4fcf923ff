package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"go.uber.org/zap"

	"github.com/worldcup/stats-api/internal/models"
)

// ClickHouseSource reads and writes the tables over the native ClickHouse protocol.
type ClickHouseSource struct {
	conn             driver.Conn
	matchesTable     string
	tournamentsTable string
	logger           *zap.SugaredLogger
}

func NewClickHouseSource(ctx context.Context, opts Options) (*ClickHouseSource, error) {
	if opts.ClickHouseURL == "" {
		return nil, fmt.Errorf("clickhouse: CLICKHOUSE_URL is required")
	}
	chOpts, err := clickhouse.ParseDSN(opts.ClickHouseURL)
	if err != nil {
		return nil, fmt.Errorf("clickhouse dsn: %w", err)
	}
	conn, err := clickhouse.Open(chOpts)
	if err != nil {
		return nil, fmt.Errorf("clickhouse: %w", err)
	}
	if err := conn.Ping(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("clickhouse ping: %w", err)
	}
	return newClickHouseSource(conn, opts)
}

func newClickHouseSource(conn driver.Conn, opts Options) (*ClickHouseSource, error) {
	rawMatches, rawTournaments := opts.tables()
	matches, err := quoteTable(dialectClickHouse, rawMatches)
	if err != nil {
		return nil, err
	}
	tournaments, err := quoteTable(dialectClickHouse, rawTournaments)
	if err != nil {
		return nil, err
	}
	return &ClickHouseSource{
		conn:             conn,
		matchesTable:     matches,
		tournamentsTable: tournaments,
		logger:           opts.logger(),
	}, nil
}

func (s *ClickHouseSource) Name() string { return SourceClickHouse }

func (s *ClickHouseSource) ReadMatches(ctx context.Context) ([]models.Match, error) {
	rows, err := s.conn.Query(ctx, `
		SELECT toInt64(year), stage, home_team, away_team,
			toInt64(home_goals), toInt64(away_goals), host, toInt64(attendance)
		FROM `+s.matchesTable+`
		ORDER BY year
	`)
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		var (
			m                                      models.Match
			year, homeGoals, awayGoals, attendance int64
		)
		if err := rows.Scan(&year, &m.Stage, &m.HomeTeam, &m.AwayTeam, &homeGoals, &awayGoals, &m.Host, &attendance); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		m.Year, m.HomeGoals, m.AwayGoals, m.Attendance = int(year), int(homeGoals), int(awayGoals), int(attendance)
		matches = append(matches, trimMatch(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("match row iteration failed: %w", err)
	}
	return matches, nil
}

func (s *ClickHouseSource) ReadTournaments(ctx context.Context) ([]models.Tournament, error) {
	// FINAL collapses ReplacingMergeTree duplicates left by repeated seeding
	rows, err := s.conn.Query(ctx, `
		SELECT toInt64(year), host, winner, runner_up,
			toInt64(matches), toInt64(goals), toFloat64(avg_goals_per_match)
		FROM `+s.tournamentsTable+` FINAL
		ORDER BY year
	`)
	if err != nil {
		return nil, fmt.Errorf("query tournaments: %w", err)
	}
	defer rows.Close()

	tournaments := make([]models.Tournament, 0)
	for rows.Next() {
		var (
			t                     models.Tournament
			year, matches, goals int64
		)
		if err := rows.Scan(&year, &t.Host, &t.Winner, &t.RunnerUp, &matches, &goals, &t.AvgGoalsPerMatch); err != nil {
			return nil, fmt.Errorf("scan tournament: %w", err)
		}
		t.Year, t.Matches, t.Goals = int(year), int(matches), int(goals)
		tournaments = append(tournaments, trimTournament(t))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("tournament row iteration failed: %w", err)
	}
	return tournaments, nil
}

func (s *ClickHouseSource) EnsureSchema(ctx context.Context) error {
	for _, stmt := range createTableSQL(dialectClickHouse, s.matchesTable, s.tournamentsTable) {
		if err := s.conn.Exec(ctx, stmt); err != nil {
			s.logger.Warnw("statement execution warning", "db", "ClickHouse", "error", err, "statement", firstLine(stmt))
			return err
		}
	}
	return nil
}

func (s *ClickHouseSource) Reset(ctx context.Context) error {
	for _, table := range []string{s.matchesTable, s.tournamentsTable} {
		if err := s.conn.Exec(ctx, resetTableSQL(dialectClickHouse, table)); err != nil {
			return fmt.Errorf("reset %s: %w", table, err)
		}
	}
	return nil
}

func (s *ClickHouseSource) WriteMatches(ctx context.Context, rows []models.Match) error {
	batch, err := s.conn.PrepareBatch(ctx, "INSERT INTO "+s.matchesTable+" ("+strings.Join(matchColumns, ", ")+")")
	if err != nil {
		return err
	}
	for _, m := range rows {
		if err := batch.Append(
			int32(m.Year), m.Stage, m.HomeTeam, m.AwayTeam,
			int32(m.HomeGoals), int32(m.AwayGoals), m.Host, int32(m.Attendance),
		); err != nil {
			batch.Abort()
			return fmt.Errorf("append match: %w", err)
		}
	}
	return batch.Send()
}

func (s *ClickHouseSource) WriteTournaments(ctx context.Context, rows []models.Tournament) error {
	batch, err := s.conn.PrepareBatch(ctx, "INSERT INTO "+s.tournamentsTable+" ("+strings.Join(tournamentColumns, ", ")+")")
	if err != nil {
		return err
	}
	for _, t := range rows {
		if err := batch.Append(
			int32(t.Year), t.Host, t.Winner, t.RunnerUp,
			int32(t.Matches), int32(t.Goals), t.AvgGoalsPerMatch,
		); err != nil {
			batch.Abort()
			return fmt.Errorf("append tournament: %w", err)
		}
	}
	return batch.Send()
}

func (s *ClickHouseSource) Close() error {
	return s.conn.Close()
}

func firstLine(stmt string) string {
	stmt = strings.TrimSpace(stmt)
	if i := strings.IndexByte(stmt, '\n'); i >= 0 {
		return stmt[:i] + "..."
	}
	return stmt
}

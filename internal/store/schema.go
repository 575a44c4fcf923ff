package store

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/worldcup/stats-api/internal/models"
)

var (
	matchColumns      = []string{"year", "stage", "home_team", "away_team", "home_goals", "away_goals", "host", "attendance"}
	tournamentColumns = []string{"year", "host", "winner", "runner_up", "matches", "goals", "avg_goals_per_match"}
)

// tableNamePattern allows plain or schema-qualified identifiers only; table names come from
// configuration and end up in SQL text.
var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

type dialect string

const (
	dialectPostgres   dialect = "postgres"
	dialectPQ         dialect = "pq"
	dialectMySQL      dialect = "mysql"
	dialectSQLite     dialect = "sqlite"
	dialectClickHouse dialect = "clickhouse"
)

func quoteTable(d dialect, name string) (string, error) {
	if !tableNamePattern.MatchString(name) {
		return "", fmt.Errorf("invalid table name %q", name)
	}
	parts := strings.Split(name, ".")
	switch d {
	case dialectPostgres:
		return pgx.Identifier(parts).Sanitize(), nil
	case dialectPQ:
		for i, p := range parts {
			parts[i] = pq.QuoteIdentifier(p)
		}
	case dialectMySQL, dialectClickHouse:
		for i, p := range parts {
			parts[i] = "`" + p + "`"
		}
	default:
		for i, p := range parts {
			parts[i] = `"` + p + `"`
		}
	}
	return strings.Join(parts, "."), nil
}

func selectMatchesSQL(table string) string {
	return `SELECT year, stage, home_team, away_team, home_goals, away_goals,
		COALESCE(host, '') AS host, COALESCE(attendance, 0) AS attendance
	FROM ` + table + ` ORDER BY year`
}

func selectTournamentsSQL(table string) string {
	return `SELECT year, host, COALESCE(winner, '') AS winner, COALESCE(runner_up, '') AS runner_up,
		matches, goals, COALESCE(avg_goals_per_match, 0) AS avg_goals_per_match
	FROM ` + table + ` ORDER BY year`
}

// createTableSQL returns the DDL for both tables in the given dialect.
func createTableSQL(d dialect, matches, tournaments string) []string {
	switch d {
	case dialectClickHouse:
		return []string{
			`CREATE TABLE IF NOT EXISTS ` + matches + ` (
				year Int32, stage String, home_team String, away_team String,
				home_goals Int32, away_goals Int32, host String, attendance Int32
			) ENGINE = MergeTree ORDER BY (year, stage)`,
			`CREATE TABLE IF NOT EXISTS ` + tournaments + ` (
				year Int32, host String, winner String, runner_up String,
				matches Int32, goals Int32, avg_goals_per_match Float64
			) ENGINE = ReplacingMergeTree ORDER BY year`,
		}
	case dialectMySQL:
		return []string{
			`CREATE TABLE IF NOT EXISTS ` + matches + ` (
				year INT NOT NULL, stage VARCHAR(64) NOT NULL,
				home_team VARCHAR(100) NOT NULL, away_team VARCHAR(100) NOT NULL,
				home_goals INT NOT NULL, away_goals INT NOT NULL,
				host VARCHAR(100), attendance INT,
				INDEX idx_matches_year (year)
			)`,
			`CREATE TABLE IF NOT EXISTS ` + tournaments + ` (
				year INT PRIMARY KEY, host VARCHAR(100) NOT NULL,
				winner VARCHAR(100), runner_up VARCHAR(100),
				matches INT NOT NULL, goals INT NOT NULL, avg_goals_per_match DOUBLE
			)`,
		}
	default:
		float := "DOUBLE PRECISION"
		if d == dialectSQLite {
			float = "REAL"
		}
		return []string{
			`CREATE TABLE IF NOT EXISTS ` + matches + ` (
				year INTEGER NOT NULL, stage TEXT NOT NULL,
				home_team TEXT NOT NULL, away_team TEXT NOT NULL,
				home_goals INTEGER NOT NULL CHECK (home_goals >= 0),
				away_goals INTEGER NOT NULL CHECK (away_goals >= 0),
				host TEXT, attendance INTEGER
			)`,
			`CREATE TABLE IF NOT EXISTS ` + tournaments + ` (
				year INTEGER PRIMARY KEY, host TEXT NOT NULL,
				winner TEXT, runner_up TEXT,
				matches INTEGER NOT NULL, goals INTEGER NOT NULL,
				avg_goals_per_match ` + float + `
			)`,
		}
	}
}

// resetTableSQL empties a table before a reseed.
func resetTableSQL(d dialect, table string) string {
	switch d {
	case dialectSQLite:
		return `DELETE FROM ` + table
	default:
		return `TRUNCATE TABLE ` + table
	}
}

func insertSQL(d dialect, table string, columns []string) string {
	placeholders := make([]string, len(columns))
	for i := range columns {
		if d == dialectPQ || d == dialectPostgres {
			placeholders[i] = fmt.Sprintf("$%d", i+1)
		} else {
			placeholders[i] = "?"
		}
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(columns, ", "), strings.Join(placeholders, ", "))
}

func matchValues(m models.Match) []interface{} {
	return []interface{}{m.Year, m.Stage, m.HomeTeam, m.AwayTeam, m.HomeGoals, m.AwayGoals, m.Host, m.Attendance}
}

func tournamentValues(t models.Tournament) []interface{} {
	return []interface{}{t.Year, t.Host, t.Winner, t.RunnerUp, t.Matches, t.Goals, t.AvgGoalsPerMatch}
}

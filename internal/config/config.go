package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"

	"github.com/worldcup/stats-api/internal/store"
)

type Config struct {
	// Server
	Port            int           `env:"PORT" envDefault:"8080"`
	Env             string        `env:"ENV" envDefault:"development"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// CORS
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	// Dataset
	DataSource       string `env:"DATA_SOURCE" envDefault:"file"`
	DataDir          string `env:"DATA_DIR" envDefault:"data"`
	MatchesFile      string `env:"MATCHES_FILE" envDefault:"matches.csv"`
	TournamentsFile  string `env:"TOURNAMENTS_FILE" envDefault:"tournaments.csv"`
	MatchesTable     string `env:"MATCHES_TABLE" envDefault:"matches"`
	TournamentsTable string `env:"TOURNAMENTS_TABLE" envDefault:"tournaments"`

	// Database URLs
	DatabaseURL   string `env:"DATABASE_URL"`
	ClickHouseURL string `env:"CLICKHOUSE_URL"`
	RedisURL      string `env:"REDIS_URL"`

	// Response cache
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"10m"`

	// Seeder worker pool
	SeedWorkers       int           `env:"SEED_WORKERS" envDefault:"4"`
	SeedBatchSize     int           `env:"SEED_BATCH_SIZE" envDefault:"500"`
	SeedFlushInterval time.Duration `env:"SEED_FLUSH_INTERVAL" envDefault:"1s"`

	// Tracing
	OTelEndpoint string `env:"OTEL_ENDPOINT"`
	OTelEnabled  bool   `env:"OTEL_ENABLED" envDefault:"true"`
}

// Load loads configuration from environment variables.
// It returns an error if a value does not parse or a source is missing its connection URL.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	origins := cfg.AllowedOrigins[:0]
	for _, o := range cfg.AllowedOrigins {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	cfg.AllowedOrigins = origins

	cfg.DataSource = strings.ToLower(strings.TrimSpace(cfg.DataSource))
	switch cfg.DataSource {
	case "file":
	case "postgres", "mysql", "sqlite", "pq":
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("missing required environment variable: DATABASE_URL (DATA_SOURCE=%s)", cfg.DataSource)
		}
	case "clickhouse":
		if cfg.ClickHouseURL == "" {
			return nil, fmt.Errorf("missing required environment variable: CLICKHOUSE_URL (DATA_SOURCE=%s)", cfg.DataSource)
		}
	default:
		return nil, fmt.Errorf("unsupported DATA_SOURCE %q", cfg.DataSource)
	}

	return cfg, nil
}

// IsDevelopment reports whether ENV selects development logging.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// StoreOptions maps the dataset settings onto store.Options.
func (c *Config) StoreOptions(logger *zap.Logger) store.Options {
	return store.Options{
		Kind:             c.DataSource,
		DataDir:          c.DataDir,
		MatchesFile:      c.MatchesFile,
		TournamentsFile:  c.TournamentsFile,
		DatabaseURL:      c.DatabaseURL,
		ClickHouseURL:    c.ClickHouseURL,
		MatchesTable:     c.MatchesTable,
		TournamentsTable: c.TournamentsTable,
		Logger:           logger,
	}
}

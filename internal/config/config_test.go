package config

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != 8080 || cfg.Addr() != ":8080" {
		t.Errorf("Port = %d, Addr = %s", cfg.Port, cfg.Addr())
	}
	if cfg.DataSource != "file" || cfg.DataDir != "data" || cfg.MatchesFile != "matches.csv" || cfg.TournamentsFile != "tournaments.csv" {
		t.Errorf("dataset defaults = %+v", cfg)
	}
	if cfg.CacheTTL != 10*time.Minute || cfg.ReadTimeout != 5*time.Second || cfg.SeedFlushInterval != time.Second {
		t.Errorf("duration defaults = %v %v %v", cfg.CacheTTL, cfg.ReadTimeout, cfg.SeedFlushInterval)
	}
	if !reflect.DeepEqual(cfg.AllowedOrigins, []string{"http://localhost:3000"}) {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
	if !cfg.IsDevelopment() {
		t.Error("default ENV should be development")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("DATA_SOURCE", "ClickHouse")
	t.Setenv("CLICKHOUSE_URL", "clickhouse://localhost:9000/worldcup")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("SEED_WORKERS", "1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != 9090 || cfg.IsDevelopment() {
		t.Errorf("Port = %d, Env = %s", cfg.Port, cfg.Env)
	}
	if !reflect.DeepEqual(cfg.AllowedOrigins, []string{"https://a.example", "https://b.example"}) {
		t.Errorf("AllowedOrigins = %q", cfg.AllowedOrigins)
	}
	opts := cfg.StoreOptions(nil)
	if opts.Kind != "clickhouse" || opts.ClickHouseURL != "clickhouse://localhost:9000/worldcup" || opts.MatchesTable != "matches" {
		t.Errorf("StoreOptions() = %+v", opts)
	}
	if cfg.DataSource != "clickhouse" || cfg.CacheTTL != 30*time.Second || cfg.SeedWorkers != 1 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "Postgres without URL",
			env:     map[string]string{"DATA_SOURCE": "postgres"},
			wantErr: "DATABASE_URL",
		},
		{
			name:    "ClickHouse without URL",
			env:     map[string]string{"DATA_SOURCE": "clickhouse"},
			wantErr: "CLICKHOUSE_URL",
		},
		{
			name:    "Unknown source",
			env:     map[string]string{"DATA_SOURCE": "excel"},
			wantErr: "unsupported DATA_SOURCE",
		},
		{
			name:    "Malformed port",
			env:     map[string]string{"PORT": "eighty"},
			wantErr: "parse env",
		},
		{
			name:    "Malformed duration",
			env:     map[string]string{"CACHE_TTL": "soon"},
			wantErr: "parse env",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

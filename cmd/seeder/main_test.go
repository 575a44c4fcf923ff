package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/worldcup/stats-api/internal/config"
	"github.com/worldcup/stats-api/internal/store"
)

func TestRunSeedsSQLite(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{
		DataSource:        store.SourceSQLite,
		DatabaseURL:       filepath.Join(t.TempDir(), "worldcup.db"),
		MatchesTable:      "matches",
		TournamentsTable:  "tournaments",
		SeedBatchSize:     2,
		SeedFlushInterval: 50 * time.Millisecond,
	}
	so := seedOptions{
		dir:         filepath.Join("..", "..", "internal", "store", "testdata"),
		matches:     "matches.csv",
		tournaments: "tournaments.csv",
		workers:     4,
	}

	if err := run(ctx, cfg, zap.NewNop(), so); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	// Seeding twice with reset must not duplicate rows.
	so.reset = true
	if err := run(ctx, cfg, zap.NewNop(), so); err != nil {
		t.Fatalf("run() with reset error = %v", err)
	}

	src, err := store.Open(ctx, cfg.StoreOptions(zap.NewNop()))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer src.Close()

	ds, err := store.Load(ctx, src)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(ds.Matches) != 4 || len(ds.Tournaments) != 2 {
		t.Errorf("seeded %d matches and %d tournaments, want 4 and 2", len(ds.Matches), len(ds.Tournaments))
	}
}

func TestRunRejectsFileTarget(t *testing.T) {
	cfg := &config.Config{DataSource: store.SourceFile}
	so := seedOptions{
		dir:         filepath.Join("..", "..", "internal", "store", "testdata"),
		matches:     "matches.csv",
		tournaments: "tournaments.csv",
	}
	if err := run(context.Background(), cfg, zap.NewNop(), so); err == nil {
		t.Fatal("run() into flat files should fail")
	}
}

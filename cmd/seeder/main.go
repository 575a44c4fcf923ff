// Command seeder copies the matches and tournaments CSV/JSON files into the warehouse
// selected by DATA_SOURCE, so the API can later load from it.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/worldcup/stats-api/internal/config"
	"github.com/worldcup/stats-api/internal/store"
	"github.com/worldcup/stats-api/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var (
		dir         string
		matches     string
		tournaments string
		reset       bool
		workers     int
		verbose     bool
	)
	flag.StringVar(&dir, "dir", cfg.DataDir, "directory holding the source files")
	flag.StringVar(&matches, "matches", cfg.MatchesFile, "matches file (.csv or .json)")
	flag.StringVar(&tournaments, "tournaments", cfg.TournamentsFile, "tournaments file (.csv or .json)")
	flag.BoolVar(&reset, "reset", false, "empty both tables before seeding")
	flag.IntVar(&workers, "workers", cfg.SeedWorkers, "concurrent batch writers")
	flag.BoolVar(&verbose, "v", false, "verbose output")
	flag.Parse()

	var logger *zap.Logger
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, seedOptions{
		dir:         dir,
		matches:     matches,
		tournaments: tournaments,
		reset:       reset,
		workers:     workers,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type seedOptions struct {
	dir         string
	matches     string
	tournaments string
	reset       bool
	workers     int
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger, so seedOptions) error {
	sugar := logger.Sugar()
	start := time.Now()

	src, err := store.Open(ctx, store.Options{
		Kind:            store.SourceFile,
		DataDir:         so.dir,
		MatchesFile:     so.matches,
		TournamentsFile: so.tournaments,
		Logger:          logger,
	})
	if err != nil {
		return err
	}
	ds, err := store.Load(ctx, src)
	src.Close()
	if err != nil {
		return err
	}

	sink, err := store.OpenSink(ctx, cfg.StoreOptions(logger))
	if err != nil {
		return err
	}
	defer sink.Close()

	if err := sink.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	if so.reset {
		if err := sink.Reset(ctx); err != nil {
			return fmt.Errorf("reset tables: %w", err)
		}
		sugar.Infow("Tables reset", "target", cfg.DataSource)
	}

	// SQLite allows a single writer.
	if cfg.DataSource == store.SourceSQLite {
		so.workers = 1
	}

	pool := worker.NewPool(worker.PoolConfig{
		WorkerCount:   so.workers,
		BatchSize:     cfg.SeedBatchSize,
		FlushInterval: cfg.SeedFlushInterval,
		Sink:          sink,
		Logger:        logger,
	})
	pool.Start(ctx)

	for _, t := range ds.Tournaments {
		if !pool.EnqueueTournament(t) {
			break
		}
	}
	for _, m := range ds.Matches {
		if !pool.EnqueueMatch(m) {
			break
		}
	}

	stopErr := pool.Stop()
	stats := pool.Stats()
	sugar.Infow("Seeding finished",
		"target", cfg.DataSource,
		"tournaments", len(ds.Tournaments),
		"matches", len(ds.Matches),
		"written", stats.Written,
		"failed", stats.Failed,
		"duration", time.Since(start),
	)
	if stopErr != nil {
		return stopErr
	}
	if ctx.Err() != nil {
		return fmt.Errorf("seeding interrupted after %d rows", stats.Written)
	}
	return nil
}

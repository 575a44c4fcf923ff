// @title World Cup Stats API
// @version 1.0
// @description Aggregated FIFA World Cup statistics computed from the matches and tournaments tables.
// @BasePath /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/worldcup/stats-api/internal/config"
	"github.com/worldcup/stats-api/internal/handlers"
	"github.com/worldcup/stats-api/internal/logic"
	"github.com/worldcup/stats-api/internal/store"
	"github.com/worldcup/stats-api/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logger is not ready yet
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	var logger *zap.Logger
	if cfg.IsDevelopment() {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, "worldcup-stats-api", cfg.OTelEndpoint, cfg.OTelEnabled)
	if err != nil {
		sugar.Warnw("Tracing disabled", "error", err)
	}
	defer func() {
		tctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(tctx); err != nil {
			sugar.Warnw("Tracer shutdown failed", "error", err)
		}
	}()

	// Load the dataset once; every query runs against this snapshot.
	src, err := store.Open(ctx, cfg.StoreOptions(logger))
	if err != nil {
		sugar.Fatalw("Failed to open data source", "source", cfg.DataSource, "error", err)
	}
	ds, err := store.Load(ctx, src)
	src.Close()
	if err != nil {
		sugar.Fatalw("Failed to load dataset", "source", cfg.DataSource, "error", err)
	}

	engine, err := logic.NewEngine(ds, logger)
	if err != nil {
		sugar.Fatalw("Failed to build engine", "error", err)
	}

	var cache handlers.ResponseCache
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			sugar.Fatalw("Invalid REDIS_URL", "error", err)
		}
		client := redis.NewClient(opts)
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			sugar.Warnw("Redis unreachable, responses will be computed per request", "error", err)
		}
		cache = handlers.NewRedisCache(client)
	}

	h := handlers.New(handlers.Config{
		Engine:   engine,
		Cache:    cache,
		CacheTTL: cfg.CacheTTL,
		Logger:   logger,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      h.Routes(cfg.AllowedOrigins),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		sugar.Infow("Server listening",
			"addr", srv.Addr,
			"source", ds.Source,
			"snapshot", engine.Snapshot().ID,
			"cache", cache != nil,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			sugar.Fatalw("Server failed", "error", err)
		}
	case <-ctx.Done():
	}

	sugar.Info("Shutting down...")
	sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		sugar.Errorw("Graceful shutdown failed", "error", err)
	}
}

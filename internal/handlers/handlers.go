package handlers

import (
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/worldcup/stats-api/internal/logic"
)

// DefaultCacheTTL applies when a cache is configured without a TTL.
const DefaultCacheTTL = 10 * time.Minute

type Config struct {
	Engine   logic.AnalyticsService
	Cache    ResponseCache // optional
	CacheTTL time.Duration
	Logger   *zap.Logger
}

type Handler struct {
	engine    logic.AnalyticsService
	cache     ResponseCache
	cacheTTL  time.Duration
	logger    *zap.SugaredLogger
	validator *validator.Validate
	tracer    trace.Tracer
}

func New(cfg Config) *Handler {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	h := &Handler{
		engine:    cfg.Engine,
		cache:     cfg.Cache,
		cacheTTL:  cfg.CacheTTL,
		logger:    cfg.Logger.Sugar(),
		validator: validator.New(),
		tracer:    otel.Tracer("github.com/worldcup/stats-api/internal/handlers"),
	}
	if cfg.Engine != nil {
		recordSnapshot(cfg.Engine.Snapshot())
	}
	return h
}

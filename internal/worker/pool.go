// Package worker implements the buffered worker pool used to seed warehouse tables.
// Rows are queued, grouped into batches and written to a store.Sink, providing:
// - Bounded memory via a fixed-size queue
// - Batch writes sized for COPY / PrepareBatch round trips
// - Graceful shutdown with flush guarantees

package worker

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/worldcup/stats-api/internal/models"
	"github.com/worldcup/stats-api/internal/store"
)

// Prometheus metrics
var (
	rowsEnqueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "worldcup_seed_rows_enqueued_total",
		Help: "Total number of rows queued for seeding",
	})

	rowsWritten = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "worldcup_seed_rows_written_total",
		Help: "Total number of rows written by seed workers",
	}, []string{"table"})

	rowsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "worldcup_seed_rows_failed_total",
		Help: "Total number of rows whose batch failed to write",
	}, []string{"table"})

	queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "worldcup_seed_queue_depth",
		Help: "Current depth of the seed queue",
	})

	batchWriteDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "worldcup_seed_batch_duration_seconds",
		Help:    "Duration of batch writes to the sink",
		Buckets: prometheus.DefBuckets,
	})
)

// Job is one row waiting to be written. Exactly one of Match or Tournament is set.
type Job struct {
	Match      *models.Match
	Tournament *models.Tournament
}

// PoolConfig configures the worker pool
type PoolConfig struct {
	WorkerCount   int
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration
	Sink          store.Sink
	Logger        *zap.Logger
}

// Stats summarises what the pool has written so far.
type Stats struct {
	Written int64
	Failed  int64
}

// Pool manages a pool of workers writing rows in batches
type Pool struct {
	config   PoolConfig
	jobQueue chan Job
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	logger   *zap.SugaredLogger

	written atomic.Int64
	failed  atomic.Int64

	errMu    sync.Mutex
	firstErr error
}

// NewPool creates a new worker pool
func NewPool(cfg PoolConfig) *Pool {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 10000
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 500
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Pool{
		config:   cfg,
		jobQueue: make(chan Job, cfg.QueueSize),
		logger:   cfg.Logger.Sugar(),
	}
}

// Start launches the worker goroutines
func (p *Pool) Start(ctx context.Context) {
	p.ctx, p.cancel = context.WithCancel(ctx)

	for i := 0; i < p.config.WorkerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	go p.reportQueueDepth()

	p.logger.Infow("Worker pool started",
		"workers", p.config.WorkerCount,
		"queueSize", p.config.QueueSize,
		"batchSize", p.config.BatchSize,
	)
}

// Stop closes the queue, waits for every worker to flush and returns the first write error.
func (p *Pool) Stop() error {
	p.logger.Info("Stopping worker pool...")

	close(p.jobQueue)
	p.wg.Wait()
	p.cancel()

	s := p.Stats()
	p.logger.Infow("Worker pool stopped", "written", s.Written, "failed", s.Failed)

	p.errMu.Lock()
	defer p.errMu.Unlock()
	return p.firstErr
}

// EnqueueMatch queues a match row. Blocks while the queue is full; returns false once the
// pool context is cancelled.
func (p *Pool) EnqueueMatch(m models.Match) bool {
	return p.enqueue(Job{Match: &m})
}

// EnqueueTournament queues a tournament row.
func (p *Pool) EnqueueTournament(t models.Tournament) bool {
	return p.enqueue(Job{Tournament: &t})
}

func (p *Pool) enqueue(job Job) bool {
	// Protect against sending on closed channel
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warnw("Failed to enqueue row (pool stopped)", "error", r)
		}
	}()

	select {
	case p.jobQueue <- job:
		rowsEnqueued.Inc()
		return true
	case <-p.ctx.Done():
		p.logger.Warn("Worker pool context canceled, dropping row")
		return false
	}
}

// QueueDepth returns current queue size
func (p *Pool) QueueDepth() int {
	return len(p.jobQueue)
}

func (p *Pool) Stats() Stats {
	return Stats{Written: p.written.Load(), Failed: p.failed.Load()}
}

// worker drains the queue in batches
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	batch := make([]Job, 0, p.config.BatchSize)
	ticker := time.NewTicker(p.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		start := time.Now()
		if err := p.processBatch(batch); err != nil {
			p.logger.Errorw("Batch write failed",
				"worker", id,
				"batchSize", len(batch),
				"error", err,
			)
			p.recordErr(err)
		} else {
			p.logger.Debugw("Batch written", "worker", id, "batchSize", len(batch), "duration", time.Since(start))
		}
		batchWriteDuration.Observe(time.Since(start).Seconds())

		batch = batch[:0]
	}

	for {
		select {
		case job, ok := <-p.jobQueue:
			if !ok {
				flush()
				return
			}
			batch = append(batch, job)
			if len(batch) >= p.config.BatchSize {
				flush()
			}

		case <-ticker.C:
			flush()

		case <-p.ctx.Done():
			flush()
			return
		}
	}
}

// processBatch splits a batch by table and writes tournaments before matches.
func (p *Pool) processBatch(batch []Job) error {
	var (
		matches     []models.Match
		tournaments []models.Tournament
	)
	for _, job := range batch {
		switch {
		case job.Tournament != nil:
			tournaments = append(tournaments, sanitizeTournament(*job.Tournament))
		case job.Match != nil:
			matches = append(matches, sanitizeMatch(*job.Match))
		}
	}

	// Writes outlive pool cancellation so a shutdown flush still lands.
	ctx := context.WithoutCancel(p.ctx)

	if len(tournaments) > 0 {
		if err := p.config.Sink.WriteTournaments(ctx, tournaments); err != nil {
			p.failed.Add(int64(len(batch)))
			rowsFailed.WithLabelValues("tournaments").Add(float64(len(tournaments)))
			rowsFailed.WithLabelValues("matches").Add(float64(len(matches)))
			return fmt.Errorf("write %d tournaments: %w", len(tournaments), err)
		}
		p.written.Add(int64(len(tournaments)))
		rowsWritten.WithLabelValues("tournaments").Add(float64(len(tournaments)))
	}

	if len(matches) > 0 {
		if err := p.config.Sink.WriteMatches(ctx, matches); err != nil {
			p.failed.Add(int64(len(matches)))
			rowsFailed.WithLabelValues("matches").Add(float64(len(matches)))
			return fmt.Errorf("write %d matches: %w", len(matches), err)
		}
		p.written.Add(int64(len(matches)))
		rowsWritten.WithLabelValues("matches").Add(float64(len(matches)))
	}
	return nil
}

func (p *Pool) recordErr(err error) {
	p.errMu.Lock()
	defer p.errMu.Unlock()
	if p.firstErr == nil {
		p.firstErr = err
	}
}

func (p *Pool) reportQueueDepth() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			queueDepth.Set(float64(len(p.jobQueue)))
		case <-p.ctx.Done():
			queueDepth.Set(0)
			return
		}
	}
}

// Helper functions

// sanitizeName replaces non-breaking and zero-width characters left by spreadsheet exports
// and trims the result. Inner spacing and case are preserved.
func sanitizeName(s string) string {
	// Fast path: plain ASCII needs only trimming
	clean := true
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			clean = false
			break
		}
	}
	if clean {
		return strings.TrimSpace(s)
	}

	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\u00a0', '\u202f':
			sb.WriteByte(' ')
		case '\u200b', '\u200c', '\u200d', '\ufeff':
			// dropped
		default:
			sb.WriteRune(r)
		}
	}
	return strings.TrimSpace(sb.String())
}

func sanitizeMatch(m models.Match) models.Match {
	m.Stage = sanitizeName(m.Stage)
	m.HomeTeam = sanitizeName(m.HomeTeam)
	m.AwayTeam = sanitizeName(m.AwayTeam)
	m.Host = sanitizeName(m.Host)
	return m
}

func sanitizeTournament(t models.Tournament) models.Tournament {
	t.Host = sanitizeName(t.Host)
	t.Winner = sanitizeName(t.Winner)
	t.RunnerUp = sanitizeName(t.RunnerUp)
	return t
}

package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/worldcup/stats-api/internal/models"
)

// Prometheus metrics
var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "worldcup_http_requests_total",
		Help: "Total number of HTTP requests by route and status",
	}, []string{"route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "worldcup_http_request_duration_seconds",
		Help:    "Duration of HTTP requests by route",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	queryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "worldcup_engine_query_duration_seconds",
		Help:    "Duration of aggregation engine queries",
		Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05},
	}, []string{"operation"})

	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "worldcup_cache_lookups_total",
		Help: "Response cache lookups by result (hit, miss, error)",
	}, []string{"result"})

	datasetRows = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "worldcup_dataset_rows",
		Help: "Rows loaded into the aggregation engine",
	}, []string{"table"})
)

func recordSnapshot(s models.Snapshot) {
	datasetRows.WithLabelValues("matches").Set(float64(s.Matches))
	datasetRows.WithLabelValues("tournaments").Set(float64(s.Tournaments))
	datasetRows.WithLabelValues("teams").Set(float64(s.Teams))
}

// Metrics records request counts and latency keyed by the matched chi route pattern, so
// query strings and unmatched paths do not explode label cardinality.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
		httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

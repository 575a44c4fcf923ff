package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggo/swag"

	_ "github.com/worldcup/stats-api/docs"
)

// Routes builds the public router.
func (h *Handler) Routes(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Cache"},
		MaxAge:         300,
	}))

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/doc.json", h.SwaggerDoc)

	r.Route("/api", func(r chi.Router) {
		r.Get("/goals-per-worldcup", h.GetGoalsPerWorldCup)
		r.Get("/top-teams", h.GetTopTeams)
		r.Get("/goals-by-stage", h.GetGoalsByStage)
		r.Get("/goals-by-continent", h.GetGoalsByContinent)
		r.Get("/team-comparison", h.GetTeamComparison)
		r.Get("/matches-per-year", h.GetMatchesPerYear)
		r.Get("/available-teams", h.GetAvailableTeams)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		h.errorResponse(w, http.StatusNotFound, "not found")
	})
	return r
}

// SwaggerDoc serves the registered OpenAPI document.
func (h *Handler) SwaggerDoc(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		h.logger.Errorw("swagger doc unavailable", "error", err)
		h.errorResponse(w, http.StatusNotFound, "api documentation not registered")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(doc))
}

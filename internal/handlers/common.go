package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/worldcup/stats-api/internal/logic"
	"github.com/worldcup/stats-api/internal/models"
)

// Health check endpoint
// @Summary Liveness probe
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

// Ready reports whether the engine has been built and which dataset it serves.
// @Summary Readiness probe
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /ready [get]
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.engine == nil {
		h.jsonResponse(w, http.StatusServiceUnavailable, map[string]interface{}{"ready": false})
		return
	}

	checks := map[string]bool{"engine": true}
	if h.cache != nil {
		checks["cache"] = h.cache.Ping(r.Context()) == nil
	}

	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"ready":    true,
		"checks":   checks,
		"snapshot": h.engine.Snapshot(),
	})
}

func (h *Handler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, models.Envelope{Success: false, Error: message})
}

// queryError maps engine errors onto status codes. Unexpected errors are logged and hidden.
func (h *Handler) queryError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, logic.ErrInvalidParameter):
		h.errorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, logic.ErrUnknownTeam):
		h.errorResponse(w, http.StatusNotFound, err.Error())
	default:
		h.logger.Errorw("query failed", "operation", op, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "internal server error")
	}
}

// validate checks a request DTO and renders the first failure as an invalid parameter error.
func (h *Handler) validate(req interface{}) error {
	err := h.validator.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", logic.ErrInvalidParameter, err)
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "oneof":
			parts = append(parts, fmt.Sprintf("%s must be one of %s, got %q", strings.ToLower(fe.Field()), strings.ReplaceAll(fe.Param(), " ", ", "), fe.Value()))
		case "gt":
			parts = append(parts, fmt.Sprintf("%s must be greater than %s", strings.ToLower(fe.Field()), fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", logic.ErrInvalidParameter, strings.Join(parts, "; "))
}

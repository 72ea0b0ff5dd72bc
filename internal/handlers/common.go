package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/hoopsight/projection-api/internal/logic"
)

// Health check endpoint
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

// Ready check endpoint
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Check configured dependencies
	checks := map[string]bool{}
	if h.pg != nil {
		checks["postgres"] = h.pg.Ping(ctx) == nil
	}
	if h.ch != nil {
		checks["clickhouse"] = h.ch.Ping(ctx) == nil
	}
	if h.redis != nil {
		checks["redis"] = h.redis.Ping(ctx).Err() == nil
	}

	allHealthy := true
	for _, ok := range checks {
		if !ok {
			allHealthy = false
			break
		}
	}

	resp := map[string]interface{}{
		"ready":  allHealthy,
		"checks": checks,
	}
	if h.pool != nil {
		resp["queueDepth"] = h.pool.QueueDepth()
	}

	status := http.StatusOK
	if !allHealthy {
		status = http.StatusServiceUnavailable
	}
	h.jsonResponse(w, status, resp)
}

func (h *Handler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{"error": message})
}

// pipelineError reports a projection failure with the stage it came from.
func (h *Handler) pipelineError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	stage := logic.StageOf(err)
	if status >= http.StatusInternalServerError {
		h.logger.Errorw("Projection failed", "stage", stage, "error", err)
	} else {
		h.logger.Debugw("Projection rejected", "stage", stage, "error", err)
	}

	body := map[string]string{"error": logic.ErrorMessage(err)}
	if stage != "" {
		body["stage"] = string(stage)
	}
	h.jsonResponse(w, status, body)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, logic.ErrPlayerNotFound):
		return http.StatusNotFound
	case errors.Is(err, logic.ErrInvalidRestDays), errors.Is(err, logic.ErrUnknownOpponent):
		return http.StatusBadRequest
	case errors.Is(err, logic.ErrEmptyGameLog):
		return http.StatusUnprocessableEntity
	case errors.Is(err, logic.ErrModelInvocation):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) validationError(w http.ResponseWriter, err error) {
	h.jsonResponse(w, http.StatusBadRequest, map[string]string{
		"error": err.Error(),
		"stage": string(logic.StageValidate),
	})
}

package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hoopsight/projection-api/internal/models"
)

// GetPlayerProjection projects a player's next game from query parameters
// @Summary Get Player Projection
// @Tags Projections
// @Produce json
// @Param player path string true "Player ID"
// @Param opponent query string false "Opponent team code, or none"
// @Param rest_days query int false "Days of rest before the game"
// @Success 200 {object} models.ProjectionResponse
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 422 {object} map[string]string "No valid game records"
// @Failure 502 {object} map[string]string "Model failure"
// @Router /players/{player}/projection [get]
func (h *Handler) GetPlayerProjection(w http.ResponseWriter, r *http.Request) {
	req := models.ProjectionRequest{
		Player:   chi.URLParam(r, "player"),
		Opponent: r.URL.Query().Get("opponent"),
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("rest_days")); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil {
			h.validationError(w, errInvalidRestDaysParam)
			return
		}
		req.RestDays = days
	}

	h.project(w, r, req)
}

// CreateProjection projects a player's next game from a JSON body
// @Summary Create Projection
// @Tags Projections
// @Accept json
// @Produce json
// @Param body body models.ProjectionRequest true "Projection request"
// @Success 200 {object} models.ProjectionResponse
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /projections [post]
func (h *Handler) CreateProjection(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	var req models.ProjectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	h.project(w, r, req)
}

func (h *Handler) project(w http.ResponseWriter, r *http.Request, req models.ProjectionRequest) {
	if err := h.validator.Struct(req); err != nil {
		h.validationError(w, err)
		return
	}

	resp, err := h.projection.Project(r.Context(), req)
	if err != nil {
		h.pipelineError(w, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, resp)
}

// CreateRosterProjection projects several players against the same opponent
// @Summary Create Roster Projection
// @Description Projects every listed player, or every known player when the list is empty. Per-player failures are reported inline.
// @Tags Projections
// @Accept json
// @Produce json
// @Param body body models.RosterRequest true "Roster request"
// @Success 200 {object} models.RosterResponse
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /projections/roster [post]
func (h *Handler) CreateRosterProjection(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	var req models.RosterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		h.validationError(w, err)
		return
	}

	resp, err := h.projection.ProjectRoster(r.Context(), req)
	if err != nil {
		h.pipelineError(w, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, resp)
}

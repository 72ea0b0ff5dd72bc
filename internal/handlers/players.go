package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hoopsight/projection-api/internal/models"
)

var errInvalidRestDaysParam = errors.New("rest_days must be an integer")

// ListPlayers returns the players the data source can project
// @Summary List Players
// @Tags Players
// @Produce json
// @Success 200 {object} models.PlayersResponse
// @Router /players [get]
func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.projection.Players(r.Context())
	if err != nil {
		h.logger.Errorw("Failed to list players", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to list players")
		return
	}
	if players == nil {
		players = []string{}
	}

	h.jsonResponse(w, http.StatusOK, models.PlayersResponse{Players: players, Count: len(players)})
}

// GetPlayerSummary returns rolling averages and last-game values without a projection
// @Summary Get Player Summary
// @Tags Players
// @Produce json
// @Param player path string true "Player ID"
// @Success 200 {object} models.SummaryResponse
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 422 {object} map[string]string "No valid game records"
// @Router /players/{player}/summary [get]
func (h *Handler) GetPlayerSummary(w http.ResponseWriter, r *http.Request) {
	player := chi.URLParam(r, "player")
	if player == "" {
		h.errorResponse(w, http.StatusBadRequest, "Player is required")
		return
	}

	summary, err := h.projection.Summary(r.Context(), player)
	if err != nil {
		h.pipelineError(w, err)
		return
	}
	h.jsonResponse(w, http.StatusOK, summary)
}

// ListTeams returns the opponents a projection can be adjusted for
// @Summary List Opponent Teams
// @Tags Players
// @Produce json
// @Success 200 {array} models.Team
// @Router /teams [get]
func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, http.StatusOK, models.Teams())
}

package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the API under /api/v1 plus the health endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/teams", h.ListTeams)
		r.Get("/players", h.ListPlayers)
		r.Get("/players/{player}/summary", h.GetPlayerSummary)
		r.Get("/players/{player}/projection", h.GetPlayerProjection)
		r.Post("/projections", h.CreateProjection)
		r.Post("/projections/roster", h.CreateRosterProjection)
		r.Post("/ingest/gamelogs", h.IngestGameLogs)
	})
}

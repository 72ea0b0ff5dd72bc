package models

// ProjectionRequest asks for a next-game projection.
type ProjectionRequest struct {
	Player   string `json:"player" validate:"required,max=128"`
	Opponent string `json:"opponent"` // team code, or empty/"-"/"none"
	RestDays int    `json:"rest_days" validate:"min=0"`
}

// RosterRequest projects several players at once. An empty Players list
// means every player the data source knows about.
type RosterRequest struct {
	Players  []string `json:"players" validate:"omitempty,max=100,dive,required"`
	Opponent string   `json:"opponent"`
	RestDays int      `json:"rest_days" validate:"min=0"`
}

// RosterEntry is one player's outcome in a roster projection.
type RosterEntry struct {
	Player     string              `json:"player"`
	Projection *ProjectionResponse `json:"projection,omitempty"`
	Error      string              `json:"error,omitempty"`
	Stage      string              `json:"stage,omitempty"`
}

type RosterResponse struct {
	Opponent string        `json:"opponent,omitempty"`
	RestDays int           `json:"rest_days"`
	Results  []RosterEntry `json:"results"`
}

type PlayersResponse struct {
	Players []string `json:"players"`
	Count   int      `json:"count"`
}

type IngestResponse struct {
	Status    string `json:"status"`
	Processed int    `json:"processed"`
	Rejected  int    `json:"rejected"`
}

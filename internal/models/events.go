package models

import (
	"time"

	"github.com/google/uuid"
)

// GameLogEvent is a single game-log row pushed to the ingest endpoint.
// Stat values may arrive as JSON numbers or numeric strings; anything else is
// kept as NULL and filtered out when the log is read back. GameNumber orders a
// player's games and must be set.
type GameLogEvent struct {
	Player     string   `json:"player" validate:"required,max=128"`
	Season     string   `json:"season,omitempty"`
	GameNumber int      `json:"game_number" validate:"required,min=1"`
	Date       string   `json:"date,omitempty"`
	Opponent   string   `json:"opponent" validate:"required,len=3"`
	Points     *float64 `json:"points"`
	Assists    *float64 `json:"assists"`
	Rebounds   *float64 `json:"rebounds"`
}

// ClickHouseGameLog is the row layout of the game_logs table.
type ClickHouseGameLog struct {
	ID         uuid.UUID
	IngestedAt time.Time
	Player     string
	Season     string
	GameNumber uint32
	GameDate   string
	Opponent   string
	Points     *float64
	Assists    *float64
	Rebounds   *float64
	RawJSON    string
}

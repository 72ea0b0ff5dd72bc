package models

import "math"

// FeatureCount and TargetCount describe the model's input and output shape.
const (
	FeatureCount = 7
	TargetCount  = 3
)

// FeatureNames lists the model inputs in the order the model was trained on.
var FeatureNames = [FeatureCount]string{
	"rolling_avg_points",
	"rolling_avg_assists",
	"rolling_avg_rebounds",
	"last_points",
	"last_assists",
	"last_rebounds",
	"rest_days",
}

// StatLine holds a points/assists/rebounds triple.
type StatLine struct {
	Points   float64 `json:"points"`
	Assists  float64 `json:"assists"`
	Rebounds float64 `json:"rebounds"`
}

// Prediction is a forecast for the player's next game.
type Prediction = StatLine

// RollingSummary is derived from a PlayerLog on every request.
type RollingSummary struct {
	Average     StatLine `json:"average"`
	Last        StatLine `json:"last"`
	WindowSize  int      `json:"window_size"`
	GamesPlayed int      `json:"games_played"`
}

// FeatureVector is the model input. Order matches FeatureNames.
type FeatureVector [FeatureCount]float64

// Row returns the vector as a single row for a 1xN model call.
func (f FeatureVector) Row() []float64 {
	row := make([]float64, FeatureCount)
	copy(row, f[:])
	return row
}

// MatchupStatus reports what happened with the opponent adjustment.
type MatchupStatus string

const (
	MatchupAdjusted     MatchupStatus = "adjusted"
	MatchupNoData       MatchupStatus = "no_data"
	MatchupNotRequested MatchupStatus = "not_requested"
)

// Projection is the result of running the model and, optionally, the opponent
// adjustment. Base is always the raw model output; Adjusted is only set when
// the player has history against the requested opponent.
type Projection struct {
	Base            Prediction    `json:"base"`
	Adjusted        *Prediction   `json:"adjusted,omitempty"`
	Status          MatchupStatus `json:"matchup_status"`
	Opponent        string        `json:"opponent,omitempty"`
	OpponentAverage *StatLine     `json:"opponent_average,omitempty"`
	OpponentGames   int           `json:"opponent_games,omitempty"`
}

// Final returns the adjusted prediction if there is one, otherwise the base.
func (p Projection) Final() Prediction {
	if p.Adjusted != nil {
		return *p.Adjusted
	}
	return p.Base
}

// SummaryResponse is returned once a player is selected.
type SummaryResponse struct {
	Player             string  `json:"player"`
	GamesPlayed        int     `json:"games_played"`
	WindowSize         int     `json:"window_size"`
	RollingAvgPoints   float64 `json:"rolling_avg_points"`
	RollingAvgAssists  float64 `json:"rolling_avg_assists"`
	RollingAvgRebounds float64 `json:"rolling_avg_rebounds"`
	LastPoints         float64 `json:"last_points"`
	LastAssists        float64 `json:"last_assists"`
	LastRebounds       float64 `json:"last_rebounds"`
}

// NewSummaryResponse flattens a RollingSummary for the API.
func NewSummaryResponse(player string, s RollingSummary) SummaryResponse {
	return SummaryResponse{
		Player:             player,
		GamesPlayed:        s.GamesPlayed,
		WindowSize:         s.WindowSize,
		RollingAvgPoints:   s.Average.Points,
		RollingAvgAssists:  s.Average.Assists,
		RollingAvgRebounds: s.Average.Rebounds,
		LastPoints:         s.Last.Points,
		LastAssists:        s.Last.Assists,
		LastRebounds:       s.Last.Rebounds,
	}
}

// ProjectionResponse is returned after an explicit projection request.
type ProjectionResponse struct {
	SummaryResponse
	ProjectionID      string        `json:"projection_id"`
	Opponent          string        `json:"opponent,omitempty"`
	RestDays          int           `json:"rest_days"`
	PredictedPoints   float64       `json:"predicted_points"`
	PredictedAssists  float64       `json:"predicted_assists"`
	PredictedRebounds float64       `json:"predicted_rebounds"`
	Base              Prediction    `json:"base"`
	OpponentAverage   *StatLine     `json:"opponent_average,omitempty"`
	OpponentGames     int           `json:"opponent_games,omitempty"`
	MatchupStatus     MatchupStatus `json:"matchup_status"`
}

// Round2 rounds to two decimal places for display. Never feed the result back
// into a calculation.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

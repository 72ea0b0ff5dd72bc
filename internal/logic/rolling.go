package logic

import (
	"github.com/hoopsight/projection-api/internal/models"
)

// RollingWindow is the number of most recent games averaged for form.
const RollingWindow = 10

// Summarize computes the trailing-window averages and last-game values.
// The window is the last min(RollingWindow, N) games; the last game is taken
// on its own and never averaged.
func Summarize(log models.PlayerLog) (models.RollingSummary, error) {
	last, ok := log.Last()
	if !ok {
		return models.RollingSummary{}, ErrEmptyGameLog
	}

	window := log.Tail(RollingWindow)
	return models.RollingSummary{
		Average:     meanStats(window),
		Last:        last.Stats(),
		WindowSize:  len(window),
		GamesPlayed: log.Len(),
	}, nil
}

// meanStats averages each stat over games. games must not be empty.
func meanStats(games []models.GameRecord) models.StatLine {
	var sum models.StatLine
	for _, g := range games {
		sum.Points += g.Points
		sum.Assists += g.Assists
		sum.Rebounds += g.Rebounds
	}
	n := float64(len(games))
	return models.StatLine{
		Points:   sum.Points / n,
		Assists:  sum.Assists / n,
		Rebounds: sum.Rebounds / n,
	}
}

// BuildFeatureVector lays out the model input. The order is fixed by the
// trained model; see models.FeatureNames.
func BuildFeatureVector(s models.RollingSummary, restDays int) models.FeatureVector {
	return models.FeatureVector{
		s.Average.Points,
		s.Average.Assists,
		s.Average.Rebounds,
		s.Last.Points,
		s.Last.Assists,
		s.Last.Rebounds,
		float64(restDays),
	}
}

package logic

import (
	"context"
	"fmt"

	"github.com/hoopsight/projection-api/internal/inference"
	"github.com/hoopsight/projection-api/internal/models"
)

// AdjustmentWeight scales how far the opponent history pulls the prediction.
const AdjustmentWeight = 0.1

// PredictBase runs the model on a single feature vector. Any model error or an
// output that is not exactly 1x3 is reported as ErrModelInvocation.
func PredictBase(ctx context.Context, model inference.Model, features models.FeatureVector) (models.Prediction, error) {
	out, err := model.Predict(ctx, [][]float64{features.Row()})
	if err != nil {
		return models.Prediction{}, fmt.Errorf("%w: %v", ErrModelInvocation, err)
	}
	if len(out) != 1 || len(out[0]) != models.TargetCount {
		return models.Prediction{}, fmt.Errorf("%w: got output shape %s, want 1x%d", ErrModelInvocation, shape(out), models.TargetCount)
	}
	for i, v := range out[0] {
		if !finite(v) {
			return models.Prediction{}, fmt.Errorf("%w: output %d is not finite", ErrModelInvocation, i)
		}
	}
	return models.Prediction{Points: out[0][0], Assists: out[0][1], Rebounds: out[0][2]}, nil
}

// AdjustForOpponent moves the base prediction toward the player's history
// against opponent. The base value is never modified; the returned Projection
// carries both. opponent must already be normalized ("" means none selected).
//
// The opponent average is taken over every game against that team, which can
// be a different subset than the rolling window.
func AdjustForOpponent(base models.Prediction, summary models.RollingSummary, log models.PlayerLog, opponent string) models.Projection {
	p := models.Projection{Base: base, Status: models.MatchupNotRequested}
	if opponent == "" {
		return p
	}

	p.Opponent = opponent
	games := log.Against(opponent)
	if len(games) == 0 {
		p.Status = models.MatchupNoData
		return p
	}

	teamAvg := meanStats(games)
	adjusted := models.Prediction{
		Points:   base.Points + (teamAvg.Points-summary.Average.Points)*AdjustmentWeight,
		Assists:  base.Assists + (teamAvg.Assists-summary.Average.Assists)*AdjustmentWeight,
		Rebounds: base.Rebounds + (teamAvg.Rebounds-summary.Average.Rebounds)*AdjustmentWeight,
	}

	p.Status = models.MatchupAdjusted
	p.Adjusted = &adjusted
	p.OpponentAverage = &teamAvg
	p.OpponentGames = len(games)
	return p
}

// Project runs the base prediction and the opponent adjustment.
func Project(ctx context.Context, model inference.Model, summary models.RollingSummary, log models.PlayerLog, restDays int, opponent string) (models.Projection, error) {
	base, err := PredictBase(ctx, model, BuildFeatureVector(summary, restDays))
	if err != nil {
		return models.Projection{}, err
	}
	return AdjustForOpponent(base, summary, log, opponent), nil
}

func shape(out [][]float64) string {
	if len(out) == 0 {
		return "0x0"
	}
	return fmt.Sprintf("%dx%d", len(out), len(out[0]))
}

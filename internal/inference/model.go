// Package inference holds the handles used to call the trained projection
// model. Callers only rely on the Model contract: one row of seven features
// in, one row of three targets (points, assists, rebounds) out.
package inference

import (
	"context"
	"fmt"

	"github.com/hoopsight/projection-api/internal/models"
)

// Model is an opaque trained regressor.
type Model interface {
	Predict(ctx context.Context, x [][]float64) ([][]float64, error)
}

// ModelFunc adapts a function to the Model interface.
type ModelFunc func(ctx context.Context, x [][]float64) ([][]float64, error)

func (f ModelFunc) Predict(ctx context.Context, x [][]float64) ([][]float64, error) {
	return f(ctx, x)
}

// TargetNames is the output order every model must follow.
var TargetNames = [models.TargetCount]string{"points", "assists", "rebounds"}

// checkFeatureOrder rejects a model trained on a different feature layout.
// A reordered vector would still produce well-typed but wrong numbers.
func checkFeatureOrder(features []string) error {
	if len(features) == 0 {
		return nil
	}
	if len(features) != models.FeatureCount {
		return fmt.Errorf("model expects %d features, want %d", len(features), models.FeatureCount)
	}
	for i, name := range features {
		if name != models.FeatureNames[i] {
			return fmt.Errorf("feature %d is %q, want %q", i, name, models.FeatureNames[i])
		}
	}
	return nil
}

func checkTargetOrder(targets []string) error {
	if len(targets) == 0 {
		return nil
	}
	if len(targets) != models.TargetCount {
		return fmt.Errorf("model has %d targets, want %d", len(targets), models.TargetCount)
	}
	for i, name := range targets {
		if name != TargetNames[i] {
			return fmt.Errorf("target %d is %q, want %q", i, name, TargetNames[i])
		}
	}
	return nil
}

package inference

import (
	"context"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hoopsight/projection-api/internal/models"
)

// LinearModel is a multi-output linear regression: one coefficient row and
// one intercept per target. It is the exported form of the trained regressor.
type LinearModel struct {
	Version      string      `yaml:"version" json:"version"`
	Features     []string    `yaml:"features" json:"features"`
	Targets      []string    `yaml:"targets" json:"targets"`
	Coefficients [][]float64 `yaml:"coefficients" json:"coefficients"`
	Intercepts   []float64   `yaml:"intercepts" json:"intercepts"`
}

// LoadLinearModel reads a model manifest. YAML is a superset of JSON so both
// formats are accepted.
func LoadLinearModel(path string) (*LinearModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}

	var m LinearModel
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse model: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("model %s: %w", path, err)
	}
	return &m, nil
}

// Validate checks the declared layout, the weight matrix shape, and that
// every weight is finite.
func (m *LinearModel) Validate() error {
	if err := checkFeatureOrder(m.Features); err != nil {
		return err
	}
	if err := checkTargetOrder(m.Targets); err != nil {
		return err
	}
	if len(m.Coefficients) != models.TargetCount {
		return fmt.Errorf("got %d coefficient rows, want %d", len(m.Coefficients), models.TargetCount)
	}
	if len(m.Intercepts) != models.TargetCount {
		return fmt.Errorf("got %d intercepts, want %d", len(m.Intercepts), models.TargetCount)
	}
	for t, row := range m.Coefficients {
		if len(row) != models.FeatureCount {
			return fmt.Errorf("coefficient row %d has %d weights, want %d", t, len(row), models.FeatureCount)
		}
		if !isFinite(m.Intercepts[t]) {
			return fmt.Errorf("intercept %d is not finite", t)
		}
		for f, c := range row {
			if !isFinite(c) {
				return fmt.Errorf("coefficient [%d][%d] is not finite", t, f)
			}
		}
	}
	return nil
}

func (m *LinearModel) Predict(_ context.Context, x [][]float64) ([][]float64, error) {
	out := make([][]float64, len(x))
	for i, row := range x {
		if len(row) != models.FeatureCount {
			return nil, fmt.Errorf("row %d has %d features, want %d", i, len(row), models.FeatureCount)
		}
		y := make([]float64, models.TargetCount)
		for t := 0; t < models.TargetCount; t++ {
			sum := m.Intercepts[t]
			for f, v := range row {
				sum += m.Coefficients[t][f] * v
			}
			y[t] = sum
		}
		out[i] = y
	}
	return out, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

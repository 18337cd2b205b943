package ml

import (
	"fmt"
	"math"
)

// LogisticRegression is a fitted linear model over the normalized features.
type LogisticRegression struct {
	Coef      []float64 `json:"coef"`
	Intercept float64   `json:"intercept"`
}

func (m *LogisticRegression) PredictLabel(features []float64) (int, error) {
	probs, err := m.PredictProbabilities(features)
	if err != nil {
		return 0, err
	}
	return argmax(probs), nil
}

func (m *LogisticRegression) PredictProbabilities(features []float64) ([]float64, error) {
	if len(features) != len(m.Coef) {
		return nil, fmt.Errorf("expected %d features, got %d", len(m.Coef), len(features))
	}
	z := m.Intercept
	for i, value := range features {
		z += m.Coef[i] * value
	}
	p := sigmoid(z)
	if math.IsNaN(p) {
		return nil, fmt.Errorf("decision function is not finite: %v", z)
	}
	return []float64{1 - p, p}, nil
}

func (m *LogisticRegression) validate() error {
	if len(m.Coef) != FeatureCount {
		return fmt.Errorf("logistic regression must have %d coefficients, got %d", FeatureCount, len(m.Coef))
	}
	return checkFinite(append(append([]float64(nil), m.Coef...), m.Intercept))
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

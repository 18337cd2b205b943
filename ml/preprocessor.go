package ml

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/pkg/errors"
)

// StandardScaler applies (x - mean) / scale per feature.
type StandardScaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

func (s *StandardScaler) Transform(features []float64) ([]float64, error) {
	if len(features) != len(s.Mean) || len(features) != len(s.Scale) {
		return nil, fmt.Errorf("expected %d features, got %d", len(s.Mean), len(features))
	}
	result := make([]float64, len(features))
	for i, value := range features {
		scale := s.Scale[i]
		if scale == 0 {
			scale = 1
		}
		result[i] = (value - s.Mean[i]) / scale
	}
	return result, nil
}

func (s *StandardScaler) validate() error {
	if len(s.Mean) != FeatureCount || len(s.Scale) != FeatureCount {
		return fmt.Errorf("standard scaler must have %d mean/scale entries, got %d/%d", FeatureCount, len(s.Mean), len(s.Scale))
	}
	return checkFinite(append(append([]float64(nil), s.Mean...), s.Scale...))
}

// MinMaxScaler maps each feature onto [0, 1] using the fitted bounds.
type MinMaxScaler struct {
	Min []float64 `json:"min"`
	Max []float64 `json:"max"`
}

func (s *MinMaxScaler) Transform(features []float64) ([]float64, error) {
	return NormalizeVector(features, s.Min, s.Max)
}

func (s *MinMaxScaler) validate() error {
	if len(s.Min) != FeatureCount || len(s.Max) != FeatureCount {
		return fmt.Errorf("minmax scaler must have %d min/max entries, got %d/%d", FeatureCount, len(s.Min), len(s.Max))
	}
	return checkFinite(append(append([]float64(nil), s.Min...), s.Max...))
}

func NormalizeFeature(value, min, max float64) float64 {
	if max == min {
		return 0
	}
	return (value - min) / (max - min)
}

func NormalizeVector(values []float64, mins []float64, maxs []float64) ([]float64, error) {
	if len(values) != len(mins) || len(values) != len(maxs) {
		return nil, errors.New("values/mins/maxs length mismatch")
	}
	result := make([]float64, len(values))
	for i := range values {
		result[i] = NormalizeFeature(values[i], mins[i], maxs[i])
	}
	return result, nil
}

// LoadScaler reads a fitted scaler of the given type from a JSON artifact.
func LoadScaler(scalerType, path string) (Scaler, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read scaler: %s", path)
	}
	switch scalerType {
	case "", "standard":
		scaler := &StandardScaler{}
		if err := json.Unmarshal(payload, scaler); err != nil {
			return nil, errors.Wrapf(err, "failed to decode scaler: %s", path)
		}
		if err := scaler.validate(); err != nil {
			return nil, errors.Wrapf(err, "incompatible scaler: %s", path)
		}
		return scaler, nil
	case "minmax":
		scaler := &MinMaxScaler{}
		if err := json.Unmarshal(payload, scaler); err != nil {
			return nil, errors.Wrapf(err, "failed to decode scaler: %s", path)
		}
		if err := scaler.validate(); err != nil {
			return nil, errors.Wrapf(err, "incompatible scaler: %s", path)
		}
		return scaler, nil
	default:
		return nil, errors.Errorf("unsupported scaler type: %s", scalerType)
	}
}

func checkFinite(values []float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New("artifact contains non-finite values")
		}
	}
	return nil
}

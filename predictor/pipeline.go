package predictor

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"heartrisk/ml"
)

// Result is the risk assessment for one record.
type Result struct {
	Prediction           string  `json:"prediction"`
	HasDisease           bool    `json:"has_disease"`
	Confidence           float64 `json:"confidence"`
	ProbabilityNoDisease float64 `json:"probability_no_disease"`
	ProbabilityDisease   float64 `json:"probability_disease"`
	RiskLevel            string  `json:"risk_level"`
}

// Pipeline turns validated records into risk assessments using the loaded artifacts.
// It holds no per-request state and is safe for concurrent use.
type Pipeline struct {
	artifacts *ml.Artifacts
	cache     *lru.Cache[string, Result]
	logger    *zap.Logger
}

// NewPipeline builds a pipeline. A cacheSize of 0 disables result caching.
func NewPipeline(artifacts *ml.Artifacts, cacheSize int, logger *zap.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Pipeline{artifacts: artifacts, logger: logger}
	if cacheSize > 0 {
		cache, err := lru.New[string, Result](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("create result cache: %w", err)
		}
		p.cache = cache
	}
	return p, nil
}

// Ready reports whether the artifacts were loaded.
func (p *Pipeline) Ready() bool {
	return p.artifacts.Ready()
}

// Predict runs the full inference path for one record.
func (p *Pipeline) Predict(record Record) (Result, error) {
	if !p.artifacts.Ready() {
		return Result{}, ErrModelUnavailable
	}
	if missing := MissingFields(record); len(missing) > 0 {
		return Result{}, &MissingFieldsError{Fields: missing}
	}

	raw, err := rawVector(record)
	if err != nil {
		return Result{}, err
	}

	key := cacheKey(raw)
	if p.cache != nil {
		if result, ok := p.cache.Get(key); ok {
			return result, nil
		}
	}

	label, probs, err := p.evaluate(raw)
	if err != nil {
		p.logger.Error("inference failed", zap.Error(err))
		return Result{}, &InferenceError{Cause: err}
	}

	result := buildResult(label, probs)
	if p.cache != nil {
		p.cache.Add(key, result)
	}
	return result, nil
}

// evaluate scales the vector once and asks the classifier for the label and the
// probabilities of that same scaled vector.
func (p *Pipeline) evaluate(raw []float64) (label int, probs []float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during evaluation: %v", r)
		}
	}()

	scaled, err := p.artifacts.Scaler().Transform(raw)
	if err != nil {
		return 0, nil, fmt.Errorf("scale features: %w", err)
	}
	if len(scaled) != len(raw) {
		return 0, nil, fmt.Errorf("scaler returned %d features, expected %d", len(scaled), len(raw))
	}

	classifier := p.artifacts.Classifier()
	label, err = classifier.PredictLabel(scaled)
	if err != nil {
		return 0, nil, fmt.Errorf("predict label: %w", err)
	}
	probs, err = classifier.PredictProbabilities(scaled)
	if err != nil {
		return 0, nil, fmt.Errorf("predict probabilities: %w", err)
	}

	if label != 0 && label != 1 {
		return 0, nil, fmt.Errorf("classifier returned label %d outside {0,1}", label)
	}
	if len(probs) != 2 {
		return 0, nil, fmt.Errorf("classifier returned %d probabilities, expected 2", len(probs))
	}
	for _, prob := range probs {
		if math.IsNaN(prob) || prob < 0 || prob > 1 {
			return 0, nil, errors.New("classifier returned an invalid probability")
		}
	}
	return label, probs, nil
}

func rawVector(record Record) ([]float64, error) {
	names := ml.FeatureNames()
	values := make(map[string]float64, len(names))
	var invalid []FieldValue
	for _, name := range names {
		f, err := ToFloat(record[name])
		if err != nil {
			invalid = append(invalid, FieldValue{Field: name, Value: record[name]})
			continue
		}
		values[name] = f
	}
	if len(invalid) > 0 {
		return nil, &InvalidInputError{Values: invalid}
	}
	return ml.FeatureVector(values), nil
}

// buildResult buckets on the unrounded confidence; only the reported numbers are rounded.
func buildResult(label int, probs []float64) Result {
	hasDisease := label == 1
	confidence := probs[label] * 100
	prediction := PredictionNoDisease
	if hasDisease {
		prediction = PredictionDisease
	}
	return Result{
		Prediction:           prediction,
		HasDisease:           hasDisease,
		Confidence:           round2(confidence),
		ProbabilityNoDisease: round2(probs[0] * 100),
		ProbabilityDisease:   round2(probs[1] * 100),
		RiskLevel:            RiskLevel(confidence, hasDisease),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func cacheKey(vector []float64) string {
	parts := make([]string, len(vector))
	for i, v := range vector {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

package ml

// Scaler normalizes a raw feature vector into the distribution the classifier expects.
type Scaler interface {
	Transform(features []float64) ([]float64, error)
}

// Classifier is a fitted binary decision function over normalized vectors.
type Classifier interface {
	PredictLabel(features []float64) (int, error)
	PredictProbabilities(features []float64) ([]float64, error)
}

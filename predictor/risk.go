package predictor

const (
	RiskLow         = "Low Risk"
	RiskLowModerate = "Low-Moderate Risk"
	RiskModerate    = "Moderate Risk"
	RiskHigh        = "High Risk"
)

const (
	PredictionDisease   = "Heart Disease Detected"
	PredictionNoDisease = "No Heart Disease Detected"
)

// RiskLevel buckets a prediction. A negative prediction is always low risk,
// whatever its confidence.
func RiskLevel(confidence float64, hasDisease bool) string {
	switch {
	case !hasDisease:
		return RiskLow
	case confidence >= 80:
		return RiskHigh
	case confidence >= 60:
		return RiskModerate
	default:
		return RiskLowModerate
	}
}

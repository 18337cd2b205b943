package ml

// FeatureCount is the dimensionality every artifact must agree on.
const FeatureCount = 11

// FeatureNames returns the clinical measurements in the order the model was trained on.
// The classifier only sees positions, so this order must never change.
func FeatureNames() []string {
	return []string{
		"Age",
		"Sex",
		"Chest_Pain_Type",
		"Resting_Blood_Pressure",
		"Cholesterol",
		"Fasting_Blood_Sugar",
		"Resting_ECG",
		"Max_Heart_Rate",
		"Exercise_Angina",
		"ST_Depression",
		"ST_Slope",
	}
}

// FeatureVector assembles the raw model input from named values. Missing names yield 0;
// callers are expected to have checked presence already.
func FeatureVector(values map[string]float64) []float64 {
	names := FeatureNames()
	vector := make([]float64, len(names))
	for i, name := range names {
		vector[i] = values[name]
	}
	return vector
}

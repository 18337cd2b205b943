package predictor

import (
	"heartrisk/ml"
)

// Record is one patient's measurements as decoded from a request body.
type Record map[string]any

// MissingFields returns the schema fields absent from the record, in schema order.
func MissingFields(record Record) []string {
	var missing []string
	for _, field := range ml.FeatureNames() {
		if _, ok := record[field]; !ok {
			missing = append(missing, field)
		}
	}
	return missing
}

// Validate checks every schema field independently and returns all violations in
// schema order. An empty result means the record is valid. No range checks are made.
func Validate(record Record) []string {
	var violations []string
	for _, field := range ml.FeatureNames() {
		value, ok := record[field]
		if !ok {
			violations = append(violations, field+" is required")
			continue
		}
		if _, err := ToFloat(value); err != nil {
			violations = append(violations, field+" must be a valid number")
		}
	}
	return violations
}

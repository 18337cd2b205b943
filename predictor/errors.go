package predictor

import (
	"errors"
	"fmt"
	"strings"
)

// ErrModelUnavailable is returned when the artifacts failed to load at startup.
var ErrModelUnavailable = errors.New("models not loaded")

// MissingFieldsError lists absent schema fields in schema order.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// FieldValue is one value that could not be coerced to a number.
type FieldValue struct {
	Field string
	Value any
}

// InvalidInputError carries every field whose value is not numeric.
type InvalidInputError struct {
	Values []FieldValue
}

func (e *InvalidInputError) Error() string {
	parts := make([]string, len(e.Values))
	for i, v := range e.Values {
		parts[i] = fmt.Sprintf("could not convert %s to float: %s", v.Field, describeValue(v.Value))
	}
	return strings.Join(parts, "; ")
}

// InferenceError wraps an unexpected failure inside scaling or model evaluation.
type InferenceError struct {
	Cause error
}

func (e *InferenceError) Error() string {
	return e.Cause.Error()
}

func (e *InferenceError) Unwrap() error {
	return e.Cause
}

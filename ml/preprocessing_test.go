package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardScalerTransform(t *testing.T) {
	scaler, err := LoadScaler("standard", "testdata/scaler.json")
	require.NoError(t, err)

	std := scaler.(*StandardScaler)
	out, err := scaler.Transform(std.Mean)
	require.NoError(t, err)
	require.Len(t, out, FeatureCount)
	for _, v := range out {
		assert.InDelta(t, 0, v, 1e-12)
	}

	shifted := append([]float64(nil), std.Mean...)
	shifted[0] += std.Scale[0]
	out, err = scaler.Transform(shifted)
	require.NoError(t, err)
	assert.InDelta(t, 1, out[0], 1e-12)
}

func TestStandardScalerZeroScale(t *testing.T) {
	scaler := &StandardScaler{Mean: []float64{1, 2}, Scale: []float64{0, 2}}
	out, err := scaler.Transform([]float64{3, 6})
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 2}, out)
}

func TestStandardScalerDimensionMismatch(t *testing.T) {
	scaler := &StandardScaler{Mean: []float64{1, 2}, Scale: []float64{1, 1}}
	_, err := scaler.Transform([]float64{1})
	assert.Error(t, err)
}

func TestMinMaxScalerTransform(t *testing.T) {
	scaler, err := LoadScaler("minmax", "testdata/scaler_minmax.json")
	require.NoError(t, err)

	mm := scaler.(*MinMaxScaler)
	out, err := scaler.Transform(mm.Max)
	require.NoError(t, err)
	for _, v := range out {
		assert.InDelta(t, 1, v, 1e-12)
	}
	out, err = scaler.Transform(mm.Min)
	require.NoError(t, err)
	for _, v := range out {
		assert.InDelta(t, 0, v, 1e-12)
	}
}

func TestNormalizeVector(t *testing.T) {
	out, err := NormalizeVector([]float64{5, 1}, []float64{0, 1}, []float64{10, 1})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0}, out)

	_, err = NormalizeVector([]float64{5}, []float64{0, 1}, []float64{10, 1})
	assert.Error(t, err)
}

func TestLoadScalerErrors(t *testing.T) {
	tests := []struct {
		name       string
		scalerType string
		path       string
	}{
		{name: "missing file", scalerType: "standard", path: "testdata/does_not_exist.json"},
		{name: "corrupt file", scalerType: "standard", path: "testdata/scaler_corrupt.json"},
		{name: "wrong dimensions", scalerType: "minmax", path: "testdata/scaler.json"},
		{name: "unknown type", scalerType: "robust", path: "testdata/scaler.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scaler, err := LoadScaler(tt.scalerType, tt.path)
			assert.Error(t, err)
			assert.Nil(t, scaler)
		})
	}
}

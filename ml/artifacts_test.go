package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadArtifacts(t *testing.T) {
	artifacts := LoadArtifacts(ArtifactConfig{
		ModelType:  "logistic_regression",
		ModelPath:  "testdata/logistic_regression.json",
		ScalerType: "standard",
		ScalerPath: "testdata/scaler.json",
	}, zap.NewNop())

	require.True(t, artifacts.Ready())
	assert.NoError(t, artifacts.Err())
	assert.NotNil(t, artifacts.Scaler())
	assert.NotNil(t, artifacts.Classifier())
}

func TestLoadArtifactsDegraded(t *testing.T) {
	tests := []struct {
		name   string
		config ArtifactConfig
	}{
		{
			name: "missing model",
			config: ArtifactConfig{
				ModelPath:  "testdata/heart_disease_model.json",
				ScalerPath: "testdata/scaler.json",
			},
		},
		{
			name: "corrupt scaler",
			config: ArtifactConfig{
				ModelPath:  "testdata/logistic_regression.json",
				ScalerPath: "testdata/scaler_corrupt.json",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			artifacts := LoadArtifacts(tt.config, nil)
			assert.False(t, artifacts.Ready())
			assert.Error(t, artifacts.Err())
			assert.Nil(t, artifacts.Scaler())
			assert.Nil(t, artifacts.Classifier())
		})
	}
}

func TestNewArtifactsRequiresBoth(t *testing.T) {
	assert.False(t, NewArtifacts(nil, &LogisticRegression{}).Ready())
	assert.True(t, NewArtifacts(&StandardScaler{}, &LogisticRegression{}).Ready())

	var nilArtifacts *Artifacts
	assert.False(t, nilArtifacts.Ready())
}

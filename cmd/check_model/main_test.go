package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heartrisk/config"
	"heartrisk/predictor"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Log.Level = "error"
	cfg.ML.ModelType = "random_forest"
	cfg.ML.ModelPath = "../../ml/testdata/random_forest.json"
	cfg.ML.ScalerType = "minmax"
	cfg.ML.ScalerPath = "../../ml/testdata/scaler_minmax.json"
	return cfg
}

func TestRunExampleRecord(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(testConfig(), []byte(exampleRecord), &out))

	var result predictor.Result
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, result.RiskLevel == predictor.RiskLow, !result.HasDisease)
	assert.InDelta(t, 100, result.ProbabilityDisease+result.ProbabilityNoDisease, 0.01)
}

func TestRunRejectsInvalidRecord(t *testing.T) {
	var out bytes.Buffer
	err := run(testConfig(), []byte(`{"Age":"old"}`), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Age must be a valid number")
	assert.Empty(t, out.String())
}

func TestRunWithoutArtifacts(t *testing.T) {
	cfg := testConfig()
	cfg.ML.ModelPath = t.TempDir() + "/missing.json"

	err := run(cfg, []byte(exampleRecord), &bytes.Buffer{})
	assert.ErrorContains(t, err, "models not loaded")
}

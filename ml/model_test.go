package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vectorWith(values map[int]float64) []float64 {
	vector := make([]float64, FeatureCount)
	for i, v := range values {
		vector[i] = v
	}
	return vector
}

func TestLogisticRegressionPredict(t *testing.T) {
	model, err := LoadModel("logistic_regression", "testdata/logistic_regression.json")
	require.NoError(t, err)

	probs, err := model.PredictProbabilities(vectorWith(nil))
	require.NoError(t, err)
	require.Len(t, probs, 2)
	assert.InDelta(t, 1, probs[0]+probs[1], 1e-12)
	assert.Greater(t, probs[1], 0.5)

	label, err := model.PredictLabel(vectorWith(nil))
	require.NoError(t, err)
	assert.Equal(t, 1, label)

	label, err = model.PredictLabel(vectorWith(map[int]float64{7: 10}))
	require.NoError(t, err)
	assert.Equal(t, 0, label)
}

func TestLogisticRegressionExtremeInput(t *testing.T) {
	model := &LogisticRegression{Coef: []float64{1}, Intercept: 0}
	probs, err := model.PredictProbabilities([]float64{-1e6})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0}, probs)
}

func TestDecisionTreePredict(t *testing.T) {
	model, err := LoadModel("decision_tree", "testdata/decision_tree.json")
	require.NoError(t, err)

	probs, err := model.PredictProbabilities(vectorWith(nil))
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.75, 0.25}, probs, 1e-12)
	label, err := model.PredictLabel(vectorWith(nil))
	require.NoError(t, err)
	assert.Equal(t, 0, label)

	label, err = model.PredictLabel(vectorWith(map[int]float64{2: 1}))
	require.NoError(t, err)
	assert.Equal(t, 1, label)
}

func TestDecisionTreeRejectsBadNodes(t *testing.T) {
	_, err := NewDecisionTree([]TreeNode{
		{FeatureIdx: 0, LeftChild: 0, RightChild: 0},
	})
	assert.Error(t, err)

	_, err = NewDecisionTree([]TreeNode{
		{IsLeaf: true, Value: []float64{1, 2, 3}},
	})
	assert.Error(t, err)

	_, err = NewDecisionTree([]TreeNode{
		{FeatureIdx: 42, LeftChild: 1, RightChild: 2},
		{IsLeaf: true, Value: []float64{1, 0}},
		{IsLeaf: true, Value: []float64{0, 1}},
	})
	assert.Error(t, err)
}

func TestDecisionTreeEmptyLeaf(t *testing.T) {
	tree, err := NewDecisionTree([]TreeNode{{IsLeaf: true, Value: []float64{0, 0}}})
	require.NoError(t, err)
	_, err = tree.PredictProbabilities(vectorWith(nil))
	assert.Error(t, err)
}

func TestRandomForestAveragesTrees(t *testing.T) {
	model, err := LoadModel("random_forest", "testdata/random_forest.json")
	require.NoError(t, err)

	input := vectorWith(map[int]float64{2: 1, 9: -1})
	probs, err := model.PredictProbabilities(input)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.4, 0.6}, probs, 1e-12)

	label, err := model.PredictLabel(input)
	require.NoError(t, err)
	assert.Equal(t, 1, label)
}

func TestArgmaxTiePrefersLowerLabel(t *testing.T) {
	assert.Equal(t, 0, argmax([]float64{0.5, 0.5}))
}

func TestLoadModelErrors(t *testing.T) {
	tests := []struct {
		name      string
		modelType string
		path      string
	}{
		{name: "missing file", modelType: "logistic_regression", path: "testdata/does_not_exist.json"},
		{name: "wrong dimensions", modelType: "logistic_regression", path: "testdata/logistic_short.json"},
		{name: "wrong format", modelType: "decision_tree", path: "testdata/random_forest.json"},
		{name: "unknown type", modelType: "svm", path: "testdata/logistic_regression.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model, err := LoadModel(tt.modelType, tt.path)
			assert.Error(t, err)
			assert.Nil(t, model)
		})
	}
}

func TestFeatureVectorOrder(t *testing.T) {
	names := FeatureNames()
	require.Len(t, names, FeatureCount)
	assert.Equal(t, "Age", names[0])
	assert.Equal(t, "ST_Slope", names[FeatureCount-1])

	values := make(map[string]float64, len(names))
	for i, name := range names {
		values[name] = float64(i)
	}
	vector := FeatureVector(values)
	for i, v := range vector {
		assert.Equal(t, float64(i), v)
	}
}

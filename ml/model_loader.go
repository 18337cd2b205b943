package ml

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// LoadModel reads a fitted classifier of the given type from a JSON artifact.
func LoadModel(modelType, path string) (Classifier, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read model: %s", path)
	}
	switch modelType {
	case "", "logistic_regression":
		model := &LogisticRegression{}
		if err := json.Unmarshal(payload, model); err != nil {
			return nil, errors.Wrapf(err, "failed to decode model: %s", path)
		}
		if err := model.validate(); err != nil {
			return nil, errors.Wrapf(err, "incompatible model: %s", path)
		}
		return model, nil
	case "decision_tree":
		var nodes []TreeNode
		if err := json.Unmarshal(payload, &nodes); err != nil {
			return nil, errors.Wrapf(err, "failed to decode model: %s", path)
		}
		model, err := NewDecisionTree(nodes)
		if err != nil {
			return nil, errors.Wrapf(err, "incompatible model: %s", path)
		}
		return model, nil
	case "random_forest":
		var artifact forestArtifact
		if err := json.Unmarshal(payload, &artifact); err != nil {
			return nil, errors.Wrapf(err, "failed to decode model: %s", path)
		}
		model, err := NewRandomForest(artifact.Trees)
		if err != nil {
			return nil, errors.Wrapf(err, "incompatible model: %s", path)
		}
		return model, nil
	default:
		return nil, errors.Errorf("unsupported model type: %s", modelType)
	}
}

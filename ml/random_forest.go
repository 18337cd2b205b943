package ml

import (
	"errors"
	"fmt"
)

// RandomForest averages the leaf probabilities of its trees.
type RandomForest struct {
	trees []*DecisionTree
}

type forestArtifact struct {
	Trees [][]TreeNode `json:"trees"`
}

func NewRandomForest(trees [][]TreeNode) (*RandomForest, error) {
	if len(trees) == 0 {
		return nil, errors.New("forest has no trees")
	}
	forest := &RandomForest{trees: make([]*DecisionTree, 0, len(trees))}
	for i, nodes := range trees {
		tree, err := NewDecisionTree(nodes)
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
		forest.trees = append(forest.trees, tree)
	}
	return forest, nil
}

func (f *RandomForest) PredictLabel(features []float64) (int, error) {
	probs, err := f.PredictProbabilities(features)
	if err != nil {
		return 0, err
	}
	return argmax(probs), nil
}

func (f *RandomForest) PredictProbabilities(features []float64) ([]float64, error) {
	if len(f.trees) == 0 {
		return nil, errors.New("model not trained")
	}
	sum := make([]float64, 2)
	for _, tree := range f.trees {
		probs, err := tree.PredictProbabilities(features)
		if err != nil {
			return nil, err
		}
		for i := range sum {
			sum[i] += probs[i]
		}
	}
	for i := range sum {
		sum[i] /= float64(len(f.trees))
	}
	return sum, nil
}

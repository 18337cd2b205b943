package ml

import (
	"errors"
	"fmt"
)

type DecisionTree struct {
	nodes []TreeNode
}

// TreeNode is one entry of the flattened tree. Value holds the training class counts
// (or fractions) that reached the node, indexed by class label.
type TreeNode struct {
	FeatureIdx int       `json:"feature_idx"`
	Threshold  float64   `json:"threshold"`
	LeftChild  int       `json:"left_child"`
	RightChild int       `json:"right_child"`
	Value      []float64 `json:"value"`
	IsLeaf     bool      `json:"is_leaf"`
}

func NewDecisionTree(nodes []TreeNode) (*DecisionTree, error) {
	dt := &DecisionTree{nodes: nodes}
	if err := dt.validate(); err != nil {
		return nil, err
	}
	return dt, nil
}

func (dt *DecisionTree) PredictLabel(features []float64) (int, error) {
	probs, err := dt.PredictProbabilities(features)
	if err != nil {
		return 0, err
	}
	return argmax(probs), nil
}

func (dt *DecisionTree) PredictProbabilities(features []float64) ([]float64, error) {
	leaf, err := dt.leaf(features)
	if err != nil {
		return nil, err
	}
	return leafProbabilities(leaf.Value)
}

func (dt *DecisionTree) leaf(features []float64) (TreeNode, error) {
	if len(dt.nodes) == 0 {
		return TreeNode{}, errors.New("model not trained")
	}
	idx := 0
	for steps := 0; steps <= len(dt.nodes); steps++ {
		node := dt.nodes[idx]
		if node.IsLeaf {
			return node, nil
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= len(features) {
			return TreeNode{}, errors.New("feature index out of range")
		}
		if features[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
		if idx < 0 || idx >= len(dt.nodes) {
			return TreeNode{}, errors.New("invalid tree state")
		}
	}
	return TreeNode{}, errors.New("tree contains a cycle")
}

func (dt *DecisionTree) validate() error {
	if len(dt.nodes) == 0 {
		return errors.New("tree has no nodes")
	}
	for i, node := range dt.nodes {
		if node.IsLeaf {
			if len(node.Value) != 2 {
				return fmt.Errorf("leaf %d must carry 2 class values, got %d", i, len(node.Value))
			}
			continue
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= FeatureCount {
			return fmt.Errorf("node %d splits on unknown feature %d", i, node.FeatureIdx)
		}
		if node.LeftChild <= i || node.LeftChild >= len(dt.nodes) ||
			node.RightChild <= i || node.RightChild >= len(dt.nodes) {
			return fmt.Errorf("node %d has invalid children", i)
		}
	}
	return nil
}

func leafProbabilities(value []float64) ([]float64, error) {
	total := 0.0
	for _, v := range value {
		if v < 0 {
			return nil, errors.New("negative class value")
		}
		total += v
	}
	if total == 0 {
		return nil, errors.New("empty leaf")
	}
	probs := make([]float64, len(value))
	for i, v := range value {
		probs[i] = v / total
	}
	return probs, nil
}

// argmax returns the first index holding the largest value, matching how
// ties resolve to the lower class label.
func argmax(values []float64) int {
	best := 0
	for i := 1; i < len(values); i++ {
		if values[i] > values[best] {
			best = i
		}
	}
	return best
}

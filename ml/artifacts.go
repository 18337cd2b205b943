package ml

import (
	"go.uber.org/zap"
)

// ArtifactConfig locates the fitted classifier and scaler on disk.
type ArtifactConfig struct {
	ModelType  string
	ModelPath  string
	ScalerType string
	ScalerPath string
}

// Artifacts is the process-wide model state. It is built once at startup and never
// mutated afterwards, so concurrent readers need no locking.
type Artifacts struct {
	config     ArtifactConfig
	scaler     Scaler
	classifier Classifier
	err        error
}

// LoadArtifacts loads both artifacts. It never fails: on any error the returned value
// reports Ready() == false, keeps neither object and records the cause.
func LoadArtifacts(config ArtifactConfig, logger *zap.Logger) *Artifacts {
	if logger == nil {
		logger = zap.NewNop()
	}
	artifacts := &Artifacts{config: config}

	classifier, err := LoadModel(config.ModelType, config.ModelPath)
	if err != nil {
		artifacts.err = err
		logger.Error("error loading models", zap.Error(err))
		return artifacts
	}
	scaler, err := LoadScaler(config.ScalerType, config.ScalerPath)
	if err != nil {
		artifacts.err = err
		logger.Error("error loading models", zap.Error(err))
		return artifacts
	}

	artifacts.classifier = classifier
	artifacts.scaler = scaler
	logger.Info("models loaded successfully",
		zap.String("model_type", config.ModelType),
		zap.String("model_path", config.ModelPath),
		zap.String("scaler_path", config.ScalerPath),
	)
	return artifacts
}

// NewArtifacts wraps already constructed objects, mainly for tests and embedding.
func NewArtifacts(scaler Scaler, classifier Classifier) *Artifacts {
	if scaler == nil || classifier == nil {
		return &Artifacts{}
	}
	return &Artifacts{scaler: scaler, classifier: classifier}
}

func (a *Artifacts) Ready() bool {
	return a != nil && a.scaler != nil && a.classifier != nil
}

func (a *Artifacts) Scaler() Scaler {
	return a.scaler
}

func (a *Artifacts) Classifier() Classifier {
	return a.classifier
}

// Err returns why loading failed, or nil.
func (a *Artifacts) Err() error {
	return a.err
}

func (a *Artifacts) Config() ArtifactConfig {
	return a.config
}

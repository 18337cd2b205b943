package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"heartrisk/config"
	"heartrisk/logging"
	"heartrisk/ml"
	"heartrisk/predictor"
)

// exampleRecord is a known patient record used when no record file is given.
const exampleRecord = `{
  "Age": 63, "Sex": 1, "Chest_Pain_Type": 3, "Resting_Blood_Pressure": 145,
  "Cholesterol": 233, "Fasting_Blood_Sugar": 1, "Resting_ECG": 0,
  "Max_Heart_Rate": 150, "Exercise_Angina": 0, "ST_Depression": 2.3, "ST_Slope": 0
}`

func main() {
	cmd := &cli.Command{
		Name:  "check_model",
		Usage: "load the configured model artifacts and score one patient record",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: "config.yaml", Usage: "path to the YAML config file"},
			&cli.StringFlag{Name: "record", Usage: "JSON file with one patient record (defaults to a built-in example)"},
			&cli.StringFlag{Name: "model_path", Usage: "override the classifier artifact path"},
			&cli.StringFlag{Name: "scaler_path", Usage: "override the scaler artifact path"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := config.Load(cmd.String("config"))
			if err != nil {
				return err
			}
			if path := cmd.String("model_path"); path != "" {
				cfg.ML.ModelPath = path
			}
			if path := cmd.String("scaler_path"); path != "" {
				cfg.ML.ScalerPath = path
			}

			record := []byte(exampleRecord)
			if path := cmd.String("record"); path != "" {
				if record, err = os.ReadFile(path); err != nil {
					return fmt.Errorf("read record: %w", err)
				}
			}
			return run(cfg, record, os.Stdout)
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(cfg *config.Config, record []byte, out io.Writer) error {
	logger, err := logging.New(logging.Options{Level: cfg.Log.Level, Debug: cfg.Debug})
	if err != nil {
		return err
	}
	defer logger.Sync()

	artifacts := ml.LoadArtifacts(ml.ArtifactConfig{
		ModelType:  cfg.ML.ModelType,
		ModelPath:  cfg.ML.ModelPath,
		ScalerType: cfg.ML.ScalerType,
		ScalerPath: cfg.ML.ScalerPath,
	}, logger)
	if !artifacts.Ready() {
		return fmt.Errorf("models not loaded: %w", artifacts.Err())
	}

	pipeline, err := predictor.NewPipeline(artifacts, 0, logger)
	if err != nil {
		return err
	}

	decoder := json.NewDecoder(bytes.NewReader(record))
	decoder.UseNumber()
	var values predictor.Record
	if err := decoder.Decode(&values); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	if violations := predictor.Validate(values); len(violations) > 0 {
		return fmt.Errorf("invalid record: %v", violations)
	}

	result, err := pipeline.Predict(values)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

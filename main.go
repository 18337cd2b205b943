package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"heartrisk/config"
	hhttp "heartrisk/http"
	"heartrisk/logging"
	"heartrisk/ml"
	"heartrisk/predictor"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	// 1. Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(logging.Options{
		Level:      cfg.Log.Level,
		Debug:      cfg.Debug,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// 2. Load model artifacts; failures leave the service running in degraded mode
	logger.Info("starting heart disease prediction API")
	artifactConfig := ml.ArtifactConfig{
		ModelType:  cfg.ML.ModelType,
		ModelPath:  cfg.ML.ModelPath,
		ScalerType: cfg.ML.ScalerType,
		ScalerPath: cfg.ML.ScalerPath,
	}
	artifacts := ml.LoadArtifacts(artifactConfig, logger)
	logger.Info("models loaded", zap.Bool("models_loaded", artifacts.Ready()))

	pipeline, err := predictor.NewPipeline(artifacts, cfg.Cache.Size, logger)
	if err != nil {
		logger.Fatal("failed to build inference pipeline", zap.Error(err))
	}

	// 3. Start HTTP server
	handler := hhttp.NewHandler(pipeline, artifactConfig, cfg.Static.IndexPath, logger)
	server := hhttp.NewServer(hhttp.ServerConfig{
		Port:           cfg.Http.Port,
		Timeout:        cfg.Http.Timeout,
		AllowedOrigins: cfg.Http.AllowedOrigins,
		MaxBodyBytes:   cfg.Http.MaxBodyBytes,
		RateLimit:      cfg.Http.RateLimit,
		Burst:          cfg.Http.Burst,
	}, handler, logger)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()
	logger.Info("server running", zap.Int("port", cfg.Http.Port), zap.Bool("debug", cfg.Debug))

	// 4. Handle graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	if err := server.Stop(); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("exiting")
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Debug bool `yaml:"debug"`
	Http  struct {
		Port           int           `yaml:"port"`
		Timeout        time.Duration `yaml:"timeout"`
		AllowedOrigins []string      `yaml:"allowed_origins"`
		MaxBodyBytes   int64         `yaml:"max_body_bytes"`
		RateLimit      float64       `yaml:"rate_limit"`
		Burst          int           `yaml:"burst"`
	} `yaml:"http"`
	Log struct {
		Level      string `yaml:"level"`
		File       string `yaml:"file"`
		MaxSizeMB  int    `yaml:"max_size_mb"`
		MaxBackups int    `yaml:"max_backups"`
		MaxAgeDays int    `yaml:"max_age_days"`
		Compress   bool   `yaml:"compress"`
	} `yaml:"log"`
	ML struct {
		ModelType  string `yaml:"model_type"`
		ModelPath  string `yaml:"model_path"`
		ScalerType string `yaml:"scaler_type"`
		ScalerPath string `yaml:"scaler_path"`
	} `yaml:"ml"`
	Cache struct {
		Size int `yaml:"size"`
	} `yaml:"cache"`
	Static struct {
		IndexPath string `yaml:"index_path"`
	} `yaml:"static"`
}

// Default returns the configuration used when no file or environment overrides exist.
func Default() *Config {
	cfg := &Config{}
	cfg.Http.Port = 5000
	cfg.Http.Timeout = 30 * time.Second
	cfg.Http.AllowedOrigins = []string{"*"}
	cfg.Http.MaxBodyBytes = 1 << 20
	cfg.Http.Burst = 20
	cfg.Log.Level = "info"
	cfg.Log.MaxSizeMB = 100
	cfg.Log.MaxBackups = 3
	cfg.Log.MaxAgeDays = 28
	cfg.ML.ModelType = "logistic_regression"
	cfg.ML.ModelPath = "heart_disease_model.json"
	cfg.ML.ScalerType = "standard"
	cfg.ML.ScalerPath = "scaler.json"
	cfg.Cache.Size = 1024
	cfg.Static.IndexPath = "index.html"
	return cfg
}

// Load builds the configuration from defaults, an optional YAML file, an optional .env
// file and finally the process environment, in that order of precedence.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	// a missing .env is normal outside local development
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(cfg); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	var err error
	if cfg.Http.Port, err = getEnvInt("PORT", cfg.Http.Port); err != nil {
		return err
	}
	if cfg.Cache.Size, err = getEnvInt("CACHE_SIZE", cfg.Cache.Size); err != nil {
		return err
	}
	if cfg.Http.RateLimit, err = getEnvFloat("RATE_LIMIT", cfg.Http.RateLimit); err != nil {
		return err
	}

	env := getEnv("APP_ENV", os.Getenv("FLASK_ENV"))
	if env != "" {
		cfg.Debug = strings.EqualFold(env, "development")
	}

	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.File = getEnv("LOG_FILE", cfg.Log.File)
	cfg.ML.ModelType = getEnv("MODEL_TYPE", cfg.ML.ModelType)
	cfg.ML.ModelPath = getEnv("MODEL_PATH", cfg.ML.ModelPath)
	cfg.ML.ScalerType = getEnv("SCALER_TYPE", cfg.ML.ScalerType)
	cfg.ML.ScalerPath = getEnv("SCALER_PATH", cfg.ML.ScalerPath)
	cfg.Static.IndexPath = getEnv("INDEX_PATH", cfg.Static.IndexPath)
	return nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if c.Http.Port <= 0 || c.Http.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Http.Port)
	}
	if c.Http.Timeout <= 0 {
		return fmt.Errorf("invalid http timeout: %s", c.Http.Timeout)
	}
	if c.Http.MaxBodyBytes <= 0 {
		return fmt.Errorf("invalid max body size: %d", c.Http.MaxBodyBytes)
	}
	if c.Http.RateLimit < 0 {
		return fmt.Errorf("invalid rate limit: %v", c.Http.RateLimit)
	}
	if c.Cache.Size < 0 {
		return fmt.Errorf("invalid cache size: %d", c.Cache.Size)
	}
	if c.ML.ModelPath == "" || c.ML.ScalerPath == "" {
		return errors.New("model and scaler paths are required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, value)
	}
	return n, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, value)
	}
	return f, nil
}

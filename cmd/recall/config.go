package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// fileConfig is the optional YAML configuration. Flags override file
// values; environment variables (loaded from .env when present) fill
// hosts that are empty in both.
type fileConfig struct {
	DB     string `yaml:"db"`
	Corpus string `yaml:"corpus"`

	AI struct {
		EmbeddingHost     string        `yaml:"embeddingHost"`
		ClassifierHost    string        `yaml:"classifierHost"`
		EmbeddingModel    string        `yaml:"embeddingModel"`
		ClassifierModel   string        `yaml:"classifierModel"`
		EmbeddingProvider string        `yaml:"embeddingProvider"`
		ClassifierTimeout time.Duration `yaml:"classifierTimeout"`
	} `yaml:"ai"`

	Search struct {
		Limit                   int     `yaml:"limit"`
		MassSelectionPercentage float64 `yaml:"massSelectionPercentage"`
	} `yaml:"search"`
}

func loadFileConfig(path string) (*fileConfig, error) {
	cfg := &fileConfig{}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// loadEnv loads .env if one exists and applies RECALL_* variables to
// any config field still empty.
func loadEnv(cfg *fileConfig) {
	_ = godotenv.Load()

	if cfg.AI.EmbeddingHost == "" {
		cfg.AI.EmbeddingHost = os.Getenv("RECALL_EMBEDDING_HOST")
	}
	if cfg.AI.ClassifierHost == "" {
		cfg.AI.ClassifierHost = os.Getenv("RECALL_CLASSIFIER_HOST")
	}
	if cfg.AI.EmbeddingModel == "" {
		cfg.AI.EmbeddingModel = os.Getenv("RECALL_EMBEDDING_MODEL")
	}
	if cfg.AI.ClassifierModel == "" {
		cfg.AI.ClassifierModel = os.Getenv("RECALL_CLASSIFIER_MODEL")
	}
}

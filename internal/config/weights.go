package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/patentscout/patentscout/internal/models"
)

// LoadWeights reads the similarity weights file. A missing or
// malformed file falls back to the shipped defaults so a session can
// always start.
func LoadWeights() (models.SimilarityWeights, error) {
	path := os.Getenv("WEIGHTS_CONFIG_PATH")
	if path == "" {
		path = "configs/weights.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return models.DefaultWeights(), err
	}

	var cfg WeightsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return models.DefaultWeights(), err
	}

	if cfg.SimilarityWeights.Sum() <= 0 {
		return models.DefaultWeights(), nil
	}

	return cfg.SimilarityWeights, nil
}

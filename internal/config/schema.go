package config

import "github.com/patentscout/patentscout/internal/models"

// PromptsConfig holds every prompt template the agent uses, loaded
// from configs/prompts.yaml. Templates are text/template bodies
// rendered with PromptData.
type PromptsConfig struct {
	Prompts struct {
		Router           PromptConfiguration `yaml:"router"`
		ContinueDialogue PromptConfiguration `yaml:"continue_dialogue"`
		GeneratePlan     PromptConfiguration `yaml:"generate_plan"`
		GenerateQuery    PromptConfiguration `yaml:"generate_query"`
		ExplainQuery     PromptConfiguration `yaml:"explain_query"`
		Summarize        PromptConfiguration `yaml:"summarize"`
	} `yaml:"prompts"`
	ModelParams ModelConfig `yaml:"model_params"`
}

// PromptConfiguration is one named prompt plus its model parameters.
type PromptConfiguration struct {
	Name   string       `yaml:"name"`
	Prompt string       `yaml:"prompt"`
	Model  *ModelConfig `yaml:"model"`
}

// ModelConfig carries per-call model parameters.
type ModelConfig struct {
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
	Retry       bool    `yaml:"retry"`
}

// WeightsConfig is the on-disk shape of the similarity weights file.
// Values are not required to sum to 1; the ranking engine normalizes
// at scoring time.
type WeightsConfig struct {
	SimilarityWeights models.SimilarityWeights `yaml:"similarity_weights"`
}

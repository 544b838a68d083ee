package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

func LoadPromptsConfig() (*PromptsConfig, error) {
	path := os.Getenv("PROMPTS_CONFIG_PATH")
	if path == "" {
		path = "configs/prompts.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg PromptsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyPromptDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyPromptDefaults(cfg *PromptsConfig) {
	if cfg.ModelParams.MaxTokens == 0 {
		cfg.ModelParams.MaxTokens = 1024
	}

	for _, p := range cfg.all() {
		if p.Model == nil {
			defaults := cfg.ModelParams
			p.Model = &defaults
		}
		if p.Model.MaxTokens == 0 {
			p.Model.MaxTokens = cfg.ModelParams.MaxTokens
		}
	}
}

func (c *PromptsConfig) Validate() error {
	for name, p := range map[string]*PromptConfiguration{
		"router":            &c.Prompts.Router,
		"continue_dialogue": &c.Prompts.ContinueDialogue,
		"generate_plan":     &c.Prompts.GeneratePlan,
		"generate_query":    &c.Prompts.GenerateQuery,
		"explain_query":     &c.Prompts.ExplainQuery,
		"summarize":         &c.Prompts.Summarize,
	} {
		if p.Prompt == "" {
			return fmt.Errorf("prompt %s is empty", name)
		}
	}
	return nil
}

func (c *PromptsConfig) all() []*PromptConfiguration {
	return []*PromptConfiguration{
		&c.Prompts.Router,
		&c.Prompts.ContinueDialogue,
		&c.Prompts.GeneratePlan,
		&c.Prompts.GenerateQuery,
		&c.Prompts.ExplainQuery,
		&c.Prompts.Summarize,
	}
}

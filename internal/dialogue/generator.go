// Package dialogue generates the agent's conversational outputs: the
// clarifying turn, the investigation plan, the structured query, the
// query explanation and the result summary. Each output is one prompt
// template from configs/prompts.yaml executed against the current
// session context.
package dialogue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/rs/zerolog"

	"github.com/patentscout/patentscout/internal/config"
	"github.com/patentscout/patentscout/internal/llm"
	"github.com/patentscout/patentscout/internal/models"
	"github.com/patentscout/patentscout/internal/router"
)

// Generator renders prompts and invokes the chat model.
type Generator struct {
	llmClient llm.Client
	prompts   map[string]*compiledPrompt
	logger    *zerolog.Logger
}

type compiledPrompt struct {
	tmpl  *template.Template
	model config.ModelConfig
}

// PromptData is the single data shape every template is rendered with.
type PromptData struct {
	ChatHistory string
	PlanText    string
	QueryJSON   string
	Predicate   string
	PatentList  string
}

const (
	promptContinueDialogue = "continue_dialogue"
	promptGeneratePlan     = "generate_plan"
	promptGenerateQuery    = "generate_query"
	promptExplainQuery     = "explain_query"
	promptSummarize        = "summarize"
)

func NewGenerator(cfg *config.PromptsConfig, llmClient llm.Client, logger *zerolog.Logger) (*Generator, error) {
	prompts := make(map[string]*compiledPrompt)

	for name, pc := range map[string]config.PromptConfiguration{
		promptContinueDialogue: cfg.Prompts.ContinueDialogue,
		promptGeneratePlan:     cfg.Prompts.GeneratePlan,
		promptGenerateQuery:    cfg.Prompts.GenerateQuery,
		promptExplainQuery:     cfg.Prompts.ExplainQuery,
		promptSummarize:        cfg.Prompts.Summarize,
	} {
		tmpl, err := template.New(name).Parse(pc.Prompt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse prompt template %s: %w", name, err)
		}
		if pc.Model == nil {
			return nil, fmt.Errorf("prompt %s has nil model config (should be populated by config loader)", name)
		}
		prompts[name] = &compiledPrompt{tmpl: tmpl, model: *pc.Model}
	}

	return &Generator{
		llmClient: llmClient,
		prompts:   prompts,
		logger:    logger,
	}, nil
}

// ContinueDialogue produces the next clarifying question for the user.
func (g *Generator) ContinueDialogue(ctx context.Context, history []models.ChatTurn) (string, error) {
	return g.generate(ctx, promptContinueDialogue, PromptData{
		ChatHistory: router.FormatHistory(history),
	})
}

// GeneratePlan condenses the conversation into a short investigation
// plan.
func (g *Generator) GeneratePlan(ctx context.Context, history []models.ChatTurn) (string, error) {
	return g.generate(ctx, promptGeneratePlan, PromptData{
		ChatHistory: router.FormatHistory(history),
	})
}

// GenerateQuery asks the model for a structured search query as JSON
// and parses it. Markdown fences around the JSON are tolerated.
func (g *Generator) GenerateQuery(ctx context.Context, history []models.ChatTurn, planText string) (models.StructuredQuery, error) {
	var query models.StructuredQuery

	content, err := g.generate(ctx, promptGenerateQuery, PromptData{
		ChatHistory: router.FormatHistory(history),
		PlanText:    planText,
	})
	if err != nil {
		return query, err
	}

	content = stripMarkdownCodeBlock(content)
	if err := json.Unmarshal([]byte(content), &query); err != nil {
		g.logger.Error().Err(err).Str("content", content).Msg("failed to deserialize structured query")
		return query, fmt.Errorf("failed to deserialize structured query: %w", err)
	}

	if query.Limit == 0 {
		query.Limit = models.DefaultLimit
	}
	// Keywords is the flattened union once groups exist.
	if len(query.KeywordGroups) > 0 {
		query.Keywords = flatten(query.KeywordGroups)
	}

	return query, nil
}

// ExplainQuery describes the compiled search condition in plain
// language for non-technical readers.
func (g *Generator) ExplainQuery(ctx context.Context, predicate string, query models.StructuredQuery) (string, error) {
	queryJSON, err := json.MarshalIndent(query, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize query for explanation: %w", err)
	}

	return g.generate(ctx, promptExplainQuery, PromptData{
		Predicate: predicate,
		QueryJSON: string(queryJSON),
	})
}

// Summarize reviews the selected patents and the trend they show.
func (g *Generator) Summarize(ctx context.Context, docs []models.CandidateDocument) (string, error) {
	return g.generate(ctx, promptSummarize, PromptData{
		PatentList: formatPatentList(docs),
	})
}

func (g *Generator) generate(ctx context.Context, name string, data PromptData) (string, error) {
	p := g.prompts[name]

	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("template execution failed for %s: %w", name, err)
	}

	request := llm.Request{
		Prompt:      buf.String(),
		MaxTokens:   p.model.MaxTokens,
		Temperature: p.model.Temperature,
	}

	var resp *llm.Response
	var err error
	if p.model.Retry {
		resp, err = g.llmClient.InvokeModelWithRetry(ctx, request)
	} else {
		resp, err = g.llmClient.InvokeModel(ctx, request)
	}
	if err != nil {
		g.logger.Error().Err(err).Str("prompt", name).Msg("LLM call failed")
		return "", fmt.Errorf("%s generation failed: %w", name, err)
	}

	g.logger.Info().
		Str("prompt", name).
		Str("stop_reason", resp.StopReason).
		Msg("generation completed")

	return resp.Content, nil
}

func formatPatentList(docs []models.CandidateDocument) string {
	var sb strings.Builder
	for _, doc := range docs {
		fmt.Fprintf(&sb, "publication_number: %s\n", doc.PublicationNumber)
		fmt.Fprintf(&sb, "title: %s\n", doc.Title)
		fmt.Fprintf(&sb, "assignees: %s\n", strings.Join(doc.AssigneeNames, ", "))
		fmt.Fprintf(&sb, "abstract: %s\n\n", doc.Abstract)
	}
	return sb.String()
}

func flatten(groups [][]string) []string {
	seen := make(map[string]bool)
	var keywords []string
	for _, group := range groups {
		for _, kw := range group {
			if kw == "" || seen[kw] {
				continue
			}
			seen[kw] = true
			keywords = append(keywords, kw)
		}
	}
	return keywords
}

// stripMarkdownCodeBlock removes markdown code fences around a JSON
// payload if the model added them.
func stripMarkdownCodeBlock(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```") {
		firstNewline := strings.Index(content, "\n")
		if firstNewline == -1 {
			return content
		}

		closingBackticks := strings.LastIndex(content, "```")
		if closingBackticks == -1 || closingBackticks <= firstNewline {
			return content
		}

		content = content[firstNewline+1 : closingBackticks]
		content = strings.TrimSpace(content)
	}

	return content
}

// Package router decides the next pipeline stage from the chat
// history and the current investigation plan.
package router

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/rs/zerolog"

	"github.com/patentscout/patentscout/internal/config"
	"github.com/patentscout/patentscout/internal/llm"
	"github.com/patentscout/patentscout/internal/models"
)

// Decision is the discriminated routing outcome.
type Decision string

const (
	ContinueDialogue Decision = "continue_dialogue"
	GeneratePlan     Decision = "generate_plan"
	GenerateQuery    Decision = "generate_query"
)

// triggerPhrases short-circuit classification: when the latest user
// message contains one of them, the user has explicitly asked to move
// forward. Evaluated before any model call.
var triggerPhrases = []string{
	"検索して",
	"これでいい",
	"これでOK",
	"search now",
	"proceed",
	"that's fine",
}

// Router picks the next action. Deterministic triggers are evaluated
// first; model classification is the fallback; unparseable model
// output maps to the named default (ContinueDialogue).
type Router struct {
	llmClient llm.Client
	prompt    *template.Template
	model     config.ModelConfig
	logger    *zerolog.Logger
}

type promptData struct {
	ChatHistory string
	PlanText    string
}

func New(promptCfg config.PromptConfiguration, llmClient llm.Client, logger *zerolog.Logger) (*Router, error) {
	tmpl, err := template.New("router").Parse(promptCfg.Prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse router prompt template: %w", err)
	}
	if promptCfg.Model == nil {
		return nil, fmt.Errorf("router prompt has nil model config (should be populated by config loader)")
	}

	return &Router{
		llmClient: llmClient,
		prompt:    tmpl,
		model:     *promptCfg.Model,
		logger:    logger,
	}, nil
}

// Route returns the next stage decision. A classification failure is
// downgraded to ContinueDialogue and reported in the second return
// value so the caller can log it; the investigation never advances on
// a failed or unparseable classification.
func (r *Router) Route(ctx context.Context, history []models.ChatTurn, planText string) (Decision, error) {
	if decision, ok := r.routeByTrigger(history, planText); ok {
		r.logger.Info().Str("decision", string(decision)).Msg("routed by trigger phrase")
		return decision, nil
	}

	prompt, err := r.buildPrompt(history, planText)
	if err != nil {
		return ContinueDialogue, fmt.Errorf("failed to build router prompt: %w", err)
	}

	resp, err := r.invoke(ctx, prompt)
	if err != nil {
		return ContinueDialogue, fmt.Errorf("classification call failed: %w", err)
	}

	decision := parseDecision(resp.Content)
	r.logger.Info().Str("decision", string(decision)).Msg("routed by classification")
	return decision, nil
}

// routeByTrigger checks the latest user message for an explicit
// override. The override always wins over classification: query when
// a plan already exists, plan otherwise.
func (r *Router) routeByTrigger(history []models.ChatTurn, planText string) (Decision, bool) {
	var latest string
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == models.RoleUser {
			latest = history[i].Text
			break
		}
	}
	if latest == "" {
		return "", false
	}

	for _, phrase := range triggerPhrases {
		if strings.Contains(latest, phrase) {
			if planText != "" {
				return GenerateQuery, true
			}
			return GeneratePlan, true
		}
	}
	return "", false
}

func (r *Router) buildPrompt(history []models.ChatTurn, planText string) (string, error) {
	var buf bytes.Buffer
	err := r.prompt.Execute(&buf, promptData{
		ChatHistory: FormatHistory(history),
		PlanText:    planText,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *Router) invoke(ctx context.Context, prompt string) (*llm.Response, error) {
	request := llm.Request{
		Prompt:      prompt,
		MaxTokens:   r.model.MaxTokens,
		Temperature: r.model.Temperature,
	}
	if r.model.Retry {
		return r.llmClient.InvokeModelWithRetry(ctx, request)
	}
	return r.llmClient.InvokeModel(ctx, request)
}

// parseDecision maps the model's single-token answer onto a decision.
// generate_query is checked first so that an answer mentioning both
// labels advances no further than the model committed to.
func parseDecision(content string) Decision {
	content = strings.ToLower(content)
	if strings.Contains(content, string(GenerateQuery)) {
		return GenerateQuery
	}
	if strings.Contains(content, string(GeneratePlan)) {
		return GeneratePlan
	}
	return ContinueDialogue
}

// FormatHistory renders the chat history the way every prompt in the
// system expects it: one "role: text" line per turn.
func FormatHistory(history []models.ChatTurn) string {
	lines := make([]string, 0, len(history))
	for _, turn := range history {
		lines = append(lines, fmt.Sprintf("%s: %s", turn.Role, turn.Text))
	}
	return strings.Join(lines, "\n")
}

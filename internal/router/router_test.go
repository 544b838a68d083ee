package router

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/patentscout/patentscout/internal/config"
	"github.com/patentscout/patentscout/internal/llm"
	"github.com/patentscout/patentscout/internal/models"
)

type fakeLLM struct {
	content string
	err     error
	calls   int
}

func (f *fakeLLM) InvokeModel(ctx context.Context, request llm.Request) (*llm.Response, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &llm.Response{Content: f.content}, nil
}

func (f *fakeLLM) InvokeModelWithRetry(ctx context.Context, request llm.Request) (*llm.Response, error) {
	return f.InvokeModel(ctx, request)
}

func newTestRouter(t *testing.T, client llm.Client) *Router {
	t.Helper()
	logger := zerolog.Nop()
	r, err := New(config.PromptConfiguration{
		Prompt: "History: {{.ChatHistory}}\nPlan: {{.PlanText}}",
		Model:  &config.ModelConfig{MaxTokens: 16},
	}, client, &logger)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return r
}

func TestRoute_TriggerPhrase_WithPlan(t *testing.T) {
	// The classifier is primed to answer differently; the trigger must win.
	client := &fakeLLM{content: "continue_dialogue"}
	r := newTestRouter(t, client)

	history := []models.ChatTurn{
		{Role: models.RoleUser, Text: "I want to search battery separator patents"},
		{Role: models.RoleAssistant, Text: "Here is a draft plan."},
		{Role: models.RoleUser, Text: "proceed"},
	}

	decision, err := r.Route(context.Background(), history, "investigate separator coating tech")
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}
	if decision != GenerateQuery {
		t.Errorf("expected GenerateQuery, got %s", decision)
	}
	if client.calls != 0 {
		t.Errorf("expected no classification call, got %d", client.calls)
	}
}

func TestRoute_TriggerPhrase_WithoutPlan(t *testing.T) {
	r := newTestRouter(t, &fakeLLM{content: "generate_query"})

	history := []models.ChatTurn{
		{Role: models.RoleUser, Text: "that's fine, search now"},
	}

	decision, err := r.Route(context.Background(), history, "")
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}
	if decision != GeneratePlan {
		t.Errorf("expected GeneratePlan, got %s", decision)
	}
}

func TestRoute_Classification(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Decision
	}{
		{"query label", "generate_query", GenerateQuery},
		{"plan label", "The right action is 'generate_plan'.", GeneratePlan},
		{"continue label", "continue_dialogue", ContinueDialogue},
		{"unparseable output", "I am not sure.", ContinueDialogue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(t, &fakeLLM{content: tt.content})
			history := []models.ChatTurn{{Role: models.RoleUser, Text: "tell me about fuel cells"}}

			decision, err := r.Route(context.Background(), history, "")
			if err != nil {
				t.Fatalf("Route failed: %v", err)
			}
			if decision != tt.want {
				t.Errorf("got %s, want %s", decision, tt.want)
			}
		})
	}
}

func TestRoute_ClassificationFailure_DefaultsToContinue(t *testing.T) {
	r := newTestRouter(t, &fakeLLM{err: errors.New("model unavailable")})
	history := []models.ChatTurn{{Role: models.RoleUser, Text: "tell me about fuel cells"}}

	decision, err := r.Route(context.Background(), history, "some plan")
	if err == nil {
		t.Error("expected classification error to be reported")
	}
	if decision != ContinueDialogue {
		t.Errorf("expected safe default ContinueDialogue, got %s", decision)
	}
}

func TestRoute_EmptyHistory(t *testing.T) {
	r := newTestRouter(t, &fakeLLM{content: "continue_dialogue"})

	decision, err := r.Route(context.Background(), nil, "")
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}
	if decision != ContinueDialogue {
		t.Errorf("expected ContinueDialogue, got %s", decision)
	}
}

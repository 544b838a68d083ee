package llm

import (
	"context"
)

// Client is an interface for invoking chat-completion models.
// The router, dialogue generator and summarizer all talk to the model
// through it, so tests can substitute deterministic fakes.
type Client interface {
	InvokeModel(ctx context.Context, request Request) (*Response, error)
	InvokeModelWithRetry(ctx context.Context, request Request) (*Response, error)
}

// Package embedding defines the text-embedding collaborator contract
// used by the ranking engine, plus the model-backed implementations.
package embedding

import "context"

// Embedder produces embedding vectors for intent text and document
// fields. EmbedBatch is one logical operation regardless of how the
// provider transports it; the ranking engine issues one query call
// and one batch call per text field.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float64, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float64, error)
}

package gpt

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Embedder calls the OpenAI embeddings API. Batches go out as a
// single request.
type Embedder struct {
	Client  openai.Client
	ModelID string
}

func NewEmbedder(apiKey string, model string) (*Embedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if model == "" {
		return nil, fmt.Errorf("OpenAI embedding model ID is required")
	}

	openaiClient := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(3),
	)

	return &Embedder{
		Client:  openaiClient,
		ModelID: model,
	}, nil
}

func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float64, error) {
	vectors, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (e *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	output, err := e.Client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: texts,
		},
		Model: openai.EmbeddingModel(e.ModelID),
	})
	if err != nil {
		return nil, fmt.Errorf("unable to invoke embedding model: %w", err)
	}

	if len(output.Data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(output.Data))
	}

	vectors := make([][]float64, len(texts))
	for _, item := range output.Data {
		vectors[int(item.Index)] = item.Embedding
	}
	return vectors, nil
}

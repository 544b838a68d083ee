// Package ranking scores retrieved documents against the
// investigation intent using per-field embedding similarity.
package ranking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/patentscout/patentscout/internal/embedding"
	"github.com/patentscout/patentscout/internal/models"
)

// ErrNoIntentText is returned when neither a plan nor any user turn
// exists to rank against.
var ErrNoIntentText = errors.New("no investigation plan or user input to rank against")

type Engine struct {
	embedder embedding.Embedder
	logger   *zerolog.Logger
}

func NewEngine(embedder embedding.Embedder, logger *zerolog.Logger) *Engine {
	return &Engine{
		embedder: embedder,
		logger:   logger,
	}
}

// IntentText resolves the text candidates are scored against: the
// plan when one exists, otherwise the concatenated user turns.
func IntentText(planText string, history []models.ChatTurn) string {
	if strings.TrimSpace(planText) != "" {
		return planText
	}

	var lines []string
	for _, turn := range history {
		if turn.Role == models.RoleUser && strings.TrimSpace(turn.Text) != "" {
			lines = append(lines, turn.Text)
		}
	}
	return strings.Join(lines, "\n")
}

// Rank enriches each document with per-field similarities and a
// weighted score, then sorts by score descending (publication number
// ascending on ties). The input slice is never mutated.
//
// The intent is embedded once and each text field is embedded as one
// batch: four embedding calls total regardless of document count. The
// three field batches run concurrently; they are read-only and
// independent. On embedding failure the original documents come back
// unscored and in their original order alongside the error.
func (e *Engine) Rank(ctx context.Context, intentText string, docs []models.CandidateDocument, weights models.SimilarityWeights) ([]models.CandidateDocument, error) {
	if len(docs) == 0 {
		return []models.CandidateDocument{}, nil
	}
	if strings.TrimSpace(intentText) == "" {
		return docs, ErrNoIntentText
	}

	intentVec, err := e.embedder.EmbedQuery(ctx, intentText)
	if err != nil {
		return docs, fmt.Errorf("intent embedding failed: %w", err)
	}

	fields := []struct {
		name string
		text func(models.CandidateDocument) string
	}{
		{"title", func(d models.CandidateDocument) string { return d.Title }},
		{"abstract", func(d models.CandidateDocument) string { return d.Abstract }},
		{"claims", func(d models.CandidateDocument) string { return d.Claims }},
	}

	sims := make([][]float64, len(fields))
	errs := make([]error, len(fields))
	var wg sync.WaitGroup

	for i, field := range fields {
		wg.Add(1)
		go func(i int, name string, text func(models.CandidateDocument) string) {
			defer wg.Done()
			sims[i], errs[i] = e.fieldSimilarities(ctx, intentVec, docs, text)
			if errs[i] != nil {
				errs[i] = fmt.Errorf("%s embedding failed: %w", name, errs[i])
			}
		}(i, field.name, field.text)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return docs, err
		}
	}

	wTitle, wAbstract, wClaims := Normalize(weights)

	ranked := make([]models.CandidateDocument, len(docs))
	copy(ranked, docs)
	for i := range ranked {
		ranked[i].SimTitle = sims[0][i]
		ranked[i].SimAbstract = sims[1][i]
		ranked[i].SimClaims = sims[2][i]
		ranked[i].Score = sims[0][i]*wTitle + sims[1][i]*wAbstract + sims[2][i]*wClaims
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].PublicationNumber < ranked[j].PublicationNumber
	})

	e.logger.Info().
		Int("documents", len(ranked)).
		Float64("top_score", ranked[0].Score).
		Msg("ranking complete")

	return ranked, nil
}

// fieldSimilarities batch-embeds one text field across all documents
// and returns the similarity of each vector to the intent. Empty
// fields are excluded from the provider call and contribute 0.
func (e *Engine) fieldSimilarities(ctx context.Context, intentVec []float64, docs []models.CandidateDocument, text func(models.CandidateDocument) string) ([]float64, error) {
	var batch []string
	var batchIdx []int
	for i, doc := range docs {
		if t := strings.TrimSpace(text(doc)); t != "" {
			batch = append(batch, t)
			batchIdx = append(batchIdx, i)
		}
	}

	sims := make([]float64, len(docs))
	if len(batch) == 0 {
		return sims, nil
	}

	vectors, err := e.embedder.EmbedBatch(ctx, batch)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(batch) {
		return nil, fmt.Errorf("expected %d vectors, got %d", len(batch), len(vectors))
	}

	for j, i := range batchIdx {
		sims[i] = cosine(intentVec, vectors[j])
	}
	return sims, nil
}

// Normalize scales the three weights to sum to 1.0. A zero (or
// negative) sum falls back to equal thirds.
func Normalize(w models.SimilarityWeights) (title, abstract, claims float64) {
	sum := w.Sum()
	if sum <= 0 {
		third := 1.0 / 3.0
		return third, third, third
	}
	return w.Title / sum, w.Abstract / sum, w.Claims / sum
}

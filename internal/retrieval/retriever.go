// Package retrieval executes compiled predicates against a patent
// document store.
package retrieval

import (
	"context"

	"github.com/patentscout/patentscout/internal/models"
	"github.com/patentscout/patentscout/internal/query"
)

// Retriever is the retrieval executor collaborator: it renders the
// compiled predicate template into its store's dialect, binds the
// parameters and returns the matching documents. How the neutral
// SEARCH() text match is implemented is the store's choice.
type Retriever interface {
	Search(ctx context.Context, template string, params []query.Param) ([]models.CandidateDocument, error)
}

// Package pipeline sequences one conversation turn through routing,
// plan or query generation, compilation, retrieval and ranking. The
// orchestrator never raises past its boundary: every stage failure is
// recorded on the session state and the partially-populated state is
// returned to the caller.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/patentscout/patentscout/internal/models"
	"github.com/patentscout/patentscout/internal/query"
	"github.com/patentscout/patentscout/internal/ranking"
	"github.com/patentscout/patentscout/internal/router"
	"github.com/patentscout/patentscout/internal/session"
)

// DialogueRouter decides the next stage from the chat history and the
// current plan text.
type DialogueRouter interface {
	Route(ctx context.Context, history []models.ChatTurn, planText string) (router.Decision, error)
}

// Generator produces the LLM-backed artifacts of a turn.
type Generator interface {
	ContinueDialogue(ctx context.Context, history []models.ChatTurn) (string, error)
	GeneratePlan(ctx context.Context, history []models.ChatTurn) (string, error)
	GenerateQuery(ctx context.Context, history []models.ChatTurn, planText string) (models.StructuredQuery, error)
	ExplainQuery(ctx context.Context, predicate string, q models.StructuredQuery) (string, error)
	Summarize(ctx context.Context, docs []models.CandidateDocument) (string, error)
}

// Retriever executes a compiled predicate against the patent corpus.
type Retriever interface {
	Search(ctx context.Context, template string, params []query.Param) ([]models.CandidateDocument, error)
}

// Ranker scores candidate documents against the investigation intent.
type Ranker interface {
	Rank(ctx context.Context, intentText string, docs []models.CandidateDocument, weights models.SimilarityWeights) ([]models.CandidateDocument, error)
}

type Orchestrator struct {
	router    DialogueRouter
	generator Generator
	retriever Retriever
	ranker    Ranker
	timeout   time.Duration
	logger    *zerolog.Logger
}

func NewOrchestrator(dr DialogueRouter, gen Generator, ret Retriever, rank Ranker, timeout time.Duration, logger *zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		router:    dr,
		generator: gen,
		retriever: ret,
		ranker:    rank,
		timeout:   timeout,
		logger:    logger,
	}
}

// RunTurn processes one user message. ContinueDialogue and
// GeneratePlan are terminal for the turn; GenerateQuery flows on
// through compilation, retrieval and ranking in the same invocation.
func (o *Orchestrator) RunTurn(ctx context.Context, state session.State, userMessage string) session.State {
	state.LastError = nil
	if userMessage != "" {
		state.AppendTurn(models.RoleUser, userMessage)
	}

	state.CurrentStage = session.StageRoutingDialogue
	decision, err := o.route(ctx, state)
	if err != nil {
		// Downgraded to ContinueDialogue by the router; logged, not surfaced.
		o.logger.Warn().Err(err).Msg("routing classification failed, continuing dialogue")
	}
	o.logger.Info().Str("decision", string(decision)).Msg("dialogue routed")

	switch decision {
	case router.GeneratePlan:
		return o.generatePlan(ctx, state)
	case router.GenerateQuery:
		return o.generateQuery(ctx, state)
	default:
		return o.continueDialogue(ctx, state)
	}
}

// Summarize runs the on-demand summarization sub-path over a subset
// of the ranked results, selected by publication number.
func (o *Orchestrator) Summarize(ctx context.Context, state session.State, selected []string) session.State {
	state.LastError = nil
	state.CurrentStage = session.StageSummarizing

	docs, err := selectDocuments(state.RankedResults, selected)
	if err != nil {
		rec := state.RecordError(models.ErrInvalidSelection, session.StageSummarizing, err)
		o.logger.Warn().Err(rec).Msg("summarization selection rejected")
		state.CurrentStage = session.StageRanked
		return state
	}

	callCtx, cancel := o.callContext(ctx)
	summary, err := o.generator.Summarize(callCtx, docs)
	cancel()
	if err != nil {
		rec := state.RecordError(models.ErrSummarizeFailure, session.StageSummarizing, err)
		o.logger.Error().Err(rec).Msg("summarization failed")
		state.CurrentStage = session.StageRanked
		return state
	}

	state.Summary = summary
	state.AppendTurn(models.RoleAssistant, summary)
	state.CurrentStage = session.StageRanked
	return state
}

// Explain renders the current query's predicate and asks the
// generator for a prose explanation of it.
func (o *Orchestrator) Explain(ctx context.Context, state session.State) (string, error) {
	if state.SearchQuery == nil {
		return "", fmt.Errorf("no search query to explain")
	}

	template, _, err := query.Compile(*state.SearchQuery)
	if err != nil {
		return "", fmt.Errorf("failed to compile query for explanation: %w", err)
	}

	callCtx, cancel := o.callContext(ctx)
	defer cancel()
	return o.generator.ExplainQuery(callCtx, template, *state.SearchQuery)
}

func (o *Orchestrator) route(ctx context.Context, state session.State) (router.Decision, error) {
	callCtx, cancel := o.callContext(ctx)
	defer cancel()
	return o.router.Route(callCtx, state.ChatHistory, state.PlanText)
}

func (o *Orchestrator) continueDialogue(ctx context.Context, state session.State) session.State {
	state.CurrentStage = session.StageContinuingDialogue

	callCtx, cancel := o.callContext(ctx)
	defer cancel()
	reply, err := o.generator.ContinueDialogue(callCtx, state.ChatHistory)
	if err != nil {
		rec := state.RecordError(models.ErrGenerationFailure, session.StageContinuingDialogue, err)
		o.logger.Error().Err(rec).Msg("dialogue generation failed")
		return state
	}

	state.AppendTurn(models.RoleAssistant, reply)
	return state
}

func (o *Orchestrator) generatePlan(ctx context.Context, state session.State) session.State {
	state.CurrentStage = session.StageGeneratingPlan

	callCtx, cancel := o.callContext(ctx)
	defer cancel()
	plan, err := o.generator.GeneratePlan(callCtx, state.ChatHistory)
	if err != nil {
		rec := state.RecordError(models.ErrGenerationFailure, session.StageGeneratingPlan, err)
		o.logger.Error().Err(rec).Msg("plan generation failed")
		return state
	}

	state.PlanText = plan
	state.AppendTurn(models.RoleAssistant, plan)
	return state
}

func (o *Orchestrator) generateQuery(ctx context.Context, state session.State) session.State {
	state.CurrentStage = session.StageGeneratingQuery

	callCtx, cancel := o.callContext(ctx)
	q, err := o.generator.GenerateQuery(callCtx, state.ChatHistory, state.PlanText)
	cancel()
	if err != nil {
		rec := state.RecordError(models.ErrGenerationFailure, session.StageGeneratingQuery, err)
		o.logger.Error().Err(rec).Msg("query generation failed")
		return state
	}
	state.SearchQuery = &q

	return o.runSearch(ctx, state)
}

// runSearch carries a generated query through compilation, retrieval
// and ranking. Retrieval failure degrades to an empty result set and
// embedding failure to unscored pass-through; a validation error
// blocks before any external call.
func (o *Orchestrator) runSearch(ctx context.Context, state session.State) session.State {
	state.CurrentStage = session.StageCompilingQuery
	template, params, err := query.Compile(*state.SearchQuery)
	if err != nil {
		rec := state.RecordError(models.ErrValidation, session.StageCompilingQuery, err)
		o.logger.Error().Err(rec).Msg("query compilation rejected")
		return state
	}

	state.CurrentStage = session.StageRetrieving
	callCtx, cancel := o.callContext(ctx)
	docs, err := o.retriever.Search(callCtx, template, params)
	cancel()
	if err != nil {
		rec := state.RecordError(models.ErrRetrievalFailure, session.StageRetrieving, err)
		o.logger.Error().Err(rec).Msg("retrieval failed, continuing with empty results")
		docs = nil
	}
	state.RawResults = docs

	state.CurrentStage = session.StageRanking
	intent := ranking.IntentText(state.PlanText, state.ChatHistory)
	if intent == "" {
		rec := state.RecordError(models.ErrRankingInput, session.StageRanking, ranking.ErrNoIntentText)
		o.logger.Error().Err(rec).Msg("ranking skipped")
		state.RankedResults = docs
		state.CurrentStage = session.StageRanked
		return state
	}

	callCtx, cancel = o.callContext(ctx)
	ranked, err := o.ranker.Rank(callCtx, intent, docs, state.Weights)
	cancel()
	if err != nil {
		rec := state.RecordError(models.ErrEmbeddingFailure, session.StageRanking, err)
		o.logger.Error().Err(rec).Msg("ranking degraded to unscored results")
	}
	state.RankedResults = ranked

	state.CurrentStage = session.StageRanked
	o.logger.Info().Int("documents", len(ranked)).Msg("search turn complete")
	return state
}

func (o *Orchestrator) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, o.timeout)
}

func selectDocuments(ranked []models.CandidateDocument, selected []string) ([]models.CandidateDocument, error) {
	if len(ranked) == 0 {
		return nil, fmt.Errorf("no ranked results to summarize")
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("empty publication number selection")
	}

	byNumber := make(map[string]models.CandidateDocument, len(ranked))
	for _, doc := range ranked {
		byNumber[doc.PublicationNumber] = doc
	}

	docs := make([]models.CandidateDocument, 0, len(selected))
	for _, num := range selected {
		doc, ok := byNumber[num]
		if !ok {
			return nil, fmt.Errorf("publication number %q is not in the ranked results", num)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

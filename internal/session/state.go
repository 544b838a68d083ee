// Package session holds the per-conversation pipeline state and an
// in-memory store keyed by session ID. One session drives one
// pipeline run at a time; the store serializes updates per session.
package session

import (
	"github.com/patentscout/patentscout/internal/models"
)

// Stage names the pipeline position a session last reached.
type Stage string

const (
	StageIdle               Stage = "idle"
	StageRoutingDialogue    Stage = "routing_dialogue"
	StageContinuingDialogue Stage = "continuing_dialogue"
	StageGeneratingPlan     Stage = "generating_plan"
	StageGeneratingQuery    Stage = "generating_query"
	StageCompilingQuery     Stage = "compiling_query"
	StageRetrieving         Stage = "retrieving"
	StageRanking            Stage = "ranking"
	StageRanked             Stage = "ranked"
	StageSummarizing        Stage = "summarizing"
)

// State is the single source of truth for one investigation session.
// Stages receive a copy and return an updated copy; the orchestrator
// is the only writer that commits a result back to the store.
type State struct {
	ChatHistory   []models.ChatTurn          `json:"chat_history"`
	PlanText      string                     `json:"plan_text,omitempty"`
	SearchQuery   *models.StructuredQuery    `json:"search_query,omitempty"`
	RawResults    []models.CandidateDocument `json:"raw_results,omitempty"`
	RankedResults []models.CandidateDocument `json:"ranked_results,omitempty"`
	Weights       models.SimilarityWeights   `json:"similarity_weights"`
	Summary       string                     `json:"summary,omitempty"`
	LastError     *models.ErrorRecord        `json:"last_error,omitempty"`
	CurrentStage  Stage                      `json:"current_stage"`
}

// NewState creates an empty session state at the idle stage.
func NewState(weights models.SimilarityWeights) State {
	return State{
		Weights:      weights,
		CurrentStage: StageIdle,
	}
}

// Clone deep-copies the state so a stage can never alias the stored
// slices of a committed session.
func (s State) Clone() State {
	out := s
	out.ChatHistory = append([]models.ChatTurn(nil), s.ChatHistory...)
	out.RawResults = cloneDocuments(s.RawResults)
	out.RankedResults = cloneDocuments(s.RankedResults)
	if s.SearchQuery != nil {
		q := *s.SearchQuery
		q.IPCCodes = append([]string(nil), s.SearchQuery.IPCCodes...)
		q.Keywords = append([]string(nil), s.SearchQuery.Keywords...)
		q.KeywordGroups = cloneGroups(s.SearchQuery.KeywordGroups)
		q.MainKeywords = append([]string(nil), s.SearchQuery.MainKeywords...)
		q.RelatedKeywords = append([]string(nil), s.SearchQuery.RelatedKeywords...)
		q.CountryCodes = append([]string(nil), s.SearchQuery.CountryCodes...)
		q.Assignees = append([]string(nil), s.SearchQuery.Assignees...)
		out.SearchQuery = &q
	}
	if s.LastError != nil {
		e := *s.LastError
		out.LastError = &e
	}
	return out
}

// AppendTurn records one chat message on the history.
func (s *State) AppendTurn(role models.Role, text string) {
	s.ChatHistory = append(s.ChatHistory, models.ChatTurn{Role: role, Text: text})
}

// RecordError captures a failure as the session's surfaced error and
// returns the record for logging at the call site.
func (s *State) RecordError(kind models.ErrorKind, stage Stage, err error) *models.ErrorRecord {
	rec := models.NewErrorRecord(kind, string(stage), err)
	s.LastError = rec
	return rec
}

func cloneDocuments(docs []models.CandidateDocument) []models.CandidateDocument {
	if docs == nil {
		return nil
	}
	out := make([]models.CandidateDocument, len(docs))
	for i, d := range docs {
		out[i] = d
		out[i].AssigneeNames = append([]string(nil), d.AssigneeNames...)
		out[i].IPCCodes = append([]string(nil), d.IPCCodes...)
	}
	return out
}

func cloneGroups(groups [][]string) [][]string {
	if groups == nil {
		return nil
	}
	out := make([][]string, len(groups))
	for i, g := range groups {
		out[i] = append([]string(nil), g...)
	}
	return out
}

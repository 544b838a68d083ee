package api

import (
	"github.com/patentscout/patentscout/internal/models"
	"github.com/patentscout/patentscout/internal/session"
)

type HealthResponse struct {
	Status  string `json:"status" description:"Service status"`
	Version string `json:"version" description:"Service version"`
}

type CreateSessionResponse struct {
	SessionID string `json:"session_id" description:"UUID of the new session"`
}

type MessageRequest struct {
	Message string `json:"message" description:"Next user utterance"`
}

type SummarizeRequest struct {
	PublicationNumbers []string `json:"publication_numbers" description:"Subset of ranked results to summarize"`
}

// SessionView is the API projection of a session state after a
// pipeline invocation.
type SessionView struct {
	SessionID     string                     `json:"session_id"`
	Stage         string                     `json:"stage"`
	ChatHistory   []models.ChatTurn          `json:"chat_history"`
	PlanText      string                     `json:"plan_text,omitempty"`
	SearchQuery   *models.StructuredQuery    `json:"search_query,omitempty"`
	RankedResults []models.CandidateDocument `json:"ranked_results,omitempty"`
	Summary       string                     `json:"summary,omitempty"`
	LastError     *models.ErrorRecord        `json:"last_error,omitempty"`
}

type ExplanationResponse struct {
	Explanation string `json:"explanation" description:"Prose explanation of the compiled search condition"`
}

func toSessionView(id string, state session.State) SessionView {
	return SessionView{
		SessionID:     id,
		Stage:         string(state.CurrentStage),
		ChatHistory:   state.ChatHistory,
		PlanText:      state.PlanText,
		SearchQuery:   state.SearchQuery,
		RankedResults: state.RankedResults,
		Summary:       state.Summary,
		LastError:     state.LastError,
	}
}

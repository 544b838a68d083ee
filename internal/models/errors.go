package models

import "fmt"

// ErrorKind classifies a pipeline failure. Every failure is captured
// into SessionState.LastError; no stage raises past the orchestrator.
type ErrorKind string

const (
	ErrValidation        ErrorKind = "validation_error"
	ErrCompilation       ErrorKind = "compilation_error"
	ErrRetrievalFailure  ErrorKind = "retrieval_failure"
	ErrRankingInput      ErrorKind = "ranking_input_missing"
	ErrEmbeddingFailure  ErrorKind = "embedding_failure"
	ErrClassification    ErrorKind = "classification_failure"
	ErrSummarizeFailure  ErrorKind = "summarization_failure"
	ErrInvalidSelection  ErrorKind = "invalid_selection"
	ErrGenerationFailure ErrorKind = "generation_failure"
)

// ErrorRecord is the single error channel surfaced on the session.
type ErrorRecord struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Stage   string    `json:"stage,omitempty"`
}

func NewErrorRecord(kind ErrorKind, stage string, err error) *ErrorRecord {
	return &ErrorRecord{
		Kind:    kind,
		Message: err.Error(),
		Stage:   stage,
	}
}

func (e *ErrorRecord) Error() string {
	return fmt.Sprintf("%s at %s: %s", e.Kind, e.Stage, e.Message)
}

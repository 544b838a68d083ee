package api

import (
	"errors"
	"net/http"

	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog"

	"github.com/patentscout/patentscout/internal/api/middleware"
	"github.com/patentscout/patentscout/internal/models"
	"github.com/patentscout/patentscout/internal/pipeline"
	"github.com/patentscout/patentscout/internal/session"
)

type Handler struct {
	orchestrator *pipeline.Orchestrator
	store        *session.Store
	weights      models.SimilarityWeights
	logger       *zerolog.Logger
}

func NewHandler(orchestrator *pipeline.Orchestrator, store *session.Store, weights models.SimilarityWeights, logger *zerolog.Logger) *Handler {
	return &Handler{
		orchestrator: orchestrator,
		store:        store,
		weights:      weights,
		logger:       logger,
	}
}

// POST /api/v1/sessions
func (h *Handler) CreateSession(req *restful.Request, resp *restful.Response) {
	id := h.store.Create(h.weights)
	h.logger.Info().Str("session_id", id).Msg("session created")
	resp.WriteHeaderAndEntity(http.StatusCreated, CreateSessionResponse{SessionID: id})
}

// GET /api/v1/sessions/{session_id}
func (h *Handler) GetSession(req *restful.Request, resp *restful.Response) {
	id := req.PathParameter("session_id")

	state, err := h.store.Get(id)
	if err != nil {
		h.writeStoreError(resp, err)
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, toSessionView(id, state))
}

// DELETE /api/v1/sessions/{session_id}
func (h *Handler) DeleteSession(req *restful.Request, resp *restful.Response) {
	id := req.PathParameter("session_id")
	h.store.Delete(id)
	resp.WriteHeader(http.StatusNoContent)
}

// POST /api/v1/sessions/{session_id}/messages
// Body: MessageRequest
// Runs one pipeline turn and returns the updated session.
func (h *Handler) PostMessage(req *restful.Request, resp *restful.Response) {
	id := req.PathParameter("session_id")

	var msgReq MessageRequest
	if err := req.ReadEntity(&msgReq); err != nil {
		h.logger.Error().Err(err).Msg("failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	ctx := req.Request.Context()
	state, err := h.store.Update(id, func(s session.State) session.State {
		return h.orchestrator.RunTurn(ctx, s, msgReq.Message)
	})
	if err != nil {
		h.writeStoreError(resp, err)
		return
	}

	h.logger.Info().
		Str("session_id", id).
		Str("stage", string(state.CurrentStage)).
		Msg("turn complete")

	resp.WriteHeaderAndEntity(http.StatusOK, toSessionView(id, state))
}

// POST /api/v1/sessions/{session_id}/summaries
// Body: SummarizeRequest
func (h *Handler) Summarize(req *restful.Request, resp *restful.Response) {
	id := req.PathParameter("session_id")

	var sumReq SummarizeRequest
	if err := req.ReadEntity(&sumReq); err != nil {
		h.logger.Error().Err(err).Msg("failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	ctx := req.Request.Context()
	state, err := h.store.Update(id, func(s session.State) session.State {
		return h.orchestrator.Summarize(ctx, s, sumReq.PublicationNumbers)
	})
	if err != nil {
		h.writeStoreError(resp, err)
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, toSessionView(id, state))
}

// GET /api/v1/sessions/{session_id}/query/explanation
func (h *Handler) ExplainQuery(req *restful.Request, resp *restful.Response) {
	id := req.PathParameter("session_id")

	state, err := h.store.Get(id)
	if err != nil {
		h.writeStoreError(resp, err)
		return
	}

	explanation, err := h.orchestrator.Explain(req.Request.Context(), state)
	if err != nil {
		h.logger.Error().Err(err).Str("session_id", id).Msg("query explanation failed")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, ExplanationResponse{Explanation: explanation})
}

// GET /api/v1/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	resp.WriteHeaderAndEntity(http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: "1.0.0",
	})
}

func (h *Handler) writeStoreError(resp *restful.Response, err error) {
	if errors.Is(err, session.ErrNotFound) {
		middleware.HandleError(resp, err, http.StatusNotFound)
		return
	}
	middleware.HandleError(resp, err, http.StatusInternalServerError)
}

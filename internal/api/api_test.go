package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"

	"github.com/patentscout/patentscout/internal/api"
	"github.com/patentscout/patentscout/internal/api/middleware"
	"github.com/patentscout/patentscout/internal/models"
	"github.com/patentscout/patentscout/internal/pipeline"
	"github.com/patentscout/patentscout/internal/pipeline/mocks"
	"github.com/patentscout/patentscout/internal/router"
	"github.com/patentscout/patentscout/internal/session"
)

type testAPI struct {
	container *restful.Container
	store     *session.Store
	router    *mocks.MockDialogueRouter
	generator *mocks.MockGenerator
	retriever *mocks.MockRetriever
	ranker    *mocks.MockRanker
}

func setupTestAPI(t *testing.T) *testAPI {
	ctrl := gomock.NewController(t)
	logger := zerolog.Nop()

	a := &testAPI{
		store:     session.NewStore(),
		router:    mocks.NewMockDialogueRouter(ctrl),
		generator: mocks.NewMockGenerator(ctrl),
		retriever: mocks.NewMockRetriever(ctrl),
		ranker:    mocks.NewMockRanker(ctrl),
	}

	orchestrator := pipeline.NewOrchestrator(a.router, a.generator, a.retriever, a.ranker, 0, &logger)
	handler := api.NewHandler(orchestrator, a.store, models.DefaultWeights(), &logger)

	a.container = restful.NewContainer()
	a.container.Filter(middleware.RecoverPanic)
	api.RegisterRoutes(a.container, handler)
	return a
}

func postJSON(t *testing.T, container *restful.Container, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, req)
	return recorder
}

func TestAPI_Health(t *testing.T) {
	a := setupTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	recorder := httptest.NewRecorder()
	a.container.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", recorder.Code)
	}

	var response api.HealthResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if response.Status != "ok" {
		t.Errorf("expected status 'ok', got %q", response.Status)
	}
}

func TestAPI_CreateSessionAndPostMessage(t *testing.T) {
	a := setupTestAPI(t)

	recorder := postJSON(t, a.container, "/api/v1/sessions", nil)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", recorder.Code)
	}

	var created api.CreateSessionResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if created.SessionID == "" {
		t.Fatal("expected a session ID")
	}

	a.router.EXPECT().Route(gomock.Any(), gomock.Any(), gomock.Any()).Return(router.ContinueDialogue, nil)
	a.generator.EXPECT().ContinueDialogue(gomock.Any(), gomock.Any()).Return("どの分野ですか？", nil)

	recorder = postJSON(t, a.container, "/api/v1/sessions/"+created.SessionID+"/messages",
		api.MessageRequest{Message: "特許を調べたい"})
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var view api.SessionView
	if err := json.Unmarshal(recorder.Body.Bytes(), &view); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if view.Stage != string(session.StageContinuingDialogue) {
		t.Errorf("stage = %s, want %s", view.Stage, session.StageContinuingDialogue)
	}
	if len(view.ChatHistory) != 2 {
		t.Errorf("expected 2 chat turns, got %d", len(view.ChatHistory))
	}
}

func TestAPI_PostMessageUnknownSession(t *testing.T) {
	a := setupTestAPI(t)

	recorder := postJSON(t, a.container, "/api/v1/sessions/unknown/messages",
		api.MessageRequest{Message: "hello"})

	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", recorder.Code)
	}

	var response middleware.ErrorResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if response.Code != http.StatusNotFound {
		t.Errorf("error code = %d, want 404", response.Code)
	}
}

func TestAPI_SummarizeInvalidSelectionSurfacesError(t *testing.T) {
	a := setupTestAPI(t)

	recorder := postJSON(t, a.container, "/api/v1/sessions", nil)
	var created api.CreateSessionResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}

	recorder = postJSON(t, a.container, "/api/v1/sessions/"+created.SessionID+"/summaries",
		api.SummarizeRequest{PublicationNumbers: []string{"JP-999"}})
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", recorder.Code)
	}

	var view api.SessionView
	if err := json.Unmarshal(recorder.Body.Bytes(), &view); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if view.LastError == nil || view.LastError.Kind != models.ErrInvalidSelection {
		t.Errorf("expected invalid selection on last_error, got %+v", view.LastError)
	}
}

func TestAPI_ExplainWithoutQuery(t *testing.T) {
	a := setupTestAPI(t)

	recorder := postJSON(t, a.container, "/api/v1/sessions", nil)
	var created api.CreateSessionResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions/"+created.SessionID+"/query/explanation", nil)
	rec := httptest.NewRecorder()
	a.container.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestAPI_DeleteSession(t *testing.T) {
	a := setupTestAPI(t)

	recorder := postJSON(t, a.container, "/api/v1/sessions", nil)
	var created api.CreateSessionResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/sessions/"+created.SessionID, nil)
	rec := httptest.NewRecorder()
	a.container.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/sessions/"+created.SessionID, nil)
	rec = httptest.NewRecorder()
	a.container.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 after delete, got %d", rec.Code)
	}
}

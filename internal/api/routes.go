package api

import (
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"

	"github.com/patentscout/patentscout/internal/api/middleware"
)

func RegisterRoutes(container *restful.Container, handler *Handler) {
	ws := new(restful.WebService)

	ws.
		Path("/api/v1").
		Consumes(restful.MIME_JSON).
		Produces(restful.MIME_JSON)

	// Health endpoint
	ws.
		Route(ws.GET("health").
			To(handler.Health).
			Doc("Health check").
			Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
			Writes(HealthResponse{}).
			Returns(200, "OK", HealthResponse{}))

	ws.
		Route(ws.POST("/sessions").
			To(handler.CreateSession).
			Doc("Start a new investigation session").
			Metadata(restfulspec.KeyOpenAPITags, []string{"sessions"}).
			Writes(CreateSessionResponse{}).
			Returns(201, "Created", CreateSessionResponse{}))

	ws.
		Route(ws.GET("/sessions/{session_id}").
			To(handler.GetSession).
			Doc("Get the current session state").
			Metadata(restfulspec.KeyOpenAPITags, []string{"sessions"}).
			Param(ws.PathParameter("session_id", "Session UUID").DataType("string")).
			Writes(SessionView{}).
			Returns(200, "OK", SessionView{}).
			Returns(404, "Session Not Found", middleware.ErrorResponse{}))

	ws.
		Route(ws.DELETE("/sessions/{session_id}").
			To(handler.DeleteSession).
			Doc("Discard a session").
			Metadata(restfulspec.KeyOpenAPITags, []string{"sessions"}).
			Param(ws.PathParameter("session_id", "Session UUID").DataType("string")).
			Returns(204, "No Content", nil))

	ws.
		Route(ws.POST("/sessions/{session_id}/messages").
			To(handler.PostMessage).
			Doc("Send a user message and run one pipeline turn").
			Metadata(restfulspec.KeyOpenAPITags, []string{"dialogue"}).
			Param(ws.PathParameter("session_id", "Session UUID").DataType("string")).
			Reads(MessageRequest{}).
			Writes(SessionView{}).
			Returns(200, "OK", SessionView{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(404, "Session Not Found", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.POST("/sessions/{session_id}/summaries").
			To(handler.Summarize).
			Doc("Summarize a selection of the ranked results").
			Metadata(restfulspec.KeyOpenAPITags, []string{"dialogue"}).
			Param(ws.PathParameter("session_id", "Session UUID").DataType("string")).
			Reads(SummarizeRequest{}).
			Writes(SessionView{}).
			Returns(200, "OK", SessionView{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(404, "Session Not Found", middleware.ErrorResponse{}))

	ws.
		Route(ws.GET("/sessions/{session_id}/query/explanation").
			To(handler.ExplainQuery).
			Doc("Explain the compiled search condition in prose").
			Metadata(restfulspec.KeyOpenAPITags, []string{"dialogue"}).
			Param(ws.PathParameter("session_id", "Session UUID").DataType("string")).
			Writes(ExplanationResponse{}).
			Returns(200, "OK", ExplanationResponse{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(404, "Session Not Found", middleware.ErrorResponse{}))

	container.Add(ws)
}

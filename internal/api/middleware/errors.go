package middleware

import (
	"github.com/emicklei/go-restful/v3"
)

type ErrorResponse struct {
	Error   string `json:"error" description:"Error message"`
	Code    int    `json:"code" description:"HTTP status code"`
	Details string `json:"details,omitempty" description:"Additional error details"`
}

// HandleError writes a JSON error body with the given status code.
func HandleError(resp *restful.Response, err error, code int) {
	_ = resp.WriteHeaderAndEntity(code, ErrorResponse{
		Error: err.Error(),
		Code:  code,
	})
}

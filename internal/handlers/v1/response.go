package v1

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/daddeck/daddeck-api/internal/errors"
)

// Envelope is the uniform response body for every v1 endpoint
type Envelope struct {
	Data  interface{}    `json:"data,omitempty"`
	Error *ErrorBody     `json:"error,omitempty"`
	Meta  map[string]any `json:"meta"`
}

// ErrorBody carries a machine-readable code and a human-readable message
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Envelope{
		Data: data,
		Meta: map[string]any{"requestId": requestIDFrom(c)},
	})
}

func respondError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := code.HTTPStatus()

	if status >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"request_id", requestIDFrom(c),
			"error", err,
		)
	}

	message := err.Error()
	if status >= http.StatusInternalServerError {
		// Internal detail stays in the logs
		message = "internal error"
	}

	c.AbortWithStatusJSON(status, Envelope{
		Error: &ErrorBody{
			Code:    string(code),
			Message: message,
		},
		Meta: map[string]any{"requestId": requestIDFrom(c)},
	})
}

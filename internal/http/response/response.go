package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ymorita/studylog/internal/pkg/apierr"
)

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code, msg string) {
	if msg == "" {
		msg = http.StatusText(status)
	}
	c.JSON(status, ErrorEnvelope{Error: APIError{Code: code, Message: msg}})
}

// RespondAPIError maps any error to the envelope. Only the taxonomy-level
// message reaches the body; the underlying cause is attached to the request
// context so the request log line carries it.
func RespondAPIError(c *gin.Context, err error) {
	if apiErr, ok := apierr.As(err); ok {
		if apiErr.Err != nil {
			_ = c.Error(apiErr)
		}
		RespondError(c, apiErr.Status, apiErr.Code, apiErr.Message())
		return
	}
	if err != nil {
		_ = c.Error(err)
	}
	RespondError(c, http.StatusInternalServerError, apierr.CodeInternalServerError, "internal server error")
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

func RespondNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ymorita/studylog/internal/http/response"
	"github.com/ymorita/studylog/internal/identity"
	"github.com/ymorita/studylog/internal/pkg/apierr"
)

const maxBodyBytes = 1 << 20

// requireOwner pulls the resolved owner from the request context. The auth
// middleware guarantees it on protected routes; a miss here is a wiring bug
// and still answers 401 rather than proceeding unscoped.
func requireOwner(c *gin.Context) (uuid.UUID, bool) {
	ownerID, ok := identity.OwnerFromContext(c.Request.Context())
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, "authentication required")
		return uuid.Nil, false
	}
	return ownerID, true
}

func notFound(resource string) *apierr.Error {
	return apierr.NotFound(resource + " not found")
}

func readBody(c *gin.Context) ([]byte, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, apierr.CodeBadRequest, "invalid request body")
		return nil, false
	}
	return raw, true
}

package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ymorita/studylog/internal/identity"
	"github.com/ymorita/studylog/internal/pkg/apierr"
	"github.com/ymorita/studylog/internal/pkg/logger"
	"github.com/ymorita/studylog/internal/http/response"
)

type AuthMiddleware struct {
	log      *logger.Logger
	resolver identity.Resolver
}

func NewAuthMiddleware(log *logger.Logger, resolver identity.Resolver) *AuthMiddleware {
	return &AuthMiddleware{log: log.With("middleware", "AuthMiddleware"), resolver: resolver}
}

// RequireAuth resolves the request's owner identity and rejects with 401
// before any handler or service code runs.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID, err := am.resolver.Resolve(c.Request)
		if err != nil {
			if !errors.Is(err, identity.ErrUnauthenticated) {
				am.log.Warn("identity resolution failed", "path", c.FullPath(), "error", err)
			}
			response.RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, "authentication required")
			c.Abort()
			return
		}
		c.Request = c.Request.WithContext(identity.WithOwner(c.Request.Context(), ownerID))
		c.Next()
	}
}

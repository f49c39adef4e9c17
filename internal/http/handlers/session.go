package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ymorita/studylog/internal/http/response"
)

type SessionHandler struct{}

func NewSessionHandler() *SessionHandler { return &SessionHandler{} }

// Get handles GET /auth/session, echoing back the resolved caller identity.
func (h *SessionHandler) Get(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	response.RespondOK(c, gin.H{"userId": ownerID})
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ymorita/studylog/internal/http/response"
	"github.com/ymorita/studylog/internal/pkg/logger"
	"github.com/ymorita/studylog/internal/services"
	"github.com/ymorita/studylog/internal/validation"
)

type ThemeHandler struct {
	themes services.ThemeService
	log    *logger.Logger
}

func NewThemeHandler(themes services.ThemeService, log *logger.Logger) *ThemeHandler {
	return &ThemeHandler{themes: themes, log: log.With("handler", "ThemeHandler")}
}

// List handles GET /themes.
func (h *ThemeHandler) List(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}

	limit, apiErr := validation.Limit(c.Query("limit"))
	if apiErr != nil {
		response.RespondAPIError(c, apiErr)
		return
	}

	page, err := h.themes.List(c.Request.Context(), ownerID, services.ThemeListParams{
		IncludeCompleted: c.Query("includeCompleted") == "true",
		IncludeArchived:  c.Query("includeArchived") == "true",
		Limit:            limit,
		Cursor:           c.Query("cursor"),
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, page)
}

// Create handles POST /themes.
func (h *ThemeHandler) Create(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	raw, ok := readBody(c)
	if !ok {
		return
	}

	in, apiErr := validation.ThemeCreate(raw)
	if apiErr != nil {
		response.RespondAPIError(c, apiErr)
		return
	}

	theme, err := h.themes.Create(c.Request.Context(), ownerID, in)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, theme)
}

// Get handles GET /themes/{id}.
func (h *ThemeHandler) Get(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	id, apiErr := validation.UUIDParam(c.Param("id"), "id")
	if apiErr != nil {
		response.RespondAPIError(c, apiErr)
		return
	}

	theme, err := h.themes.Get(c.Request.Context(), ownerID, id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, theme)
}

// Update handles PATCH /themes/{id}.
func (h *ThemeHandler) Update(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	id, apiErr := validation.UUIDParam(c.Param("id"), "id")
	if apiErr != nil {
		response.RespondAPIError(c, apiErr)
		return
	}
	raw, ok := readBody(c)
	if !ok {
		return
	}

	updates, apiErr := validation.ThemePatch(raw)
	if apiErr != nil {
		response.RespondAPIError(c, apiErr)
		return
	}

	theme, err := h.themes.Update(c.Request.Context(), ownerID, id, updates)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, theme)
}

// Delete handles DELETE /themes/{id}.
func (h *ThemeHandler) Delete(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	id, apiErr := validation.UUIDParam(c.Param("id"), "id")
	if apiErr != nil {
		response.RespondAPIError(c, apiErr)
		return
	}

	deleted, err := h.themes.Delete(c.Request.Context(), ownerID, id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	if !deleted {
		response.RespondAPIError(c, notFound("theme"))
		return
	}
	response.RespondNoContent(c)
}

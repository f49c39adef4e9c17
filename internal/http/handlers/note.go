package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ymorita/studylog/internal/http/response"
	"github.com/ymorita/studylog/internal/pkg/logger"
	"github.com/ymorita/studylog/internal/services"
	"github.com/ymorita/studylog/internal/validation"
)

type NoteHandler struct {
	notes services.NoteService
	log   *logger.Logger
}

func NewNoteHandler(notes services.NoteService, log *logger.Logger) *NoteHandler {
	return &NoteHandler{notes: notes, log: log.With("handler", "NoteHandler")}
}

// List handles GET /notes.
func (h *NoteHandler) List(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}

	params := services.NoteListParams{Cursor: c.Query("cursor")}

	if raw := c.Query("category"); raw != "" {
		category, apiErr := validation.CategoryParam(raw)
		if apiErr != nil {
			response.RespondAPIError(c, apiErr)
			return
		}
		params.Category = &category
	}
	if raw := c.Query("themeId"); raw != "" {
		themeID, apiErr := validation.UUIDParam(raw, "themeId")
		if apiErr != nil {
			response.RespondAPIError(c, apiErr)
			return
		}
		params.ThemeID = &themeID
	}
	start, end, rangeErr := dateRange(c)
	if rangeErr != nil {
		response.RespondAPIError(c, rangeErr)
		return
	}
	params.Start, params.End = start, end
	limit, limitErr := validation.Limit(c.Query("limit"))
	if limitErr != nil {
		response.RespondAPIError(c, limitErr)
		return
	}
	params.Limit = limit

	page, err := h.notes.List(c.Request.Context(), ownerID, params)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, page)
}

// Create handles POST /notes.
func (h *NoteHandler) Create(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	raw, ok := readBody(c)
	if !ok {
		return
	}

	in, apiErr := validation.NoteCreate(raw)
	if apiErr != nil {
		response.RespondAPIError(c, apiErr)
		return
	}

	note, err := h.notes.Create(c.Request.Context(), ownerID, in)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, note)
}

// Get handles GET /notes/{id}. The response carries the related log summary
// and linked theme names alongside the note itself.
func (h *NoteHandler) Get(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	id, apiErr := validation.UUIDParam(c.Param("id"), "id")
	if apiErr != nil {
		response.RespondAPIError(c, apiErr)
		return
	}

	detail, err := h.notes.Get(c.Request.Context(), ownerID, id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, detail)
}

// Update handles PATCH /notes/{id}.
func (h *NoteHandler) Update(c *gin.Context) {
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

	updates, themeIDs, apiErr := validation.NotePatch(raw)
	if apiErr != nil {
		response.RespondAPIError(c, apiErr)
		return
	}

	note, err := h.notes.Update(c.Request.Context(), ownerID, id, updates, themeIDs)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, note)
}

// Delete handles DELETE /notes/{id}.
func (h *NoteHandler) Delete(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	id, apiErr := validation.UUIDParam(c.Param("id"), "id")
	if apiErr != nil {
		response.RespondAPIError(c, apiErr)
		return
	}

	deleted, err := h.notes.Delete(c.Request.Context(), ownerID, id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	if !deleted {
		response.RespondAPIError(c, notFound("note"))
		return
	}
	response.RespondNoContent(c)
}

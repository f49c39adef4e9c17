package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ymorita/studylog/internal/domain/journal"
	"github.com/ymorita/studylog/internal/http/response"
	"github.com/ymorita/studylog/internal/pkg/logger"
	"github.com/ymorita/studylog/internal/services"
	"github.com/ymorita/studylog/internal/validation"
)

type LogHandler struct {
	logs services.LogService
	log  *logger.Logger
}

func NewLogHandler(logs services.LogService, log *logger.Logger) *LogHandler {
	return &LogHandler{logs: logs, log: log.With("handler", "LogHandler")}
}

// List handles GET /logs.
func (h *LogHandler) List(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}

	params := services.LogListParams{Cursor: c.Query("cursor")}

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

	page, err := h.logs.List(c.Request.Context(), ownerID, params)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, page)
}

// Create handles POST /logs.
func (h *LogHandler) Create(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	raw, ok := readBody(c)
	if !ok {
		return
	}

	in, apiErr := validation.LogCreate(raw)
	if apiErr != nil {
		response.RespondAPIError(c, apiErr)
		return
	}

	entry, err := h.logs.Create(c.Request.Context(), ownerID, in)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, entry)
}

// Get handles GET /logs/{id}.
func (h *LogHandler) Get(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	id, apiErr := validation.UUIDParam(c.Param("id"), "id")
	if apiErr != nil {
		response.RespondAPIError(c, apiErr)
		return
	}

	entry, err := h.logs.Get(c.Request.Context(), ownerID, id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, entry)
}

// Update handles PATCH /logs/{id}.
func (h *LogHandler) Update(c *gin.Context) {
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

	updates, apiErr := validation.LogPatch(raw)
	if apiErr != nil {
		response.RespondAPIError(c, apiErr)
		return
	}

	entry, err := h.logs.Update(c.Request.Context(), ownerID, id, updates)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, entry)
}

// Delete handles DELETE /logs/{id}.
func (h *LogHandler) Delete(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	id, apiErr := validation.UUIDParam(c.Param("id"), "id")
	if apiErr != nil {
		response.RespondAPIError(c, apiErr)
		return
	}

	deleted, err := h.logs.Delete(c.Request.Context(), ownerID, id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	if !deleted {
		response.RespondAPIError(c, notFound("log"))
		return
	}
	response.RespondNoContent(c)
}

// dateRange parses the optional start/end query parameters shared by log and
// note listings.
func dateRange(c *gin.Context) (start, end *journal.Date, apiErr error) {
	if raw := c.Query("start"); raw != "" {
		d, err := validation.DateParam(raw, "start")
		if err != nil {
			return nil, nil, err
		}
		start = &d
	}
	if raw := c.Query("end"); raw != "" {
		d, err := validation.DateParam(raw, "end")
		if err != nil {
			return nil, nil, err
		}
		end = &d
	}
	return start, end, nil
}

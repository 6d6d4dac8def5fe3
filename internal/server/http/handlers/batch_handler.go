package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adonay-express/orderflow/internal/server/http/dto"
)

// BatchHandler controls the active batch session.
type BatchHandler struct {
	facade BatchFacade
}

// NewBatchHandler constructs BatchHandler.
func NewBatchHandler(facade BatchFacade) *BatchHandler {
	return &BatchHandler{facade: facade}
}

// Start handles POST /api/batch.
func (h *BatchHandler) Start(c *gin.Context) {
	var req dto.StartBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.StartBatch(c.Request.Context(), req.Tag); err != nil {
		c.Status(statusForError(err))
		return
	}
	c.JSON(http.StatusOK, dto.BatchSessionResponse{Tag: req.Tag, Active: true})
}

// End handles DELETE /api/batch.
func (h *BatchHandler) End(c *gin.Context) {
	if err := h.facade.EndBatch(c.Request.Context()); err != nil {
		c.Status(statusForError(err))
		return
	}
	c.JSON(http.StatusOK, dto.BatchSessionResponse{Active: false})
}

// Active handles GET /api/batch.
func (h *BatchHandler) Active(c *gin.Context) {
	tag, err := h.facade.ActiveBatch(c.Request.Context())
	if err != nil {
		c.Status(statusForError(err))
		return
	}
	c.JSON(http.StatusOK, dto.BatchSessionResponse{Tag: tag, Active: tag != ""})
}

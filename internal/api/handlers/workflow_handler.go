// internal/api/handlers/workflow_handler.go
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fillrate/internal/service"
)

// WorkflowHandler exposes the bulk week operations. The client is expected to
// have walked the user through confirmation before calling any of these.
type WorkflowHandler struct {
	service *service.ReportService
}

func NewWorkflowHandler(service *service.ReportService) *WorkflowHandler {
	return &WorkflowHandler{service: service}
}

type storeRequest struct {
	Store string `json:"store" binding:"required"`
}

func (h *WorkflowHandler) bindStore(c *gin.Context) (string, bool) {
	var req storeRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Store) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "store is required"})
		return "", false
	}
	return strings.TrimSpace(req.Store), true
}

// InitializeWeek seeds the active week for a store from the catalog.
func (h *WorkflowHandler) InitializeWeek(c *gin.Context) {
	location, ok := h.bindStore(c)
	if !ok {
		return
	}

	result, err := h.service.InitializeWeek(c.Request.Context(), location)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CopyPreviousWeek clones the prior week's rows for a store.
func (h *WorkflowHandler) CopyPreviousWeek(c *gin.Context) {
	location, ok := h.bindStore(c)
	if !ok {
		return
	}

	result, err := h.service.CopyPreviousWeek(c.Request.Context(), location)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ClearWeek removes the active week's rows for a store.
func (h *WorkflowHandler) ClearWeek(c *gin.Context) {
	location, ok := h.bindStore(c)
	if !ok {
		return
	}

	result, err := h.service.ClearWeek(c.Request.Context(), location)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ClearWeekAllStores removes the active week's rows across all stores.
func (h *WorkflowHandler) ClearWeekAllStores(c *gin.Context) {
	result, err := h.service.ClearWeekAllStores(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

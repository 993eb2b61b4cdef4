// internal/api/handlers/catalog_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fillrate/internal/service"
)

type CatalogHandler struct {
	service *service.CatalogService
}

func NewCatalogHandler(service *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// List returns the SKU reference list in its source order.
func (h *CatalogHandler) List(c *gin.Context) {
	entries, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": entries})
}

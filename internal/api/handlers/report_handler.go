// internal/api/handlers/report_handler.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"fillrate/internal/domain"
	"fillrate/internal/service"
)

type ReportHandler struct {
	service *service.ReportService
}

func NewReportHandler(service *service.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// GetCurrentWeek returns the active week window.
func (h *ReportHandler) GetCurrentWeek(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.ActiveWindow())
}

// GetWeekOptions lists selectable windows around the active one. Absent or
// malformed counts defer to the configured defaults.
func (h *ReportHandler) GetWeekOptions(c *gin.Context) {
	past := intQuery(c, "past")
	future := intQuery(c, "future")

	c.JSON(http.StatusOK, gin.H{"options": h.service.WeekOptions(past, future)})
}

func intQuery(c *gin.Context, name string) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil || value < 0 {
		return -1
	}
	return value
}

// SelectWeek switches the active window to the week containing the given date.
func (h *ReportHandler) SelectWeek(c *gin.Context) {
	var req struct {
		Date string `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date is required"})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	c.JSON(http.StatusOK, h.service.SelectWeekFor(date))
}

// GetStores lists the known location identifiers.
func (h *ReportHandler) GetStores(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"stores": h.service.Stores()})
}

// GetStoreReport returns one page of a location's rows for the active week.
func (h *ReportHandler) GetStoreReport(c *gin.Context) {
	location := strings.TrimSpace(c.Query("store"))
	if location == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "store is required"})
		return
	}

	term := c.Query("q")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))

	rows, pageInfo := h.service.StoreView(location, term, page)
	c.JSON(http.StatusOK, gin.H{"items": rows, "pagination": pageInfo})
}

// GetAggregateReport returns one page of the cross-location rollup.
func (h *ReportHandler) GetAggregateReport(c *gin.Context) {
	term := c.Query("q")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))

	rows, pageInfo, err := h.service.AggregateView(c.Request.Context(), term, page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": rows, "pagination": pageInfo})
}

// CreateItem inserts a new report row.
func (h *ReportHandler) CreateItem(c *gin.Context) {
	var item domain.ReportItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report item payload"})
		return
	}
	item.ID = 0

	saved, err := h.service.SaveItem(c.Request.Context(), item)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, saved)
}

// UpdateItem edits an existing row; derived fields are recomputed server-side.
func (h *ReportHandler) UpdateItem(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	var item domain.ReportItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report item payload"})
		return
	}
	item.ID = id

	saved, err := h.service.SaveItem(c.Request.Context(), item)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, saved)
}

// DeleteItem removes a row.
func (h *ReportHandler) DeleteItem(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	location := strings.TrimSpace(c.Query("store"))
	if location == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "store is required"})
		return
	}

	if err := h.service.DeleteItem(c.Request.Context(), id, location); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// respondError maps the domain error taxonomy to HTTP status codes.
func respondError(c *gin.Context, err error) {
	var (
		validationErr   *domain.ValidationError
		conflictErr     *domain.ConflictError
		notFoundErr     *domain.NotFoundError
		connectivityErr *domain.ConnectivityError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, gin.H{"error": conflictErr.Error()})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Error()})
	case errors.As(err, &connectivityErr):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": connectivityErr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

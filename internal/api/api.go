// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"fillrate/internal/api/handlers"
	"fillrate/internal/api/middleware"
	"fillrate/internal/service"
)

type Services struct {
	ReportService  *service.ReportService
	CatalogService *service.CatalogService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil && services.ReportService != nil {
		reportHandler := handlers.NewReportHandler(services.ReportService)

		weekGroup := apiGroup.Group("/weeks")
		{
			weekGroup.GET("/current", reportHandler.GetCurrentWeek)
			weekGroup.GET("/options", reportHandler.GetWeekOptions)
			weekGroup.PUT("/select", reportHandler.SelectWeek)
		}

		apiGroup.GET("/stores", reportHandler.GetStores)

		reportGroup := apiGroup.Group("/reports")
		{
			reportGroup.GET("", reportHandler.GetStoreReport)
			reportGroup.GET("/aggregate", reportHandler.GetAggregateReport)
			reportGroup.POST("", reportHandler.CreateItem)
			reportGroup.PUT("/:id", reportHandler.UpdateItem)
			reportGroup.DELETE("/:id", reportHandler.DeleteItem)
		}

		workflowHandler := handlers.NewWorkflowHandler(services.ReportService)
		workflowGroup := apiGroup.Group("/workflows")
		{
			workflowGroup.POST("/init-week", workflowHandler.InitializeWeek)
			workflowGroup.POST("/copy-previous-week", workflowHandler.CopyPreviousWeek)
			workflowGroup.POST("/clear-week", workflowHandler.ClearWeek)
			workflowGroup.POST("/clear-week-all", workflowHandler.ClearWeekAllStores)
		}
	}

	if services != nil && services.CatalogService != nil {
		catalogHandler := handlers.NewCatalogHandler(services.CatalogService)
		apiGroup.GET("/catalog", catalogHandler.List)
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}

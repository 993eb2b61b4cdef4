// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"fillrate/internal/api"
	"fillrate/internal/cache"
	"fillrate/internal/config"
	"fillrate/internal/repository/postgres"
	"fillrate/internal/service"
	"fillrate/internal/store"
	"fillrate/internal/workflow"
	"fillrate/pkg/logger"
)

func main() {
	cfg := config.Load()

	logger.Setup(cfg.Server.LogLevel, cfg.Server.Mode != "debug")
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	reportRepo := postgres.NewReportRepository(db)
	catalogRepo := postgres.NewCatalogRepository(db)

	rollupCache, err := cache.NewRollupCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("rollup cache unavailable, continuing without")
		rollupCache = cache.NewNoopRollupCache()
	}

	reportStore := store.NewReportStore(reportRepo)
	batch := workflow.BatchPolicy{
		Size:  cfg.Workflow.BatchSize,
		Pause: time.Duration(cfg.Workflow.BatchPauseMS) * time.Millisecond,
	}
	runner := workflow.NewRunner(reportStore, reportRepo, catalogRepo, batch)

	reportService := service.NewReportService(reportStore, runner, rollupCache, cfg.Report)
	catalogService := service.NewCatalogService(catalogRepo)

	// Warm the caches and select the current week before accepting traffic.
	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	if err := reportService.Init(startCtx); err != nil {
		logger.Log.Warn().Err(err).Msg("initial report load failed, starting with empty caches")
	}
	cancelStart()

	router := api.NewRouter(&api.Services{
		ReportService:  reportService,
		CatalogService: catalogService,
	}, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Log.Info().Msg("server exiting")
}

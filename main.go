package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/smakkapati-repo/amzon-bedrock-agentcore-bank-analytics/config"
	"github.com/smakkapati-repo/amzon-bedrock-agentcore-bank-analytics/handler"
	"github.com/smakkapati-repo/amzon-bedrock-agentcore-bank-analytics/middleware"
	"github.com/smakkapati-repo/amzon-bedrock-agentcore-bank-analytics/pkg/logger"
	"github.com/smakkapati-repo/amzon-bedrock-agentcore-bank-analytics/service"
)

const serviceName = "BankIQ+ Backend"

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Init(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	slog.Info("configuration loaded",
		"region", cfg.Agent.Region,
		"bucket", cfg.Storage.Bucket,
	)

	// Initialize services
	signer := service.NewSigV4Signer(cfg.Agent.Region)
	agentSvc := service.NewAgentService(&cfg.Agent, signer)

	jobStore := service.NewJobStore(time.Duration(cfg.Jobs.MaxAgeMinutes) * time.Minute)
	jobRunner := service.NewJobRunner(jobStore, agentSvc)

	edgarSvc := service.NewEdgarService(&cfg.Edgar)
	bankDir := service.NewBankDirectory(edgarSvc)

	storageSvc, err := service.NewStorageService(&cfg.Storage)
	if err != nil {
		slog.Error("failed to initialize object storage", "error", err)
		os.Exit(1)
	}
	if err := storageSvc.EnsureBucket(context.Background()); err != nil {
		// Uploads degrade to records without storage keys; keep serving.
		slog.Warn("failed to ensure storage bucket", "error", err)
	}

	extractor := service.NewMetadataExtractor(&cfg.Extractor)
	documentSvc := service.NewDocumentService(extractor, storageSvc)
	csvStore := service.NewCSVStore()

	// Initialize handlers
	agentHandler := handler.NewAgentHandler(agentSvc, csvStore)
	jobsHandler := handler.NewJobsHandler(jobRunner, jobStore)
	filingsHandler := handler.NewFilingsHandler(edgarSvc, bankDir)
	documentsHandler := handler.NewDocumentsHandler(documentSvc)

	// Background job expiry sweep
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	jobStore.StartSweeper(sweepCtx, time.Duration(cfg.Jobs.SweepIntervalMinutes)*time.Minute)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(corsMiddleware())
	router.Use(middleware.RateLimit(&cfg.Server))

	registerStaticRoutes(router)

	healthCheck := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": serviceName,
		})
	}
	router.GET("/health", healthCheck)

	api := router.Group("/api")
	{
		api.GET("/health", healthCheck)
		api.POST("/invoke-agent", agentHandler.Invoke)
		api.POST("/store-csv-data", agentHandler.StoreCSVData)
		api.POST("/analyze-local-data", agentHandler.AnalyzeLocalData)
		api.POST("/jobs/submit", jobsHandler.Submit)
		api.GET("/jobs/:jobId", jobsHandler.Status)
		api.GET("/jobs/:jobId/result", jobsHandler.Result)
		api.POST("/get-sec-filings", filingsHandler.GetSECFilings)
		api.POST("/search-banks", filingsHandler.SearchBanks)
		api.POST("/upload-pdf", documentsHandler.UploadPDF)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
		// Long read/write timeouts: synchronous agent calls can take
		// minutes for report generation.
		ReadTimeout:  5 * time.Minute,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server...")

	stopSweep()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited gracefully")
}

// registerStaticRoutes serves the dashboard: index.html at the root and
// its assets under /static.
func registerStaticRoutes(router *gin.Engine) {
	router.Static("/static", "./static")
	router.StaticFile("/", "./static/index.html")
}

// corsMiddleware handles CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

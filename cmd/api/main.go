package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/timmy/carmate/internal/api"
	"github.com/timmy/carmate/internal/config"
	"github.com/timmy/carmate/internal/ingest"
	"github.com/timmy/carmate/internal/logger"
	"github.com/timmy/carmate/internal/repository"
	"github.com/timmy/carmate/internal/service"
	"github.com/timmy/carmate/internal/storage"
)

func main() {
	// Load configuration
	// Support CONFIG_PATH environment variable for production deployments
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatal("Failed to load config: %v", err)
	}

	// Initialize logger
	envCfg := logger.LoadFromEnv()
	envCfg.Level = cfg.Log.Level
	envCfg.Format = cfg.Log.Format
	envCfg.ServiceName = "carmate-api"
	appLogger := logger.NewFromEnv(envCfg)
	logger.SetDefaultLogger(appLogger)
	defer logger.Sync()

	// Initialize database
	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize database")
	}

	ctx := context.Background()

	// Initialize archive storage (S3, R2 or any S3-compatible endpoint)
	var archive storage.ObjectStorage
	if cfg.Ingest.ArchiveUploads {
		archive, err = storage.NewStorage(cfg.GetStorageConfig())
		if err != nil {
			appLogger.WithError(err).Fatal("Failed to initialize storage")
		}
		if s3, ok := archive.(*storage.S3Storage); ok {
			if err := s3.EnsureBucket(ctx); err != nil {
				appLogger.WithError(err).Fatal("Failed to ensure storage bucket")
			}
		}
	}
	if archive == nil {
		appLogger.Info("Upload archiving disabled")
	}

	// Initialize services
	pipeline := ingest.NewPipeline(repository.NewStore(db), appLogger, &ingest.Config{
		BatchSize: cfg.Ingest.BatchSize,
		MaxRows:   cfg.Ingest.MaxRows,
		Atomic:    cfg.Ingest.Atomic,
	})

	uploadService := service.NewUploadService(
		pipeline,
		repository.NewUploadRepository(db),
		repository.NewCompanyRepository(db),
		archive,
		appLogger,
		&service.UploadConfig{
			MaxFileSize:   cfg.Ingest.MaxFileSize,
			ArchivePrefix: cfg.Storage.Prefix,
		},
	)

	// Setup router
	router := api.SetupRouter(api.RouterDeps{
		UploadService: uploadService,
		Logger:        appLogger,
		Server:        cfg.Server,
		MaxFileSize:   cfg.Ingest.MaxFileSize,
		Ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in goroutine
	go func() {
		appLogger.WithFields(logger.Fields{
			"port": cfg.Server.Port,
			"mode": cfg.Server.Mode,
		}).Info("Starting API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Fatal("Server forced to shutdown")
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	appLogger.Info("Server exited")
}

package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/timmy/carmate/internal/api/handler"
	"github.com/timmy/carmate/internal/api/middleware"
	"github.com/timmy/carmate/internal/config"
	"github.com/timmy/carmate/internal/logger"
	"github.com/timmy/carmate/internal/service"
)

// RouterDeps groups what the router needs to build its handlers.
type RouterDeps struct {
	UploadService *service.UploadService
	Ping          handler.PingFunc
	Logger        *logger.Logger
	Server        config.ServerConfig
	MaxFileSize   int64
}

// SetupRouter configures the Gin router with all routes
func SetupRouter(deps RouterDeps) *gin.Engine {
	// Set Gin mode
	switch deps.Server.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	log := deps.Logger
	if log == nil {
		log = logger.GetDefault()
	}

	r := gin.New()
	if deps.MaxFileSize > 0 {
		r.MaxMultipartMemory = deps.MaxFileSize
	}

	// Add middleware
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware(log))
	r.Use(middleware.CORS(deps.Server.CORS))

	// Create handlers
	healthHandler := handler.NewHealthHandler(deps.Ping)
	uploadHandler := handler.NewUploadHandler(deps.UploadService, deps.MaxFileSize)
	uploadsHandler := handler.NewUploadsHandler(deps.UploadService)

	// Health check and metrics
	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes, all scoped to the calling company
	v1 := r.Group("/api/v1", middleware.Tenant())
	{
		// Bulk uploads
		v1.POST("/cars/upload", uploadHandler.UploadCars)
		v1.POST("/customers/upload", uploadHandler.UploadCustomers)

		// Upload history
		v1.GET("/uploads", uploadsHandler.ListUploads)
		v1.GET("/uploads/:id", uploadsHandler.GetUpload)
		v1.GET("/uploads/:id/file", uploadsHandler.GetUploadFile)
	}

	return r
}

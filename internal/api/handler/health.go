package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/timmy/carmate/internal/logger"
)

// PingFunc checks a dependency, typically the database.
type PingFunc func(ctx context.Context) error

// HealthHandler handles health check endpoints
type HealthHandler struct {
	ping PingFunc
}

// NewHealthHandler creates a new health handler. ping may be nil.
func NewHealthHandler(ping PingFunc) *HealthHandler {
	return &HealthHandler{ping: ping}
}

// Health returns the health status of the service
func (h *HealthHandler) Health(c *gin.Context) {
	if h.ping != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.ping(ctx); err != nil {
			logger.CtxWarn(ctx, "Health check failed: %v", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unavailable",
				"database": "down",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

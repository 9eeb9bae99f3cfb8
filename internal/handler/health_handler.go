package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/BobadilloLeftLane/medweg-api/internal/cache"
	"github.com/BobadilloLeftLane/medweg-api/internal/utils"
)

// HealthHandler reports service and dependency health.
type HealthHandler struct {
	db    *sqlx.DB
	redis *cache.RedisClient
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(db *sqlx.DB, redis *cache.RedisClient) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

// GetHealth handles GET /v1/health
func (h *HealthHandler) GetHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "ok"
	if err := h.db.PingContext(ctx); err != nil {
		dbStatus = "down"
	}

	redisStatus := "ok"
	if _, err := h.redis.Exists(ctx, "health"); err != nil {
		redisStatus = "down"
	}

	status := 200
	if dbStatus != "ok" || redisStatus != "ok" {
		status = 503
	}

	utils.Success(c, status, "Health check", gin.H{
		"database": dbStatus,
		"redis":    redisStatus,
	})
}

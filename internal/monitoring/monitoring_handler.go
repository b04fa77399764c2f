package monitoring

import (
	"context"
	"net/http"
	"time"

	"mini-payrun/internal/shared/metrics"
	"mini-payrun/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const dependencyCheckTimeout = 2 * time.Second

type Handler struct {
	db        *gorm.DB
	rdb       *redis.Client
	collector *metrics.Collector
}

func NewHandler(db *gorm.DB, rdb *redis.Client, collector *metrics.Collector) *Handler {
	return &Handler{db: db, rdb: rdb, collector: collector}
}

// Health pings each dependency with a short deadline. A degraded dependency
// turns the whole check 503 so load balancers stop routing here.
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), dependencyCheckTimeout)
	defer cancel()

	checks := gin.H{}
	healthy := true

	if h.db != nil {
		status := "ok"
		if sqlDB, err := h.db.DB(); err != nil {
			status = err.Error()
			healthy = false
		} else if err := sqlDB.PingContext(ctx); err != nil {
			status = err.Error()
			healthy = false
		}
		checks["database"] = status
	}

	if h.rdb != nil {
		status := "ok"
		if err := h.rdb.Ping(ctx).Err(); err != nil {
			status = err.Error()
			healthy = false
		}
		checks["redis"] = status
	}

	if !healthy {
		response.Error(c, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "one or more dependencies are down", checks)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "ok", "checks": checks})
}

func (h *Handler) Metrics(c *gin.Context) {
	response.Success(c, http.StatusOK, h.collector.Snapshot())
}

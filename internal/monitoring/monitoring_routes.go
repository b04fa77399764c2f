package monitoring

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.Engine, h *Handler) {
	r.GET("/health", h.Health)
	r.GET("/metrics", h.Metrics)
}

package auth

import (
	"mini-payrun/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	r.POST("/login", middleware.RateLimitByIP(0.5, 5), h.Login)
}

package payrun

import (
	"mini-payrun/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rdb *redis.Client) {
	payruns := r.Group("/payruns")
	payruns.Use(middleware.AuthMiddleware())
	{
		payruns.POST("", middleware.Idempotency(rdb), h.Run)
		payruns.GET("", h.GetAll)
		payruns.GET("/:id", h.GetByID)
	}

	payslips := r.Group("/payslips")
	payslips.Use(middleware.AuthMiddleware())
	{
		payslips.GET("/:employeeId/:payrunId", h.GetPayslip)
	}
}

package employee

import (
	"mini-payrun/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("", h.GetAll)
		employees.POST("", h.Create)
		employees.GET("/:id", h.GetByID)
		employees.PATCH("/:id", h.Update)
	}
}

package department

import (
	"go-hrm/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, guard middleware.Guard) {
	departments := r.Group("/departments")
	departments.Use(guard.Authenticated()...)
	{
		departments.GET("", middleware.RateLimitByUser(5, 20), guard.Can("department", "read"), h.GetAll)
		departments.GET("/:id", middleware.RateLimitByUser(5, 20), guard.Can("department", "read"), h.GetById)
		departments.POST("", middleware.RateLimitByUser(0.5, 2), guard.Can("department", "create"), h.Create)
		departments.PUT("/:id", middleware.RateLimitByUser(0.5, 2), guard.Can("department", "update"), h.Update)
		departments.DELETE("/:id", middleware.RateLimitByUser(0.2, 1), guard.Can("department", "delete"), h.Delete)
	}
}

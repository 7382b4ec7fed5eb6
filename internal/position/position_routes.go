package position

import (
	"go-hrm/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, guard middleware.Guard) {
	positions := r.Group("/positions")

	positions.Use(guard.Authenticated()...)

	{
		positions.GET("", guard.Can("position", "read"), h.GetAll)
		positions.POST("", middleware.RateLimitByUser(0.5, 2), guard.Can("position", "create"), h.Create)
		positions.GET("/:id", guard.Can("position", "read"), h.GetById)
		positions.PUT("/:id", middleware.RateLimitByUser(0.5, 2), guard.Can("position", "update"), h.Update)
		positions.DELETE("/:id", middleware.RateLimitByUser(0.2, 1), guard.Can("position", "delete"), h.Delete)
	}
}

package activity

import (
	"go-hrm/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, guard middleware.Guard) {
	activities := r.Group("/activities")
	activities.Use(guard.Authenticated()...)
	{
		activities.GET("", middleware.RateLimitByUser(5, 20), guard.Can("activity", "read"), h.GetAll)
		activities.GET("/upcoming", middleware.RateLimitByUser(5, 20), guard.Can("activity", "read"), h.Upcoming)
		activities.GET("/:id", middleware.RateLimitByUser(5, 20), guard.Can("activity", "read"), h.GetById)
		activities.POST("", middleware.RateLimitByUser(0.5, 2), guard.Can("activity", "create"), guard.Idempotent(), h.Create)
		activities.PUT("/:id", middleware.RateLimitByUser(0.5, 2), guard.Can("activity", "update"), h.Update)
		activities.DELETE("/:id", middleware.RateLimitByUser(0.2, 1), guard.Can("activity", "delete"), h.Delete)
	}
}

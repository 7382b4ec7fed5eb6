package attendance

import (
	"go-hrm/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, guard middleware.Guard) {
	activities := r.Group("/activities")
	activities.Use(guard.Authenticated()...)
	{
		activities.POST("/:id/check-in", middleware.RateLimitByUser(2, 10), guard.Can("attendance", "create"), guard.Idempotent(), h.CheckIn)
		activities.GET("/:id/attendance", middleware.RateLimitByUser(5, 20), guard.Can("attendance", "read"), h.List)
		activities.GET("/:id/attendance/export", middleware.RateLimitByUser(0.5, 2), guard.Can("attendance", "read"), h.Export)
		activities.GET("/:id/attendance/:employee_id", middleware.RateLimitByUser(5, 20), guard.Can("attendance", "read"), h.Status)
	}

	stats := r.Group("/attendance")
	stats.Use(guard.Authenticated()...)
	stats.GET("/stats", middleware.RateLimitByUser(5, 20), guard.Can("attendance", "read"), h.Stats)
}

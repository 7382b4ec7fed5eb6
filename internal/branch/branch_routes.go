package branch

import (
	"go-hrm/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, guard middleware.Guard) {
	branches := r.Group("/branches")
	branches.Use(guard.Authenticated()...)
	{
		branches.GET("", guard.Can("branch", "read"), h.GetAll)
		branches.GET("/:id", guard.Can("branch", "read"), h.GetById)
		branches.POST("", middleware.RateLimitByUser(0.5, 2), guard.Can("branch", "create"), h.Create)
		branches.PUT("/:id", middleware.RateLimitByUser(0.5, 2), guard.Can("branch", "update"), h.Update)
		branches.DELETE("/:id", middleware.RateLimitByUser(0.2, 1), guard.Can("branch", "delete"), h.Delete)
	}
}

package user

import (
	"go-hrm/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, guard middleware.Guard) {
	users := r.Group("/users")
	users.Use(guard.Authenticated()...)
	{
		users.PUT("/me/password", middleware.RateLimitByUser(0.2, 3), h.ChangePassword)

		admin := users.Group("", middleware.AdminOnly())
		admin.GET("", middleware.RateLimitByUser(5, 20), guard.Can("user", "read"), h.GetAll)
		admin.GET("/:id", middleware.RateLimitByUser(5, 20), guard.Can("user", "read"), h.GetById)
		admin.POST("", middleware.RateLimitByUser(0.5, 2), guard.Can("user", "create"), guard.Idempotent(), h.Create)
		admin.PUT("/:id", middleware.RateLimitByUser(0.5, 2), guard.Can("user", "update"), h.Update)
		admin.PUT("/:id/password", middleware.RateLimitByUser(0.2, 3), guard.Can("user", "update"), h.ResetPassword)
		admin.DELETE("/:id", middleware.RateLimitByUser(0.2, 1), guard.Can("user", "delete"), h.Delete)
	}
}

package dashboard

import (
	"go-hrm/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, guard middleware.Guard) {
	dashboard := r.Group("/dashboard")
	dashboard.Use(guard.Authenticated()...)
	{
		dashboard.GET("/summary", middleware.RateLimitByUser(2, 10), guard.Can("dashboard", "read"), h.Summary)
	}
}

package auth

import (
	"go-hrm/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, guard middleware.Guard) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimitByIP(0.08, 5), h.Login)
		auth.POST("/refresh", middleware.RateLimitByIP(0.2, 5), h.Refresh)
		auth.POST("/logout", h.Logout)
		auth.GET("/me", append(guard.Authenticated(), middleware.RateLimitByUser(2, 5), h.Me)...)
	}
}

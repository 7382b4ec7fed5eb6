package health

import (
	"go-hrm/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, guard middleware.Guard) {
	records := r.Group("/health-records")
	records.Use(guard.Authenticated()...)
	{
		records.GET("",
			middleware.RateLimitByUser(3, 10),
			guard.Can("health", "read"),
			handler.GetAll,
		)

		records.GET("/dashboard",
			middleware.RateLimitByUser(2, 5),
			guard.Can("health", "read"),
			handler.Dashboard,
		)

		records.GET("/export",
			middleware.RateLimitByUser(0.2, 1),
			guard.Can("health", "read"),
			handler.ExportRecords,
		)

		records.GET("/at-risk/export",
			middleware.RateLimitByUser(0.2, 1),
			guard.Can("health", "read"),
			handler.ExportAtRisk,
		)

		records.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			guard.Can("health", "read"),
			handler.GetById,
		)

		records.POST("",
			middleware.RateLimitByUser(1, 3),
			guard.Can("health", "create"),
			guard.Idempotent(),
			handler.Create,
		)

		records.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			guard.Can("health", "update"),
			handler.Update,
		)

		records.DELETE("/:id",
			middleware.RateLimitByUser(0.2, 1),
			guard.Can("health", "delete"),
			handler.Delete,
		)
	}
}

package employee

import (
	"go-hrm/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, guard middleware.Guard) {
	employees := r.Group("/employees")
	employees.Use(guard.Authenticated()...)
	{
		employees.GET("",
			middleware.RateLimitByUser(3, 10),
			guard.Can("employee", "read"),
			handler.GetAll,
		)

		employees.GET("/options",
			middleware.RateLimitByUser(5, 20),
			guard.Can("employee", "read"),
			handler.GetOptions,
		)

		employees.GET("/code/:code",
			middleware.RateLimitByUser(5, 20),
			guard.Can("employee", "read"),
			handler.GetByCode,
		)

		employees.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			guard.Can("employee", "read"),
			handler.GetById,
		)

		employees.POST("",
			middleware.RateLimitByUser(0.5, 2),
			guard.Can("employee", "create"),
			guard.Idempotent(),
			handler.Create,
		)

		employees.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			guard.Can("employee", "update"),
			handler.Update,
		)

		employees.DELETE("/:id",
			middleware.RateLimitByUser(0.2, 1),
			guard.Can("employee", "delete"),
			handler.Delete,
		)
	}
}

package fives

import (
	"go-hrm/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, guard middleware.Guard) {
	fives := r.Group("/fives")
	fives.Use(guard.Authenticated()...)
	{
		inspections := fives.Group("/inspections")
		inspections.GET("", guard.Can("fives", "read"), h.GetAll)
		inspections.GET("/:id", guard.Can("fives", "read"), h.GetById)
		inspections.POST("",
			middleware.RateLimitByUser(1, 3),
			guard.Can("fives", "create"),
			guard.Idempotent(),
			h.Create,
		)
		inspections.PUT("/:id", middleware.RateLimitByUser(0.5, 2), guard.Can("fives", "update"), h.Update)
		inspections.DELETE("/:id", middleware.RateLimitByUser(0.2, 1), guard.Can("fives", "delete"), h.Delete)

		fives.GET("/ranking", guard.Can("fives", "read"), h.Ranking)
		fives.GET("/ranking/export", middleware.RateLimitByUser(0.2, 2), guard.Can("fives", "read"), h.ExportRanking)
		fives.GET("/ranking/report", middleware.RateLimitByUser(0.2, 2), guard.Can("fives", "read"), h.ReportRanking)
		fives.GET("/months", guard.Can("fives", "read"), h.Months)
	}
}

package rbac

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the policy endpoints; callers pass the auth and
// authorization middleware so this package stays free of the middleware import.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, guards ...gin.HandlerFunc) {
	group := r.Group("/rbac")
	group.Use(guards...)
	{
		group.POST("/enforce", handler.Enforce)
		group.GET("/policies", handler.ListPolicies)
		group.POST("/policies/reload", handler.Reload)
	}
}

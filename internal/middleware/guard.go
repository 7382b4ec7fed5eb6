package middleware

import (
	"go-hrm/internal/shared/token"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Guard bundles the collaborators every protected route group needs.
type Guard struct {
	Issuer *token.Issuer
	RBAC   RBACService
	Redis  *redis.Client
	Logger *zap.Logger
}

// Authenticated returns the middleware chain for a logged-in route group.
func (g Guard) Authenticated() []gin.HandlerFunc {
	return []gin.HandlerFunc{
		AuthMiddleware(g.Issuer),
		ContextLogger(g.Logger),
	}
}

func (g Guard) Can(resource, action string) gin.HandlerFunc {
	return RBACAuthorize(g.RBAC, resource, action)
}

func (g Guard) Idempotent() gin.HandlerFunc {
	return Idempotency(g.Redis)
}

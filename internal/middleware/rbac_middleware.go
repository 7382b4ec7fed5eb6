package middleware

import (
	autherrors "go-hrm/internal/auth/errors"
	"go-hrm/internal/rbac"
	"go-hrm/internal/shared/apperror"
	"go-hrm/internal/shared/contextutil"
	"go-hrm/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RBACService is satisfied by rbac.Service.
type RBACService interface {
	Enforce(req rbac.EnforceRequest) (bool, error)
}

func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := contextutil.GetPrincipal(c.Request.Context())
		if !ok {
			abortWith(c, autherrors.ErrTokenNotFound)
			return
		}

		allowed, err := service.Enforce(rbac.EnforceRequest{
			Role:     p.Role,
			Resource: resource,
			Action:   action,
		})
		if err != nil {
			httpErr := apperror.ToHTTP(err)
			response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
			c.Abort()
			return
		}

		if !allowed {
			md := contextutil.ExtractMetadata(c.Request.Context())
			zap.L().Named("middleware.rbac").Warn("permission denied",
				zap.String("request_id", md.RequestID),
				zap.String("user_id", md.UserID),
				zap.String("role", p.Role),
				zap.String("permission", resource+":"+action),
			)
			response.Error(c, autherrors.ErrForbidden.HTTPStatus, autherrors.ErrForbidden.Code,
				autherrors.ErrForbidden.Message, gin.H{"required": resource + ":" + action})
			c.Abort()
			return
		}
		c.Next()
	}
}

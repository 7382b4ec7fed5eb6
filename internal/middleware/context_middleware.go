package middleware

import (
	"go-hrm/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextLogger decorates the logger with request and user ids and stores it
// on the request context for the service layer.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.L()
	}
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		rid := contextutil.GetRequestID(ctx)
		if rid == "" {
			rid = resolveRequestID(c)
			ctx = contextutil.WithRequestID(ctx, rid)
		}

		reqLogger := logger.With(
			zap.String("request_id", rid),
			zap.String("user_id", contextutil.GetUserID(ctx)),
		)

		c.Request = c.Request.WithContext(contextutil.WithLogger(ctx, reqLogger))
		c.Next()
	}
}

package middleware

import (
	"errors"
	"strings"

	autherrors "go-hrm/internal/auth/errors"
	"go-hrm/internal/shared/apperror"
	"go-hrm/internal/shared/contextutil"
	"go-hrm/internal/shared/response"
	"go-hrm/internal/shared/token"

	"github.com/gin-gonic/gin"
)

const (
	KeyUserID     = "user_id"
	KeyUsername   = "username"
	KeyRole       = "role"
	KeyEmployeeID = "employee_id"
)

// AuthMiddleware accepts a bearer token or the access_token cookie and puts
// the session principal on both the gin and the request context.
func AuthMiddleware(issuer *token.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}
		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			abortWith(c, autherrors.ErrTokenNotFound)
			return
		}

		claims, err := issuer.Parse(tokenString, token.KindAccess)
		if err != nil {
			errObj := autherrors.ErrInvalidToken
			if errors.Is(err, token.ErrExpired) {
				errObj = autherrors.ErrTokenExpired
			}
			abortWith(c, errObj)
			return
		}

		principal := contextutil.Principal{
			UserID:     claims.UserID,
			Username:   claims.Username,
			Role:       claims.Role,
			EmployeeID: claims.EmployeeID,
		}

		c.Set(KeyUserID, principal.UserID)
		c.Set(KeyUsername, principal.Username)
		c.Set(KeyRole, principal.Role)
		c.Set(KeyEmployeeID, principal.EmployeeID)
		c.Request = c.Request.WithContext(contextutil.WithPrincipal(c.Request.Context(), principal))

		c.Next()
	}
}

// AdminOnly short-circuits non-admin sessions.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := contextutil.GetPrincipal(c.Request.Context())
		if !ok || !p.IsAdmin() {
			abortWith(c, autherrors.ErrForbidden)
			return
		}
		c.Next()
	}
}

func abortWith(c *gin.Context, err *apperror.AppError) {
	response.Error(c, err.HTTPStatus, err.Code, err.Message, nil)
	c.Abort()
}

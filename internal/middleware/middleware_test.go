package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-hrm/internal/middleware"
	"go-hrm/internal/rbac"
	"go-hrm/internal/shared/contextutil"
	"go-hrm/internal/shared/token"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRBAC struct {
	EnforceFn func(req rbac.EnforceRequest) (bool, error)
}

func (f *fakeRBAC) Enforce(req rbac.EnforceRequest) (bool, error) {
	return f.EnforceFn(req)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func signAccess(t *testing.T, iss *token.Issuer, role string) string {
	t.Helper()
	s, err := iss.Sign(token.Claims{UserID: "u-1", Username: "budi", Role: role, Kind: token.KindAccess}, token.AccessTTL)
	require.NoError(t, err)
	return s
}

func TestAuthMiddleware(t *testing.T) {
	iss := token.NewIssuer("secret")

	r := setupRouter()
	r.GET("/me", middleware.AuthMiddleware(iss), func(c *gin.Context) {
		p, ok := contextutil.GetPrincipal(c.Request.Context())
		assert.True(t, ok)
		c.String(http.StatusOK, p.Username+":"+c.GetString(middleware.KeyRole))
	})

	t.Run("missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("bearer token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+signAccess(t, iss, "Admin"))
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "budi:Admin", w.Body.String())
	})

	t.Run("cookie token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: signAccess(t, iss, "User")})
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("refresh token rejected", func(t *testing.T) {
		refresh, err := iss.Sign(token.Claims{UserID: "u-1", Kind: token.KindRefresh}, token.RefreshTTL)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+refresh)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
	})
}

func TestRBACAuthorize(t *testing.T) {
	iss := token.NewIssuer("secret")
	svc := &fakeRBAC{EnforceFn: func(req rbac.EnforceRequest) (bool, error) {
		switch req.Role {
		case "Admin":
			return true, nil
		case "Broken":
			return false, errors.New("enforcer down")
		}
		return false, nil
	}}

	r := setupRouter()
	r.DELETE("/x", middleware.AuthMiddleware(iss), middleware.RBACAuthorize(svc, "fives", "delete"),
		func(c *gin.Context) { c.Status(http.StatusNoContent) })

	do := func(role string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/x", nil)
		req.Header.Set("Authorization", "Bearer "+signAccess(t, iss, role))
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusNoContent, do("Admin").Code)

	w := do("User")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "fives:delete")

	assert.Equal(t, http.StatusInternalServerError, do("Broken").Code)
}

func TestAdminOnly(t *testing.T) {
	iss := token.NewIssuer("secret")
	r := setupRouter()
	r.GET("/admin", middleware.AuthMiddleware(iss), middleware.AdminOnly(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for role, want := range map[string]int{"admin": http.StatusOK, "User": http.StatusForbidden} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+signAccess(t, iss, role))
		r.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, role)
	}
}

func TestRateLimitByIP(t *testing.T) {
	r := setupRouter()
	r.POST("/login", middleware.RateLimitByIP(0.0001, 1), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRequestIDAndContextLogger(t *testing.T) {
	r := setupRouter()
	r.Use(middleware.RequestID(), middleware.ContextLogger(nil))
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, contextutil.GetRequestID(c.Request.Context()))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(middleware.HeaderRequestID, "REQ-42")
	r.ServeHTTP(w, req)

	assert.Equal(t, "REQ-42", w.Body.String())
	assert.Equal(t, "REQ-42", w.Header().Get(middleware.HeaderRequestID))
}

func TestIdempotency_Replay(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	r := setupRouter()
	r.POST("/inspections", middleware.Idempotency(rdb), func(c *gin.Context) {
		t.Fatal("handler must not run on replay")
	})

	mock.ExpectGet("idemp:/inspections::key-1").SetVal(`{"status":201,"body":{"ok":true}}`)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/inspections", nil)
	req.Header.Set(middleware.HeaderIdempotencyKey, "key-1")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "true", w.Header().Get("Idempotent-Replay"))
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_InFlight(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	r := setupRouter()
	r.POST("/inspections", middleware.Idempotency(rdb), func(c *gin.Context) {
		t.Fatal("handler must not run while locked")
	})

	mock.ExpectGet("idemp:/inspections::key-2").RedisNil()
	mock.ExpectSetNX("idemp:/inspections::key-2:lock", "locked", 30*time.Second).SetVal(false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/inspections", nil)
	req.Header.Set(middleware.HeaderIdempotencyKey, "key-2")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

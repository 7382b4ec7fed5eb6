package rbac_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hrm/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHandler_Enforce(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := newService(t, &fakeRepo{})
	h := rbac.NewHandler(svc)

	t.Run("allowed", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/rbac/enforce",
			strings.NewReader(`{"role":"User","resource":"health","action":"create"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Enforce(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"allowed":true`)
	})

	t.Run("validation error", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/rbac/enforce", strings.NewReader(`{"role":"User"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Enforce(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

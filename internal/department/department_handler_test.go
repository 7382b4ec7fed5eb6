package department_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hrm/internal/department"
	departmenterrors "go-hrm/internal/department/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeDepartmentService struct {
	CreateFn  func(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error)
	GetAllFn  func(ctx context.Context, branchID string) ([]department.DepartmentResponse, error)
	GetByIDFn func(ctx context.Context, id string) (department.DepartmentResponse, error)
	UpdateFn  func(ctx context.Context, id string, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error)
	DeleteFn  func(ctx context.Context, id string) error
}

func (f *fakeDepartmentService) Create(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
	return f.CreateFn(ctx, req)
}
func (f *fakeDepartmentService) GetAll(ctx context.Context, branchID string) ([]department.DepartmentResponse, error) {
	return f.GetAllFn(ctx, branchID)
}
func (f *fakeDepartmentService) GetByID(ctx context.Context, id string) (department.DepartmentResponse, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeDepartmentService) Update(ctx context.Context, id string, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error) {
	return f.UpdateFn(ctx, id, req)
}
func (f *fakeDepartmentService) Delete(ctx context.Context, id string) error {
	return f.DeleteFn(ctx, id)
}

func newContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	c.Request = req
	return c, w
}

func TestDepartmentHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeDepartmentService{
			CreateFn: func(_ context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
				return department.DepartmentResponse{ID: uuid.New().String(), Name: req.Name, IsActive: true}, nil
			},
		}
		c, w := newContext(http.MethodPost, "/departments", `{"name":"HR"}`)

		department.NewHandler(svc).Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"name":"HR"`)
	})

	t.Run("validation error", func(t *testing.T) {
		c, w := newContext(http.MethodPost, "/departments", `{}`)

		department.NewHandler(&fakeDepartmentService{}).Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Name is required")
	})

	t.Run("service error", func(t *testing.T) {
		svc := &fakeDepartmentService{
			CreateFn: func(context.Context, department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
				return department.DepartmentResponse{}, errors.New("failed")
			},
		}
		c, w := newContext(http.MethodPost, "/departments", `{"name":"HR"}`)

		department.NewHandler(svc).Create(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestDepartmentHandler_GetAll(t *testing.T) {
	branchID := uuid.New().String()
	svc := &fakeDepartmentService{
		GetAllFn: func(_ context.Context, b string) ([]department.DepartmentResponse, error) {
			assert.Equal(t, branchID, b)
			return []department.DepartmentResponse{{ID: uuid.New().String(), Name: "HR"}}, nil
		},
	}
	c, w := newContext(http.MethodGet, "/departments?branch_id="+branchID, "")

	department.NewHandler(svc).GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDepartmentHandler_GetByID(t *testing.T) {
	svc := &fakeDepartmentService{
		GetByIDFn: func(context.Context, string) (department.DepartmentResponse, error) {
			return department.DepartmentResponse{}, departmenterrors.ErrDepartmentNotFound
		},
	}
	c, w := newContext(http.MethodGet, "/departments/x", "")
	c.Params = []gin.Param{{Key: "id", Value: uuid.New().String()}}

	department.NewHandler(svc).GetById(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDepartmentHandler_Update(t *testing.T) {
	deptID := uuid.New().String()
	svc := &fakeDepartmentService{
		UpdateFn: func(_ context.Context, id string, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error) {
			assert.Equal(t, deptID, id)
			return department.DepartmentResponse{ID: id, Name: req.Name}, nil
		},
	}
	c, w := newContext(http.MethodPut, "/departments/"+deptID, `{"name":"Finance"}`)
	c.Params = []gin.Param{{Key: "id", Value: deptID}}

	department.NewHandler(svc).Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDepartmentHandler_Delete(t *testing.T) {
	deptID := uuid.New().String()
	svc := &fakeDepartmentService{
		DeleteFn: func(_ context.Context, id string) error {
			assert.Equal(t, deptID, id)
			return nil
		},
	}
	c, w := newContext(http.MethodDelete, "/departments/"+deptID, "")
	c.Params = []gin.Param{{Key: "id", Value: deptID}}

	department.NewHandler(svc).Delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"deleted":true`)
}

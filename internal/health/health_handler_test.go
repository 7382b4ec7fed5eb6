package health_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-hrm/internal/health"
	healtherrors "go-hrm/internal/health/errors"
	"go-hrm/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHealthService struct {
	CreateFn        func(ctx context.Context, req health.CreateHealthRecordRequest) (health.HealthRecordResponse, error)
	GetAllFn        func(ctx context.Context, filter health.HealthRecordFilter) ([]health.HealthRecordResponse, error)
	GetByIDFn       func(ctx context.Context, id string) (health.HealthRecordResponse, error)
	UpdateFn        func(ctx context.Context, id string, req health.UpdateHealthRecordRequest) (health.HealthRecordResponse, error)
	DeleteFn        func(ctx context.Context, id string) error
	DashboardFn     func(ctx context.Context, days int, now time.Time) (health.DashboardResponse, error)
	ExportAtRiskFn  func(ctx context.Context, days int, now time.Time) ([]byte, error)
	ExportRecordsFn func(ctx context.Context, filter health.HealthRecordFilter) ([]byte, error)
}

func (f *fakeHealthService) Create(ctx context.Context, req health.CreateHealthRecordRequest) (health.HealthRecordResponse, error) {
	return f.CreateFn(ctx, req)
}
func (f *fakeHealthService) GetAll(ctx context.Context, filter health.HealthRecordFilter) ([]health.HealthRecordResponse, error) {
	return f.GetAllFn(ctx, filter)
}
func (f *fakeHealthService) GetByID(ctx context.Context, id string) (health.HealthRecordResponse, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeHealthService) Update(ctx context.Context, id string, req health.UpdateHealthRecordRequest) (health.HealthRecordResponse, error) {
	return f.UpdateFn(ctx, id, req)
}
func (f *fakeHealthService) Delete(ctx context.Context, id string) error {
	return f.DeleteFn(ctx, id)
}
func (f *fakeHealthService) Dashboard(ctx context.Context, days int, now time.Time) (health.DashboardResponse, error) {
	return f.DashboardFn(ctx, days, now)
}
func (f *fakeHealthService) ExportAtRisk(ctx context.Context, days int, now time.Time) ([]byte, error) {
	return f.ExportAtRiskFn(ctx, days, now)
}
func (f *fakeHealthService) ExportRecords(ctx context.Context, filter health.HealthRecordFilter) ([]byte, error) {
	return f.ExportRecordsFn(ctx, filter)
}

type errorEnvelope struct {
	Ok    bool `json:"ok"`
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	apperror.Init()
	return gin.New()
}

func TestHealthHandler_Create(t *testing.T) {
	const body = `{"employee_id":"6f1c2a3e-5b4d-4c6e-8f7a-9b0c1d2e3f40","blood_pressure_systolic":%d,"blood_pressure_diastolic":80,"heart_rate":72,"weight":70,"height":175}`

	t.Run("success", func(t *testing.T) {
		svc := &fakeHealthService{
			CreateFn: func(_ context.Context, req health.CreateHealthRecordRequest) (health.HealthRecordResponse, error) {
				assert.Nil(t, req.BloodSugar)
				return health.HealthRecordResponse{ID: "h-1"}, nil
			},
		}
		r := setupRouter()
		r.POST("/health-records", health.NewHandler(svc).Create)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/health-records", strings.NewReader(strings.Replace(body, "%d", "130", 1)))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("systolic above range", func(t *testing.T) {
		r := setupRouter()
		r.POST("/health-records", health.NewHandler(&fakeHealthService{}).Create)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/health-records", strings.NewReader(strings.Replace(body, "%d", "400", 1)))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var env errorEnvelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Equal(t, apperror.CodeValidationError, env.Error.Code)
		assert.Equal(t, "Blood Pressure Systolic must be at most 300", env.Error.Message)
	})
}

func TestHealthHandler_Dashboard(t *testing.T) {
	t.Run("defaults to seven days", func(t *testing.T) {
		svc := &fakeHealthService{
			DashboardFn: func(_ context.Context, days int, _ time.Time) (health.DashboardResponse, error) {
				assert.Equal(t, 7, days)
				return health.DashboardResponse{Days: days}, nil
			},
		}
		r := setupRouter()
		r.GET("/dashboard", health.NewHandler(svc).Dashboard)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("non numeric days", func(t *testing.T) {
		r := setupRouter()
		r.GET("/dashboard", health.NewHandler(&fakeHealthService{}).Dashboard)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard?days=week", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var env errorEnvelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Equal(t, healtherrors.ErrInvalidDays.Message, env.Error.Message)
	})
}

func TestHealthHandler_GetAll(t *testing.T) {
	svc := &fakeHealthService{
		GetAllFn: func(context.Context, health.HealthRecordFilter) ([]health.HealthRecordResponse, error) {
			return []health.HealthRecordResponse{
				{ID: "1", EmployeeName: "Siti Rahma", EmployeeCode: "EMP-00001"},
				{ID: "2", EmployeeName: "Budi", EmployeeCode: "EMP-00002"},
			}, nil
		},
	}
	r := setupRouter()
	r.GET("/health-records", health.NewHandler(svc).GetAll)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health-records?q=siti", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var env struct {
		Data []health.HealthRecordResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.Len(t, env.Data, 1)
	assert.Equal(t, "1", env.Data[0].ID)
}

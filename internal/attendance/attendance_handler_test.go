package attendance_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-hrm/internal/attendance"
	attendanceerrors "go-hrm/internal/attendance/errors"
	"go-hrm/internal/shared/apperror"
	"go-hrm/internal/shared/report"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceService struct {
	CheckInFn          func(ctx context.Context, activityID string, req attendance.CheckInRequest) (attendance.AttendanceResponse, error)
	IsCheckedInFn      func(ctx context.Context, activityID, employeeID string) (attendance.CheckInStatus, error)
	ListAttendanceFn   func(ctx context.Context, activityID string) ([]attendance.AttendanceResponse, error)
	AttendanceStatsFn  func(ctx context.Context, now time.Time) (attendance.AttendanceStats, error)
	ExportAttendanceFn func(ctx context.Context, activityID string) ([]byte, error)
}

func (f *fakeAttendanceService) CheckIn(ctx context.Context, activityID string, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	return f.CheckInFn(ctx, activityID, req)
}
func (f *fakeAttendanceService) IsCheckedIn(ctx context.Context, activityID, employeeID string) (attendance.CheckInStatus, error) {
	return f.IsCheckedInFn(ctx, activityID, employeeID)
}
func (f *fakeAttendanceService) ListAttendance(ctx context.Context, activityID string) ([]attendance.AttendanceResponse, error) {
	return f.ListAttendanceFn(ctx, activityID)
}
func (f *fakeAttendanceService) AttendanceStats(ctx context.Context, now time.Time) (attendance.AttendanceStats, error) {
	return f.AttendanceStatsFn(ctx, now)
}
func (f *fakeAttendanceService) ExportAttendance(ctx context.Context, activityID string) ([]byte, error) {
	return f.ExportAttendanceFn(ctx, activityID)
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

func checkIn(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/activities/a-1/check-in", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestAttendanceHandler_CheckIn(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &fakeAttendanceService{
			CheckInFn: func(_ context.Context, activityID string, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
				assert.Equal(t, "a-1", activityID)
				assert.Equal(t, "EMP-0007", req.EmployeeCode)
				return attendance.AttendanceResponse{ID: "r-1", CheckInMethod: attendance.MethodQR}, nil
			},
		}
		r := setupRouter()
		r.POST("/activities/:id/check-in", attendance.NewHandler(svc).CheckIn)

		w := checkIn(r, `{"employee_code":"EMP-0007","method":"QR"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"check_in_method":"QR"`)
	})

	t.Run("unknown method", func(t *testing.T) {
		r := setupRouter()
		r.POST("/activities/:id/check-in", attendance.NewHandler(&fakeAttendanceService{}).CheckIn)

		w := checkIn(r, `{"employee_code":"EMP-0007","method":"Face"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var env errorEnvelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Equal(t, apperror.CodeValidationError, env.Error.Code)
	})

	t.Run("duplicate is a conflict", func(t *testing.T) {
		svc := &fakeAttendanceService{
			CheckInFn: func(context.Context, string, attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
				return attendance.AttendanceResponse{}, apperror.Describe(attendanceerrors.ErrAlreadyCheckedIn, "Budi Santoso (EMP-0007) has already checked in to Safety Briefing")
			},
		}
		r := setupRouter()
		r.POST("/activities/:id/check-in", attendance.NewHandler(svc).CheckIn)

		w := checkIn(r, `{"employee_code":"EMP-0007"}`)

		assert.Equal(t, http.StatusConflict, w.Code)
		var env errorEnvelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Equal(t, "Budi Santoso (EMP-0007) has already checked in to Safety Briefing", env.Error.Message)
	})
}

func TestAttendanceHandler_Status(t *testing.T) {
	svc := &fakeAttendanceService{
		IsCheckedInFn: func(_ context.Context, activityID, employeeID string) (attendance.CheckInStatus, error) {
			return attendance.CheckInStatus{ActivityID: activityID, EmployeeID: employeeID}, nil
		},
	}
	r := setupRouter()
	r.GET("/activities/:id/attendance/:employee_id", attendance.NewHandler(svc).Status)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/activities/a-1/attendance/e-9", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"checked_in":false`)
	assert.Contains(t, w.Body.String(), `"employee_id":"e-9"`)
}

func TestAttendanceHandler_Export(t *testing.T) {
	svc := &fakeAttendanceService{
		ExportAttendanceFn: func(context.Context, string) ([]byte, error) {
			return []byte("xlsx"), nil
		},
	}
	r := setupRouter()
	r.GET("/activities/:id/attendance/export", attendance.NewHandler(svc).Export)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/activities/a-1/attendance/export", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, report.XLSXContentType, w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="attendance-a-1.xlsx"`, w.Header().Get("Content-Disposition"))
}

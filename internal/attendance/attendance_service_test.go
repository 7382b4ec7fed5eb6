package attendance_test

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"go-hrm/internal/activity"
	activityerrors "go-hrm/internal/activity/errors"
	"go-hrm/internal/attendance"
	attendanceerrors "go-hrm/internal/attendance/errors"
	attendanceMock "go-hrm/internal/attendance/mock"
	"go-hrm/internal/employee"
	"go-hrm/internal/events"
	"go-hrm/internal/messaging/kafka"
	kafkaMock "go-hrm/internal/messaging/kafka/mock"
	"go-hrm/internal/shared/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type fakeActivities struct {
	GetByIDFn func(ctx context.Context, id string) (activity.ActivityResponse, error)
}

func (f *fakeActivities) GetByID(ctx context.Context, id string) (activity.ActivityResponse, error) {
	return f.GetByIDFn(ctx, id)
}

type fakeEmployees struct {
	GetByIDFn   func(ctx context.Context, id string) (employee.EmployeeResponse, error)
	GetByCodeFn func(ctx context.Context, code string) (employee.EmployeeResponse, error)
}

func (f *fakeEmployees) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeEmployees) GetByCode(ctx context.Context, code string) (employee.EmployeeResponse, error) {
	return f.GetByCodeFn(ctx, code)
}

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   attendance.Service
	repo      *attendanceMock.MockRepository
	outbox    *kafkaMock.MockOutboxRepository
	activity  activity.ActivityResponse
	employee  employee.EmployeeResponse
	employees *fakeEmployees
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)

	deps := &serviceDeps{
		db:      db,
		sqlMock: sqlMock,
		repo:    attendanceMock.NewMockRepository(ctrl),
		outbox:  kafkaMock.NewMockOutboxRepository(ctrl),
		activity: activity.ActivityResponse{
			ID: uuid.NewString(), Name: "Safety Briefing", Date: "2024-06-05",
		},
		employee: employee.EmployeeResponse{
			ID: uuid.NewString(), EmployeeCode: "EMP-0007", FullName: "Budi Santoso",
			DepartmentName: "Production", IsActive: true,
		},
	}

	activities := &fakeActivities{
		GetByIDFn: func(_ context.Context, id string) (activity.ActivityResponse, error) {
			if id != deps.activity.ID {
				return activity.ActivityResponse{}, activityerrors.ErrActivityNotFound
			}
			return deps.activity, nil
		},
	}
	deps.employees = &fakeEmployees{
		GetByIDFn: func(_ context.Context, id string) (employee.EmployeeResponse, error) {
			assert.Equal(t, deps.employee.ID, id)
			return deps.employee, nil
		},
		GetByCodeFn: func(_ context.Context, code string) (employee.EmployeeResponse, error) {
			assert.Equal(t, "EMP-0007", code)
			return deps.employee, nil
		},
	}

	deps.service = attendance.NewService(db, deps.repo, activities, deps.employees, deps.outbox)
	return deps
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestAttendanceService_CheckIn(t *testing.T) {
	ctx := context.Background()

	t.Run("qr scan resolves the employee code", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, rec *attendance.AttendanceRecord) error {
				assert.Equal(t, deps.activity.ID, rec.ActivityID.String())
				assert.Equal(t, deps.employee.ID, rec.EmployeeID.String())
				assert.Equal(t, attendance.MethodQR, rec.CheckInMethod)
				assert.False(t, rec.CheckInTime.IsZero())
				return nil
			})
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, ev kafka.OutboxEvent) error {
				assert.Equal(t, events.AttendanceCheckedIn, ev.EventType)
				assert.Equal(t, events.CollectionAttendance, ev.AggregateType)
				return nil
			})

		resp, err := deps.service.CheckIn(ctx, deps.activity.ID, attendance.CheckInRequest{EmployeeCode: " EMP-0007 "})

		require.NoError(t, err)
		assert.Equal(t, "Budi Santoso", resp.EmployeeName)
		assert.Equal(t, "Production", resp.DepartmentName)
		assert.Equal(t, attendance.MethodQR, resp.CheckInMethod)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("manual pick by id", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).Return(nil)

		resp, err := deps.service.CheckIn(ctx, deps.activity.ID, attendance.CheckInRequest{EmployeeID: deps.employee.ID})

		require.NoError(t, err)
		assert.Equal(t, attendance.MethodManual, resp.CheckInMethod)
	})

	t.Run("second check-in names the employee", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_activity_attendance"})

		_, err := deps.service.CheckIn(ctx, deps.activity.ID, attendance.CheckInRequest{EmployeeID: deps.employee.ID})

		assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedIn)
		var appErr *apperror.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "Budi Santoso (EMP-0007) has already checked in to Safety Briefing", appErr.Message)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("inactive employee", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()
		deps.employee.IsActive = false

		_, err := deps.service.CheckIn(ctx, deps.activity.ID, attendance.CheckInRequest{EmployeeID: deps.employee.ID})
		assert.ErrorIs(t, err, attendanceerrors.ErrEmployeeInactive)
	})

	t.Run("no attendee given", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.CheckIn(ctx, deps.activity.ID, attendance.CheckInRequest{EmployeeCode: "   "})
		assert.ErrorIs(t, err, attendanceerrors.ErrEmployeeRequired)
	})

	t.Run("unknown activity", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.CheckIn(ctx, uuid.NewString(), attendance.CheckInRequest{EmployeeID: deps.employee.ID})
		assert.ErrorIs(t, err, activityerrors.ErrActivityNotFound)
	})
}

func TestAttendanceService_IsCheckedIn(t *testing.T) {
	ctx := context.Background()

	t.Run("checked in", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		at := time.Date(2024, 6, 5, 8, 2, 0, 0, time.UTC)
		deps.repo.EXPECT().FindByActivityAndEmployee(ctx, deps.activity.ID, deps.employee.ID).
			Return(&attendance.AttendanceRecord{CheckInTime: at}, nil)

		status, err := deps.service.IsCheckedIn(ctx, deps.activity.ID, deps.employee.ID)

		require.NoError(t, err)
		assert.True(t, status.CheckedIn)
		require.NotNil(t, status.CheckInTime)
		assert.Equal(t, at, *status.CheckInTime)
	})

	t.Run("not yet", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().FindByActivityAndEmployee(ctx, deps.activity.ID, deps.employee.ID).
			Return(nil, gorm.ErrRecordNotFound)

		status, err := deps.service.IsCheckedIn(ctx, deps.activity.ID, deps.employee.ID)

		require.NoError(t, err)
		assert.False(t, status.CheckedIn)
		assert.Nil(t, status.CheckInTime)
	})

	t.Run("bad employee id", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.IsCheckedIn(ctx, deps.activity.ID, "nope")
		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidEmployeeID)
	})
}

func attendee(code, first, dept string, at time.Time) attendance.AttendanceRecord {
	return attendance.AttendanceRecord{
		ID:            uuid.New(),
		EmployeeID:    uuid.New(),
		CheckInMethod: attendance.MethodQR,
		CheckInTime:   at,
		Employee: &attendance.AttendanceEmployee{
			EmployeeCode: code,
			FirstName:    first,
			Department:   &attendance.AttendanceDepartment{Name: dept},
		},
	}
}

func TestAttendanceService_ListAttendance(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t)
	defer deps.db.Close()

	base := time.Date(2024, 6, 5, 8, 0, 0, 0, time.UTC)
	deps.repo.EXPECT().FindByActivity(ctx, deps.activity.ID).Return([]attendance.AttendanceRecord{
		attendee("EMP-2", "Sari", "QA", base.Add(10*time.Minute)),
		attendee("EMP-1", "Agus", "Production", base),
	}, nil)

	got, err := deps.service.ListAttendance(ctx, deps.activity.ID)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "EMP-2", got[0].EmployeeCode)
	assert.Equal(t, "Sari", got[0].EmployeeName)
	assert.Equal(t, "QA", got[0].DepartmentName)
}

func TestAttendanceService_AttendanceStats(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t)
	defer deps.db.Close()

	now := time.Date(2024, 6, 5, 14, 30, 0, 0, time.UTC)
	deps.repo.EXPECT().CountSince(ctx, time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)).Return(int64(12), nil)
	deps.repo.EXPECT().Count(ctx).Return(int64(480), nil)

	stats, err := deps.service.AttendanceStats(ctx, now)

	require.NoError(t, err)
	assert.Equal(t, attendance.AttendanceStats{Today: 12, Total: 480}, stats)
}

func TestAttendanceService_ExportAttendance(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t)
	defer deps.db.Close()

	deps.repo.EXPECT().FindByActivity(ctx, deps.activity.ID).Return([]attendance.AttendanceRecord{
		attendee("EMP-1", "Agus", "Production", time.Date(2024, 6, 5, 8, 0, 0, 0, time.UTC)),
	}, nil)

	body, err := deps.service.ExportAttendance(ctx, deps.activity.ID)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(body))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Attendance")
	require.NoError(t, err)
	assert.Equal(t, "Attendance Safety Briefing (2024-06-05)", rows[0][0])
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"1", "EMP-1", "Agus", "Production", "QR", "2024-06-05 08:00"}, rows[3])
}

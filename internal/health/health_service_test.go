package health_test

import (
	"bytes"
	"context"
	"database/sql"
	"testing"
	"time"

	"go-hrm/internal/events"
	"go-hrm/internal/health"
	healtherrors "go-hrm/internal/health/errors"
	healthMock "go-hrm/internal/health/mock"
	"go-hrm/internal/messaging/kafka"
	kafkaMock "go-hrm/internal/messaging/kafka/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service health.Service
	repo    *healthMock.MockRepository
	outbox  *kafkaMock.MockOutboxRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	repo := healthMock.NewMockRepository(ctrl)
	outbox := kafkaMock.NewMockOutboxRepository(ctrl)

	return &serviceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: health.NewService(db, repo, outbox),
		repo:    repo,
		outbox:  outbox,
	}
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

func validRequest() health.CreateHealthRecordRequest {
	return health.CreateHealthRecordRequest{
		EmployeeID:             uuid.NewString(),
		BloodPressureSystolic:  150,
		BloodPressureDiastolic: 85,
		HeartRate:              72,
		BloodSugar:             sugar(130),
		Weight:                 70,
		Height:                 175,
	}
}

func storedRecord(systolic int, recordedAt time.Time) health.HealthRecord {
	deptID := uuid.New()
	return health.HealthRecord{
		ID:                     uuid.New(),
		EmployeeID:             uuid.New(),
		BloodPressureSystolic:  systolic,
		BloodPressureDiastolic: 80,
		HeartRate:              72,
		Weight:                 68,
		Height:                 170,
		RecordedAt:             recordedAt,
		Employee: &health.HealthEmployee{
			EmployeeCode: "EMP-00001",
			FirstName:    "Siti",
			LastName:     "Rahma",
			DepartmentID: &deptID,
			Department:   &health.HealthDepartment{ID: deptID, Name: "Finance"},
		},
	}
}

func TestHealthService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success publishes created event", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		req := validRequest()
		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, rec *health.HealthRecord) error {
				assert.Equal(t, req.EmployeeID, rec.EmployeeID.String())
				assert.Equal(t, 150, rec.BloodPressureSystolic)
				assert.WithinDuration(t, time.Now(), rec.RecordedAt, time.Minute)
				return nil
			})
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, ev kafka.OutboxEvent) error {
				assert.Equal(t, events.HealthRecordCreated, ev.EventType)
				assert.Equal(t, events.CollectionHealthRecords, ev.AggregateType)
				return nil
			})

		resp, err := deps.service.Create(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, 22.9, resp.BMI)
		assert.Equal(t, health.BPHigh, resp.BloodPressureStatus)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("backdated record keeps the requested day", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		req := validRequest()
		req.RecordDate = "2024-03-05"
		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, rec *health.HealthRecord) error {
				assert.Equal(t, "2024-03-05", rec.RecordedAt.Format("2006-01-02"))
				return nil
			})
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).Return(nil)

		_, err := deps.service.Create(ctx, req)
		require.NoError(t, err)
	})

	outOfRange := []struct {
		name   string
		mutate func(r *health.CreateHealthRecordRequest)
		msg    string
	}{
		{"systolic", func(r *health.CreateHealthRecordRequest) { r.BloodPressureSystolic = 400 }, "Systolic pressure must be between 50 and 300, got 400"},
		{"diastolic", func(r *health.CreateHealthRecordRequest) { r.BloodPressureDiastolic = 20 }, "Diastolic pressure must be between 30 and 200"},
		{"heart rate", func(r *health.CreateHealthRecordRequest) { r.HeartRate = 300 }, "Heart rate must be between 20 and 250"},
		{"blood sugar", func(r *health.CreateHealthRecordRequest) { r.BloodSugar = sugar(900) }, "Blood sugar must be between 20 and 800"},
		{"weight", func(r *health.CreateHealthRecordRequest) { r.Weight = 600 }, "Weight must be between 1 and 500"},
		{"height", func(r *health.CreateHealthRecordRequest) { r.Height = 10 }, "Height must be between 30 and 300"},
	}
	for _, tc := range outOfRange {
		t.Run(tc.name+" out of range never reaches the database", func(t *testing.T) {
			deps := setupServiceTest(t)
			defer deps.db.Close()

			req := validRequest()
			tc.mutate(&req)

			_, err := deps.service.Create(ctx, req)

			require.ErrorIs(t, err, healtherrors.ErrVitalsOutOfRange)
			assert.Contains(t, err.Error(), tc.msg)
			assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		})
	}

	t.Run("unknown employee", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(&pgconn.PgError{Code: "23503"})

		_, err := deps.service.Create(ctx, validRequest())
		assert.ErrorIs(t, err, healtherrors.ErrEmployeeNotFound)
	})

	t.Run("invalid record date", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		req := validRequest()
		req.RecordDate = "05-03-2024"

		_, err := deps.service.Create(ctx, req)
		assert.Error(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestHealthService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("moving the date keeps the time of day", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		stored := storedRecord(120, time.Date(2024, 6, 10, 8, 30, 0, 0, time.UTC))
		id := stored.ID.String()
		req := validRequest()
		req.EmployeeID = stored.EmployeeID.String()
		req.RecordDate = "2024-06-08"

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, id).Return(&stored, nil)
		deps.repo.EXPECT().Update(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, rec *health.HealthRecord) error {
				assert.Equal(t, time.Date(2024, 6, 8, 8, 30, 0, 0, time.UTC), rec.RecordedAt)
				assert.Equal(t, 150, rec.BloodPressureSystolic)
				return nil
			})
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).Return(nil)

		resp, err := deps.service.Update(ctx, id, req)

		require.NoError(t, err)
		assert.Equal(t, "Siti Rahma", resp.EmployeeName)
	})

	t.Run("invalid id", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Update(ctx, "nope", validRequest())
		assert.ErrorIs(t, err, healtherrors.ErrInvalidHealthRecordID)
	})
}

func TestHealthService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("not found rolls back", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		id := uuid.NewString()
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Delete(ctx, id).Return(gorm.ErrRecordNotFound)

		err := deps.service.Delete(ctx, id)

		assert.ErrorIs(t, err, healtherrors.ErrHealthRecordNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestHealthService_Dashboard(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("summarizes the window", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().FindSince(ctx, now.AddDate(0, 0, -7)).Return([]health.HealthRecord{
			storedRecord(118, now.AddDate(0, 0, -3)),
			storedRecord(185, now.AddDate(0, 0, -1)),
		}, nil)

		resp, err := deps.service.Dashboard(ctx, 7, now)

		require.NoError(t, err)
		assert.Equal(t, "2024-06-08", resp.From)
		assert.Equal(t, 2, resp.Summary.TotalRecords)
		assert.Len(t, resp.Trend, 2)
		require.Len(t, resp.AtRisk, 1)
		assert.Equal(t, 50, resp.AtRisk[0].RiskScore)
		assert.Equal(t, "Finance", resp.AtRisk[0].DepartmentName)
	})

	t.Run("days out of range", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Dashboard(ctx, 0, now)
		assert.ErrorIs(t, err, healtherrors.ErrInvalidDays)

		_, err = deps.service.Dashboard(ctx, 400, now)
		assert.ErrorIs(t, err, healtherrors.ErrInvalidDays)
	})
}

func TestHealthService_ExportAtRisk(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	deps := setupServiceTest(t)
	defer deps.db.Close()

	deps.repo.EXPECT().FindSince(ctx, gomock.Any()).Return([]health.HealthRecord{
		storedRecord(185, now.AddDate(0, 0, -1)),
	}, nil)

	body, err := deps.service.ExportAtRisk(ctx, 7, now)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(body))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("At Risk")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "EMP-00001", rows[3][1])
	assert.Equal(t, "Siti Rahma", rows[3][2])
}

package attendance

import (
	"context"
	"database/sql"
	"time"

	"go-hrm/internal/shared/database"
	"go-hrm/internal/shared/scope"

	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, rec *AttendanceRecord) error
	FindByActivity(ctx context.Context, activityID string) ([]AttendanceRecord, error)
	FindByActivityAndEmployee(ctx context.Context, activityID, employeeID string) (*AttendanceRecord, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: database.WithTx(r.db, tx)}
}

func (r *repository) Create(ctx context.Context, rec *AttendanceRecord) error {
	return r.db.WithContext(ctx).Omit("Employee").Create(rec).Error
}

func (r *repository) FindByActivity(ctx context.Context, activityID string) ([]AttendanceRecord, error) {
	var recs []AttendanceRecord
	err := r.db.WithContext(ctx).
		Preload("Employee.Department").
		Where("activity_id = ?", activityID).
		Order("check_in_time DESC").
		Find(&recs).Error
	return recs, err
}

func (r *repository) FindByActivityAndEmployee(ctx context.Context, activityID, employeeID string) (*AttendanceRecord, error) {
	var rec AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("activity_id = ? AND employee_id = ?", activityID, employeeID).
		Take(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&AttendanceRecord{}).
		Scopes(scope.Since("check_in_time", since)).
		Count(&n).Error
	return n, err
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&AttendanceRecord{}).Count(&n).Error
	return n, err
}

package health

import (
	"context"
	"database/sql"
	"time"

	"go-hrm/internal/shared/database"
	"go-hrm/internal/shared/scope"

	"gorm.io/gorm"
)

//go:generate mockgen -source=health_repo.go -destination=mock/health_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, rec *HealthRecord) error
	FindAll(ctx context.Context, filter HealthRecordFilter) ([]HealthRecord, error)
	FindSince(ctx context.Context, since time.Time) ([]HealthRecord, error)
	FindByID(ctx context.Context, id string) (*HealthRecord, error)
	Update(ctx context.Context, rec *HealthRecord) error
	Delete(ctx context.Context, id string) error
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

func (r *repository) withEmployee(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Employee.Department")
}

func (r *repository) Create(ctx context.Context, rec *HealthRecord) error {
	return r.db.WithContext(ctx).Omit("Employee").Create(rec).Error
}

func (r *repository) FindAll(ctx context.Context, filter HealthRecordFilter) ([]HealthRecord, error) {
	q := r.withEmployee(ctx)
	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}

	var recs []HealthRecord
	err := q.Order("recorded_at DESC").Find(&recs).Error
	return recs, err
}

func (r *repository) FindSince(ctx context.Context, since time.Time) ([]HealthRecord, error) {
	var recs []HealthRecord
	err := r.withEmployee(ctx).
		Scopes(scope.Since("recorded_at", since)).
		Order("recorded_at ASC").
		Find(&recs).Error
	return recs, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*HealthRecord, error) {
	var rec HealthRecord
	if err := r.withEmployee(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repository) Update(ctx context.Context, rec *HealthRecord) error {
	return r.db.WithContext(ctx).Omit("Employee").Save(rec).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&HealthRecord{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&HealthRecord{}).Count(&n).Error
	return n, err
}

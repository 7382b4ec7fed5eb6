package activity

import (
	"context"
	"database/sql"

	"go-hrm/internal/shared/database"

	"gorm.io/gorm"
)

const withAttendeeCount = "activities.*, " +
	"(SELECT COUNT(*) FROM activity_attendance aa WHERE aa.activity_id = activities.id) AS attendee_count"

//go:generate mockgen -source=activity_repo.go -destination=mock/activity_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Activity) error
	FindAll(ctx context.Context) ([]ActivityWithCount, error)
	FindByID(ctx context.Context, id string) (*ActivityWithCount, error)
	Update(ctx context.Context, a *Activity) error
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

func (r *repository) Create(ctx context.Context, a *Activity) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindAll(ctx context.Context) ([]ActivityWithCount, error) {
	var rows []ActivityWithCount
	err := r.db.WithContext(ctx).
		Model(&Activity{}).
		Select(withAttendeeCount).
		Order("activity_date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*ActivityWithCount, error) {
	var row ActivityWithCount
	err := r.db.WithContext(ctx).
		Model(&Activity{}).
		Select(withAttendeeCount).
		Where("activities.id = ?", id).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) Update(ctx context.Context, a *Activity) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&Activity{}, "id = ?", id)
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
	err := r.db.WithContext(ctx).Model(&Activity{}).Count(&n).Error
	return n, err
}

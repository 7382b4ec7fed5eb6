package branch

import (
	"context"
	"database/sql"

	"go-hrm/internal/shared/database"

	"gorm.io/gorm"
)

//go:generate mockgen -source=branch_repo.go -destination=mock/branch_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, b *Branch) error
	FindAll(ctx context.Context) ([]Branch, error)
	FindByID(ctx context.Context, id string) (*Branch, error)
	Update(ctx context.Context, b *Branch) error
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

func (r *repository) Create(ctx context.Context, b *Branch) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Branch, error) {
	var branches []Branch
	err := r.db.WithContext(ctx).Order("name ASC").Find(&branches).Error
	return branches, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Branch, error) {
	var b Branch
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) Update(ctx context.Context, b *Branch) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&Branch{}, "id = ?", id)
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
	err := r.db.WithContext(ctx).Model(&Branch{}).Count(&n).Error
	return n, err
}

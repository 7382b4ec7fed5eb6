package position

import (
	"context"
	"database/sql"

	"go-hrm/internal/shared/database"

	"gorm.io/gorm"
)

//go:generate mockgen -source=position_repo.go -destination=mock/position_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, post *Position) error
	FindAll(ctx context.Context) ([]Position, error)
	FindByID(ctx context.Context, id string) (*Position, error)
	Update(ctx context.Context, post *Position) error
	Delete(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, post *Position) error {
	return r.db.WithContext(ctx).Omit("Department").Create(post).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Position, error) {
	var posts []Position
	err := r.db.WithContext(ctx).
		Preload("Department").
		Order("level ASC").
		Order("name ASC").
		Find(&posts).Error
	return posts, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Position, error) {
	var post Position
	err := r.db.WithContext(ctx).
		Preload("Department").
		First(&post, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *repository) Update(ctx context.Context, post *Position) error {
	// Avoid persisting preloaded Department association on update.
	return r.db.WithContext(ctx).Omit("Department").Save(post).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&Position{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

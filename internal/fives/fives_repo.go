package fives

import (
	"context"
	"database/sql"
	"strings"

	"go-hrm/internal/shared/database"
	"go-hrm/internal/shared/scope"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=fives_repo.go -destination=mock/fives_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	LockDepartmentMonth(ctx context.Context, departmentID uuid.UUID, month string) error
	Create(ctx context.Context, ins *Inspection) error
	Update(ctx context.Context, ins *Inspection) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Inspection, error)
	FindAll(ctx context.Context, filter InspectionFilter) ([]Inspection, error)
	Months(ctx context.Context) ([]string, error)
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

// LockDepartmentMonth serializes submissions for one department and month
// until the surrounding transaction ends.
func (r *repository) LockDepartmentMonth(ctx context.Context, departmentID uuid.UUID, month string) error {
	return r.db.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(hashtext(?))", "fives:"+departmentID.String()+":"+month).
		Error
}

func (r *repository) Create(ctx context.Context, ins *Inspection) error {
	return r.db.WithContext(ctx).Omit("Department").Create(ins).Error
}

func (r *repository) Update(ctx context.Context, ins *Inspection) error {
	return r.db.WithContext(ctx).Omit("Department").Save(ins).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&Inspection{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*Inspection, error) {
	var ins Inspection
	if err := r.db.WithContext(ctx).Preload("Department").First(&ins, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ins, nil
}

func (r *repository) FindAll(ctx context.Context, filter InspectionFilter) ([]Inspection, error) {
	q := r.db.WithContext(ctx).Preload("Department")

	if filter.Month != "" {
		from, to, err := MonthRange(filter.Month)
		if err != nil {
			return nil, err
		}
		q = q.Scopes(scope.DateBetween("inspection_date", from, to))
	}
	if name := strings.TrimSpace(filter.Inspector); name != "" {
		q = q.Where("inspector_name ILIKE ?", "%"+name+"%")
	}
	if filter.DepartmentID != "" {
		q = q.Where("department_id = ?", filter.DepartmentID)
	}

	var out []Inspection
	err := q.Order("inspection_date DESC").Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *repository) Months(ctx context.Context) ([]string, error) {
	var months []string
	err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT to_char(inspection_date, 'YYYY-MM') AS month
		FROM inspections
		WHERE deleted_at IS NULL
		ORDER BY month DESC
	`).Scan(&months).Error
	return months, err
}

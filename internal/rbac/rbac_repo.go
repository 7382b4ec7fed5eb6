package rbac

import (
	"context"

	"gorm.io/gorm"
)

const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

type RolePermission struct {
	ID       uint   `gorm:"primaryKey"`
	Role     string `gorm:"size:30;not null;uniqueIndex:uq_role_permission,priority:1"`
	Resource string `gorm:"size:50;not null;uniqueIndex:uq_role_permission,priority:2"`
	Action   string `gorm:"size:30;not null;uniqueIndex:uq_role_permission,priority:3"`
}

func (RolePermission) TableName() string {
	return "role_permissions"
}

// DefaultPolicy is seeded when role_permissions is empty. Admin may do
// anything; User reads everything and records attendance, vitals and 5S scores.
var DefaultPolicy = []RolePermission{
	{Role: RoleAdmin, Resource: "*", Action: "*"},
	{Role: RoleUser, Resource: "branch", Action: "read"},
	{Role: RoleUser, Resource: "department", Action: "read"},
	{Role: RoleUser, Resource: "position", Action: "read"},
	{Role: RoleUser, Resource: "employee", Action: "read"},
	{Role: RoleUser, Resource: "activity", Action: "read"},
	{Role: RoleUser, Resource: "attendance", Action: "read"},
	{Role: RoleUser, Resource: "attendance", Action: "create"},
	{Role: RoleUser, Resource: "health", Action: "read"},
	{Role: RoleUser, Resource: "health", Action: "create"},
	{Role: RoleUser, Resource: "fives", Action: "read"},
	{Role: RoleUser, Resource: "fives", Action: "create"},
	{Role: RoleUser, Resource: "dashboard", Action: "read"},
}

//go:generate mockgen -source=rbac_repo.go -destination=mock/rbac_repo_mock.go -package=mock
type Repository interface {
	GetRolePermissions(ctx context.Context) ([]RolePermission, error)
	SeedDefaults(ctx context.Context) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetRolePermissions(ctx context.Context) ([]RolePermission, error) {
	var rows []RolePermission
	err := r.db.WithContext(ctx).
		Order("role ASC, resource ASC, action ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) SeedDefaults(ctx context.Context) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&RolePermission{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	rows := make([]RolePermission, len(DefaultPolicy))
	copy(rows, DefaultPolicy)
	return r.db.WithContext(ctx).Create(&rows).Error
}

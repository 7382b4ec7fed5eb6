package department

import (
	"errors"

	departmenterrors "go-hrm/internal/department/errors"
	"go-hrm/internal/shared/database"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return departmenterrors.ErrDepartmentNotFound
	}

	if constraint, ok := database.UniqueViolation(err); ok && constraint == "uq_departments_branch_name" {
		return departmenterrors.ErrDepartmentAlreadyExists
	}

	if database.ForeignKeyViolation(err) {
		return departmenterrors.ErrBranchNotFound
	}

	return err
}

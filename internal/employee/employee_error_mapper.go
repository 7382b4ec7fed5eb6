package employee

import (
	"errors"

	employeeerrors "go-hrm/internal/employee/errors"
	"go-hrm/internal/shared/database"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	if constraint, ok := database.UniqueViolation(err); ok {
		switch constraint {
		case "uq_employees_code":
			return employeeerrors.ErrEmployeeCodeAlreadyExists
		case "uq_employees_email":
			return employeeerrors.ErrEmployeeAlreadyExists
		}
	}

	if database.ForeignKeyViolation(err) {
		return employeeerrors.ErrInvalidReference
	}

	return err
}

package fives

import (
	"errors"

	fiveserrors "go-hrm/internal/fives/errors"
	"go-hrm/internal/shared/database"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiveserrors.ErrInspectionNotFound
	}
	if database.ForeignKeyViolation(err) {
		return fiveserrors.ErrDepartmentNotFound
	}
	return err
}

package health

import (
	"errors"

	healtherrors "go-hrm/internal/health/errors"
	"go-hrm/internal/shared/database"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return healtherrors.ErrHealthRecordNotFound
	}
	if database.ForeignKeyViolation(err) {
		return healtherrors.ErrEmployeeNotFound
	}
	return err
}

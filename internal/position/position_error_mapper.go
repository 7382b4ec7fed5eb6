package position

import (
	"errors"

	positionerrors "go-hrm/internal/position/errors"
	"go-hrm/internal/shared/database"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return positionerrors.ErrPositionNotFound
	}
	if constraint, ok := database.UniqueViolation(err); ok && constraint == "uq_positions_name" {
		return positionerrors.ErrPositionAlreadyExists
	}
	if database.ForeignKeyViolation(err) {
		return positionerrors.ErrDepartmentNotFound
	}
	return err
}

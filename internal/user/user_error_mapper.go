package user

import (
	"errors"

	"go-hrm/internal/shared/database"
	usererrors "go-hrm/internal/user/errors"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return usererrors.ErrUserNotFound
	}
	if constraint, ok := database.UniqueViolation(err); ok {
		if constraint == "uq_users_email" {
			return usererrors.ErrEmailTaken
		}
		return usererrors.ErrUsernameTaken
	}
	if database.ForeignKeyViolation(err) {
		return usererrors.ErrEmployeeNotFound
	}
	return err
}

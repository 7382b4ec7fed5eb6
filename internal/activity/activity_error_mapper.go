package activity

import (
	"errors"

	activityerrors "go-hrm/internal/activity/errors"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return activityerrors.ErrActivityNotFound
	}
	return err
}

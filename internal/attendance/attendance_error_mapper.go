package attendance

import (
	"errors"

	activityerrors "go-hrm/internal/activity/errors"
	attendanceerrors "go-hrm/internal/attendance/errors"
	"go-hrm/internal/shared/database"

	"gorm.io/gorm"
)

const uniqueActivityAttendance = "uq_activity_attendance"

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return activityerrors.ErrActivityNotFound
	}
	if constraint, ok := database.UniqueViolation(err); ok && (constraint == "" || constraint == uniqueActivityAttendance) {
		return attendanceerrors.ErrAlreadyCheckedIn
	}
	if database.ForeignKeyViolation(err) {
		return activityerrors.ErrActivityNotFound
	}
	return err
}

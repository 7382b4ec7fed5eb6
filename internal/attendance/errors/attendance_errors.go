package attendanceerrors

import (
	"net/http"

	"go-hrm/internal/shared/apperror"
)

var (
	ErrAlreadyCheckedIn = apperror.New(
		apperror.CodeConflict,
		"Employee has already checked in to this activity",
		http.StatusConflict,
	)
	ErrEmployeeRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Either employee_id or employee_code is required",
		http.StatusBadRequest,
	)
	ErrEmployeeInactive = apperror.New(
		apperror.CodeInvalidState,
		"Employee is not active",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrInvalidMethod = apperror.New(
		apperror.CodeInvalidInput,
		"Check-in method must be QR or Manual",
		http.StatusBadRequest,
	)
)

package healtherrors

import (
	"net/http"

	"go-hrm/internal/shared/apperror"
)

var (
	ErrHealthRecordNotFound = apperror.New(
		apperror.CodeNotFound,
		"Health record not found",
		http.StatusNotFound,
	)
	ErrInvalidHealthRecordID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid health record ID",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"Employee does not exist",
		http.StatusBadRequest,
	)
	ErrVitalsOutOfRange = apperror.New(
		apperror.CodeValidationError,
		"Vital sign is outside the accepted range",
		http.StatusBadRequest,
	)
	ErrInvalidRecordDate = apperror.New(
		apperror.CodeInvalidInput,
		"Record date must be formatted as YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDays = apperror.New(
		apperror.CodeInvalidInput,
		"Days must be a number between 1 and 365",
		http.StatusBadRequest,
	)
)

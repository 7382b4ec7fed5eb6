package activityerrors

import (
	"net/http"

	"go-hrm/internal/shared/apperror"
)

var (
	ErrActivityNotFound = apperror.New(
		apperror.CodeNotFound,
		"Activity not found",
		http.StatusNotFound,
	)
	ErrInvalidActivityID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid activity ID",
		http.StatusBadRequest,
	)
	ErrInvalidActivityDate = apperror.New(
		apperror.CodeInvalidInput,
		"Activity date must be formatted as YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidTimeRange = apperror.New(
		apperror.CodeValidationError,
		"End time must be after start time",
		http.StatusBadRequest,
	)
	ErrInvalidDays = apperror.New(
		apperror.CodeInvalidInput,
		"Days must be a number between 0 and 365",
		http.StatusBadRequest,
	)
)

package fiveserrors

import (
	"net/http"

	"go-hrm/internal/shared/apperror"
)

var (
	ErrScoreOutOfRange = apperror.New(
		apperror.CodeValidationError,
		"Each score must be between 0 and 10",
		http.StatusBadRequest,
	)
	ErrDuplicateInspection = apperror.New(
		apperror.CodeConflict,
		"This inspector has already scored this department this month",
		http.StatusConflict,
	)
	ErrInspectionNotFound = apperror.New(
		apperror.CodeNotFound,
		"Inspection not found",
		http.StatusNotFound,
	)
	ErrInvalidInspectionID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid inspection ID",
		http.StatusBadRequest,
	)
	ErrInvalidDepartmentID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid department ID",
		http.StatusBadRequest,
	)
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"Department does not exist",
		http.StatusBadRequest,
	)
	ErrInvalidInspectionDate = apperror.New(
		apperror.CodeInvalidInput,
		"Inspection date must be formatted as YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidMonth = apperror.New(
		apperror.CodeInvalidInput,
		"Month must be formatted as YYYY-MM",
		http.StatusBadRequest,
	)
)

package departmenterrors

import (
	"net/http"

	"go-hrm/internal/shared/apperror"
)

var (
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Department not found",
		http.StatusNotFound,
	)
	ErrDepartmentAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Department with the same name already exists in this branch",
		http.StatusConflict,
	)
	ErrBranchNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"Branch does not exist",
		http.StatusBadRequest,
	)
	ErrInvalidDepartmentID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid department ID",
		http.StatusBadRequest,
	)
	ErrInvalidBranchID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid branch ID",
		http.StatusBadRequest,
	)
)

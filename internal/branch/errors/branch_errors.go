package brancherrors

import (
	"net/http"

	"go-hrm/internal/shared/apperror"
)

var (
	ErrBranchNotFound = apperror.New(
		apperror.CodeNotFound,
		"Branch not found",
		http.StatusNotFound,
	)
	ErrBranchAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Branch with the same name already exists",
		http.StatusConflict,
	)
	ErrInvalidBranchID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid branch ID",
		http.StatusBadRequest,
	)
)

package branch

import (
	"errors"

	brancherrors "go-hrm/internal/branch/errors"
	"go-hrm/internal/shared/database"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return brancherrors.ErrBranchNotFound
	}
	if constraint, ok := database.UniqueViolation(err); ok && constraint == "uq_branches_name" {
		return brancherrors.ErrBranchAlreadyExists
	}
	return err
}

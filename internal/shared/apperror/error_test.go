package apperror_test

import (
	"errors"
	"net/http"
	"testing"

	"go-hrm/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
)

func TestToHTTP(t *testing.T) {
	t.Run("app error keeps status and code", func(t *testing.T) {
		got := apperror.ToHTTP(apperror.ErrNotFound)
		assert.Equal(t, http.StatusNotFound, got.Status)
		assert.Equal(t, apperror.CodeNotFound, got.Code)
	})

	t.Run("described sentinel still matches", func(t *testing.T) {
		err := apperror.Describe(apperror.ErrInvalidInput, "score must be a number")
		assert.True(t, errors.Is(err, apperror.ErrInvalidInput))

		got := apperror.ToHTTP(err)
		assert.Equal(t, http.StatusBadRequest, got.Status)
		assert.Equal(t, "score must be a number", got.Message)
	})

	t.Run("details are rendered", func(t *testing.T) {
		err := apperror.ErrInvalidInput.WithDetails(map[string]string{"field": "x"})
		got := apperror.ToHTTP(err)
		assert.Equal(t, map[string]string{"field": "x"}, got.Details)
	})

	t.Run("plain error becomes internal", func(t *testing.T) {
		got := apperror.ToHTTP(errors.New("connection reset"))
		assert.Equal(t, http.StatusInternalServerError, got.Status)
		assert.Equal(t, apperror.CodeInternalError, got.Code)
	})
}

func TestMapValidationError(t *testing.T) {
	type payload struct {
		HeartRate int    `json:"heart_rate" binding:"min=20,max=250"`
		FullName  string `json:"full_name" binding:"required"`
	}
	v := apperror.NewValidator()

	err := apperror.MapValidationError(v.Struct(payload{HeartRate: 300, FullName: "A"}))
	assert.Equal(t, "Heart Rate must be at most 250", apperror.ToHTTP(err).Message)

	err = apperror.MapValidationError(v.Struct(payload{HeartRate: 60}))
	assert.Equal(t, "Full Name is required", apperror.ToHTTP(err).Message)
}

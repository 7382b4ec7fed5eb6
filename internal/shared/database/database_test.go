package database

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestUniqueViolation(t *testing.T) {
	c, ok := UniqueViolation(&pgconn.PgError{Code: "23505", ConstraintName: "uq_activity_attendance"})
	assert.True(t, ok)
	assert.Equal(t, "uq_activity_attendance", c)

	c, ok = UniqueViolation(errors.New(`ERROR: duplicate key value violates unique constraint "uq_employees_code" (SQLSTATE 23505)`))
	assert.True(t, ok)
	assert.Equal(t, "uq_employees_code", c)

	_, ok = UniqueViolation(&pgconn.PgError{Code: "23503"})
	assert.False(t, ok)

	_, ok = UniqueViolation(errors.New("connection reset"))
	assert.False(t, ok)
}

func TestForeignKeyViolation(t *testing.T) {
	assert.True(t, ForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, ForeignKeyViolation(errors.New("boom")))
}

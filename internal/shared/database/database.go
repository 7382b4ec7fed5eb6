package database

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// WithTx returns a gorm handle whose statements run on tx. Services open the
// transaction on *sql.DB so repositories and the outbox share it.
func WithTx(db *gorm.DB, tx *sql.Tx) *gorm.DB {
	if tx == nil {
		return db
	}
	session := db.Session(&gorm.Session{NewDB: true})
	session.Statement.ConnPool = tx
	return session
}

// UniqueViolation reports whether err is a unique-key violation and, if so,
// which constraint fired.
func UniqueViolation(err error) (constraint string, ok bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName, pgErr.Code == pgUniqueViolation
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "duplicate key value") {
		if i := strings.Index(msg, "constraint \""); i >= 0 {
			rest := msg[i+len("constraint \""):]
			if j := strings.Index(rest, "\""); j >= 0 {
				return rest[:j], true
			}
		}
		return "", true
	}
	return "", false
}

// ForeignKeyViolation reports whether err is a foreign-key violation, e.g.
// deleting a department that employees still reference.
func ForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}
	return strings.Contains(strings.ToLower(err.Error()), "violates foreign key constraint")
}

package utils

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// UniqueViolationConstraint returns the violated constraint name if err is a
// PostgreSQL unique constraint violation (code 23505).
func UniqueViolationConstraint(err error) (string, bool) {
	var pge *pgconn.PgError
	if errors.As(err, &pge) && pge.Code == "23505" {
		return pge.ConstraintName, true
	}
	return "", false
}

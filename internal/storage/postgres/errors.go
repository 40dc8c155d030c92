package postgres

import (
	"errors"

	"github.com/lib/pq"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// UniqueViolation reports whether err is a unique constraint violation and
// returns the constraint name.
func UniqueViolation(err error) (string, bool) {
	var pgErr *pq.Error
	if errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation {
		return pgErr.Constraint, true
	}
	return "", false
}

// ForeignKeyViolation reports whether err is a foreign key violation and
// returns the constraint name.
func ForeignKeyViolation(err error) (string, bool) {
	var pgErr *pq.Error
	if errors.As(err, &pgErr) && pgErr.Code == codeForeignKeyViolation {
		return pgErr.Constraint, true
	}
	return "", false
}

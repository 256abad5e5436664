package postgres

import (
	"strings"

	"checker/internal/errors"

	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes, matched when the driver error was not translated
// into a gorm sentinel.
const (
	sqlStateNotNullViolation    = "23502"
	sqlStateForeignKeyViolation = "23503"
	sqlStateUniqueViolation     = "23505"
	sqlStateCheckViolation      = "23514"
)

func isUniqueConstraintViolation(err error) bool {
	return matchesConstraint(err, gorm.ErrDuplicatedKey, sqlStateUniqueViolation, "duplicate key")
}

func isForeignKeyConstraintViolation(err error) bool {
	return matchesConstraint(err, gorm.ErrForeignKeyViolated, sqlStateForeignKeyViolation, "foreign key")
}

func isNotNullConstraintViolation(err error) bool {
	return matchesConstraint(err, nil, sqlStateNotNullViolation, "null value")
}

func isCheckConstraintViolation(err error) bool {
	return matchesConstraint(err, gorm.ErrCheckConstraintViolated, sqlStateCheckViolation, "check constraint")
}

func matchesConstraint(err, sentinel error, sqlState, phrase string) bool {
	if err == nil {
		return false
	}
	if sentinel != nil && errors.Is(err, sentinel) {
		return true
	}

	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, sqlState) || strings.Contains(errMsg, phrase)
}

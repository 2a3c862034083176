package database

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// uniqueViolationCode é o SQLSTATE do PostgreSQL para unique_violation
const uniqueViolationCode = "23505"

// isUniqueViolation reconhece violação de unicidade nos três dialetos suportados
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolationCode
	}
	// sqlite: "UNIQUE constraint failed: users.username"
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// Package repository implements the data access layer for the application.
package repository

import (
	"database/sql/driver"
	"errors"
	"strings"

	"murmur/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL unique violation SQLSTATE 23505
		return pgErr.Code == "23505"
	}
	msg := strings.ToLower(err.Error())
	// SQLite says "unique constraint failed"; sqlmock errors are plain strings
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}

// isForeignKeyError checks if a DB error is a foreign-key violation.
func isForeignKeyError(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL foreign-key violation SQLSTATE 23503
		return pgErr.Code == "23503"
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "foreign key constraint") ||
		strings.Contains(msg, "23503")
}

// isUnavailableError checks if a DB error means the store itself could not be
// reached, as opposed to the request being at fault.
func isUnavailableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "failed to connect")
}

// wrapWriteError translates a raw GORM write error into the application
// taxonomy. field names the uniquely-constrained column(s) of the resource.
func wrapWriteError(err error, resource, field string) error {
	switch {
	case isUniqueConstraintError(err):
		return models.NewConstraintViolationError(resource, field, err)
	case isForeignKeyError(err):
		return models.NewConstraintViolationError(resource, "foreign key", err)
	case isUnavailableError(err):
		return models.NewStoreUnavailableError(err)
	default:
		return models.NewInternalError(err)
	}
}

// wrapReadError translates a raw GORM read error. Record-not-found never
// reaches this: absent rows are not errors at this layer.
func wrapReadError(err error) error {
	if isUnavailableError(err) {
		return models.NewStoreUnavailableError(err)
	}
	return models.NewInternalError(err)
}

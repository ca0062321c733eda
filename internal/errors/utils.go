package errors

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// reports whether any error in err's chain matches target.
// Re-exported so handlers can pair taxonomy checks with the responders
// without importing two packages named errors.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// sanitizes an error message for the client in production
func sanitizeError(err error) string {
	if err == nil {
		return ""
	}

	env := os.Getenv("ENVIRONMENT")
	isProduction := env == "production"

	if !isProduction {
		return err.Error()
	}

	// database errors (pgx-specific)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return "database operation failed"
	}

	// no rows found
	if errors.Is(err, pgx.ErrNoRows) {
		return "resource not found"
	}

	// context errors
	if errors.Is(err, context.DeadlineExceeded) {
		return "request timed out"
	}

	if errors.Is(err, context.Canceled) {
		return "request canceled"
	}

	// fallback to string matching for unknown error types
	errMsg := strings.ToLower(err.Error())

	if strings.Contains(errMsg, "timeout") || strings.Contains(errMsg, "deadline") {
		return "request timed out"
	}

	if strings.Contains(errMsg, "not found") || strings.Contains(errMsg, "no rows") {
		return "resource not found"
	}

	if strings.Contains(errMsg, "database") || strings.Contains(errMsg, "sql") ||
		strings.Contains(errMsg, "postgres") || strings.Contains(errMsg, "pgx") {
		return "database operation failed"
	}

	if strings.Contains(errMsg, "connection") || strings.Contains(errMsg, "network") ||
		strings.Contains(errMsg, "dial") {
		return "connection error occurred"
	}

	if strings.Contains(errMsg, "unauthorized") || strings.Contains(errMsg, "forbidden") ||
		strings.Contains(errMsg, "permission") {
		return "permission denied"
	}

	return "an error occurred"
}

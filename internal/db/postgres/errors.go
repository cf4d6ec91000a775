package postgres

import (
	"database/sql"
	"errors"
	"log/slog"

	"github.com/lib/pq"
)

// PostgreSQL error codes the repositories translate into domain errors
const (
	pgUniqueViolation      = pq.ErrorCode("23505")
	pgForeignKeyViolation  = pq.ErrorCode("23503")
	pgSerializationFailure = pq.ErrorCode("40001")
	pgDeadlockDetected     = pq.ErrorCode("40P01")
)

// pqError unwraps a *pq.Error, returning nil if err is not one
func pqError(err error) *pq.Error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr
	}
	return nil
}

// isViolation reports whether err is a constraint violation of the given code,
// optionally on a specific constraint
func isViolation(err error, code pq.ErrorCode, constraint string) bool {
	pqErr := pqError(err)
	if pqErr == nil || pqErr.Code != code {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}

// isRetryable reports whether the transaction lost a race and may be retried
func isRetryable(err error) bool {
	pqErr := pqError(err)
	return pqErr != nil && (pqErr.Code == pgSerializationFailure || pqErr.Code == pgDeadlockDetected)
}

// rollback is deferred after BeginTx; it is a no-op once the transaction committed
func rollback(tx *sql.Tx, op string) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		slog.Error("failed to rollback transaction", "op", op, "error", err)
	}
}

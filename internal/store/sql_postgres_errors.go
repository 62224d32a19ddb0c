package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification is the result type returned by [ErrorClassificator.Classify].
// It tells whether a failed statement could succeed if issued again.
type ErrorClassification int

const (
	// NonRetryable is the default for unrecognised errors, constraint
	// violations, syntax errors and data exceptions.
	NonRetryable ErrorClassification = iota

	// Retryable marks transient failures (connection loss, deadlock,
	// serialization failure, lock timeout, server starting up).
	Retryable
)

// retryablePgCodes lists the SQLSTATE codes of transient failures.
// See https://www.postgresql.org/docs/current/errcodes-appendix.html.
var retryablePgCodes = map[string]struct{}{
	// Class 08: connection exceptions
	pgerrcode.ConnectionException:    {},
	pgerrcode.ConnectionDoesNotExist: {},
	pgerrcode.ConnectionFailure:      {},

	// Class 40: transaction rollback
	pgerrcode.TransactionRollback:  {},
	pgerrcode.SerializationFailure: {},
	pgerrcode.DeadlockDetected:     {},

	// Class 55: object not in prerequisite state
	pgerrcode.LockNotAvailable: {},

	// Class 57: operator intervention
	pgerrcode.CannotConnectNow: {},
}

// PostgresErrorClassifier implements [ErrorClassificator] for PostgreSQL
// errors surfaced by the pgx driver.
type PostgresErrorClassifier struct{}

// NewPostgresErrorClassifier constructs a [PostgresErrorClassifier] ready for use.
func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify implements [ErrorClassificator]. Errors that are not a
// *pgconn.PgError are [NonRetryable].
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	var pgErr *pgconn.PgError
	if err == nil || !errors.As(err, &pgErr) {
		return NonRetryable
	}

	return ClassifyPgError(pgErr)
}

// ClassifyPgError maps a *pgconn.PgError to an [ErrorClassification] by its
// SQLSTATE code.
func ClassifyPgError(pgErr *pgconn.PgError) ErrorClassification {
	if _, ok := retryablePgCodes[pgErr.Code]; ok {
		return Retryable
	}
	return NonRetryable
}

// postgresErrorCode returns the SQLSTATE code of err, or "" when err does not
// come from PostgreSQL.
func postgresErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}

package store

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-settings/internal/settings"
)

// Low-level backend operation errors. Handlers return them wrapped together
// with [settings.ErrStorage] and the driver error, so callers can match any
// of the three with [errors.Is] / [errors.As].
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a SELECT against the settings table
	// fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when an INSERT, UPDATE, DELETE or
	// TRUNCATE fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRows is returned when scanning hydrated rows fails,
	// typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan settings rows")

	// ErrRedisCommand is returned when a Redis command or pipeline fails.
	ErrRedisCommand = errors.New("redis command failed")

	// ErrDecodingRecord is returned when a Redis hash field does not hold a
	// valid CBOR setting record.
	ErrDecodingRecord = errors.New("failed to decode setting record")

	// ErrInvalidTableName is returned by [NewDatabaseHandler] for table names
	// that are not plain SQL identifiers.
	ErrInvalidTableName = errors.New("invalid settings table name")
)

// storageError wraps a backend failure of the given kind.
func storageError(kind, err error) error {
	return fmt.Errorf("%w: %w: %w", settings.ErrStorage, kind, err)
}

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-settings/internal/logger"
	"github.com/MKhiriev/go-settings/migrations"
)

// Supported database/sql driver names.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"
)

// ErrorClassificator labels driver errors so failures can be reported as
// transient or permanent.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// DB is a database/sql connection together with the dialect-specific query
// builder and error classifier.
type DB struct {
	*sql.DB
	driver             string
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewDB wraps an already opened connection. driver selects the placeholder
// format and error classifier.
func NewDB(conn *sql.DB, driver string, log *logger.Logger) *DB {
	db := &DB{
		DB:      conn,
		driver:  driver,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
		logger:  log,
	}

	if driver == DriverPostgres {
		db.builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
		db.errorClassificator = NewPostgresErrorClassifier()
	}

	return db
}

// Driver returns the database/sql driver name of the connection.
func (db *DB) Driver() string {
	return db.driver
}

// Migrate applies the embedded schema migrations.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.driver)
}

// IsRetryable reports whether err is a transient driver failure. Settings
// operations never retry on their own; the label only ends up in logs.
func (db *DB) IsRetryable(err error) bool {
	if db.errorClassificator == nil {
		return false
	}
	return db.errorClassificator.Classify(err) == Retryable
}

// pingWithRetry pings the database at startup, retrying with exponential
// backoff up to retries times.
func pingWithRetry(ctx context.Context, conn *sql.DB, retries uint64) error {
	backoff := retry.WithMaxRetries(retries, retry.NewExponential(200*time.Millisecond))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := conn.PingContext(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("error connecting database (ping): %w", err)
	}

	return nil
}

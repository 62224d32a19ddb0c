// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"time"

	"github.com/MKhiriev/go-settings/internal/codec"
	"github.com/MKhiriev/go-settings/internal/logger"
	"github.com/MKhiriev/go-settings/internal/settings"
	"github.com/MKhiriev/go-settings/models"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// HandlerOption configures the persistent handlers of this package.
type HandlerOption func(*handlerOptions)

type handlerOptions struct {
	hydrationTTL time.Duration
	now          func() time.Time
}

// WithHydrationTTL makes hydrated scopes expire after ttl. Zero, the
// default, keeps them until Flush.
func WithHydrationTTL(ttl time.Duration) HandlerOption {
	return func(o *handlerOptions) {
		o.hydrationTTL = ttl
	}
}

// WithClock replaces time.Now for record timestamps.
func WithClock(now func() time.Time) HandlerOption {
	return func(o *handlerOptions) {
		o.now = now
	}
}

func newHandlerOptions(opts []HandlerOption) handlerOptions {
	o := handlerOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// DatabaseHandler stores settings in a SQL table and serves reads from an
// embedded [settings.ArrayHandler].
//
// The first Has or Get touching a scope loads all rows of that scope (plus
// the global rows, if not loaded yet) in a single query. Later reads of the
// scope never query again. Writes go to the table first and are mirrored in
// the cache only when the statement succeeds. Rows changed by another
// process are not noticed unless a hydration TTL is configured.
//
// DatabaseHandler is not safe for concurrent use.
type DatabaseHandler struct {
	db       *DB
	table    string
	cache    *settings.ArrayHandler
	hydrated *hydrationTracker
	now      func() time.Time
}

// NewDatabaseHandler returns a handler over table. The table must exist, see
// [DB.Migrate].
func NewDatabaseHandler(db *DB, table string, opts ...HandlerOption) (*DatabaseHandler, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTableName, table)
	}

	o := newHandlerOptions(opts)

	return &DatabaseHandler{
		db:       db,
		table:    table,
		cache:    settings.NewArrayHandler(),
		hydrated: newHydrationTracker(o.hydrationTTL),
		now:      o.now,
	}, nil
}

// Has implements [settings.Handler].
func (h *DatabaseHandler) Has(ctx context.Context, namespace, property string, scope models.Scope) (bool, error) {
	if err := h.hydrate(ctx, scope); err != nil {
		return false, err
	}

	return h.cache.Contains(namespace, property, scope), nil
}

// Get implements [settings.Handler].
func (h *DatabaseHandler) Get(ctx context.Context, namespace, property string, scope models.Scope) (any, error) {
	if err := h.hydrate(ctx, scope); err != nil {
		return nil, err
	}

	return h.cache.Value(namespace, property, scope)
}

// Set implements [settings.Handler]. A key already present in the hydrated
// cache is updated in place, anything else is inserted.
func (h *DatabaseHandler) Set(ctx context.Context, namespace, property string, value any, scope models.Scope) error {
	log := logger.FromContext(ctx)

	sv, err := codec.Prepare(value)
	if err != nil {
		return err
	}

	if err = h.hydrate(ctx, scope); err != nil {
		return err
	}

	key := models.SettingKey{Namespace: namespace, Property: property}
	now := h.now()

	inserted := false
	if h.cache.Contains(namespace, property, scope) {
		var affected int64
		affected, err = h.exec(ctx, "update", func() (string, []any, error) {
			return buildUpdateSettingQuery(h.db.builder, h.table, key, sv, scope, now)
		})
		if err != nil {
			return err
		}
		// row deleted behind our back
		inserted = affected == 0
	} else {
		inserted = true
	}

	if inserted {
		_, err = h.exec(ctx, "insert", func() (string, []any, error) {
			return buildInsertSettingQuery(h.db.builder, h.table, key, sv, scope, now)
		})
		if err != nil {
			return err
		}
	}

	h.cache.Store(namespace, property, scope, sv)

	log.Debug().
		Str("key", key.String()).
		Stringer("scope", scope).
		Bool("inserted", inserted).
		Msg("setting stored in database")
	return nil
}

// Forget implements [settings.Handler]. Deleting a row that does not exist
// is not an error.
func (h *DatabaseHandler) Forget(ctx context.Context, namespace, property string, scope models.Scope) error {
	key := models.SettingKey{Namespace: namespace, Property: property}

	_, err := h.exec(ctx, "delete", func() (string, []any, error) {
		return buildDeleteSettingQuery(h.db.builder, h.table, key, scope)
	})
	if err != nil {
		return err
	}

	h.cache.Remove(namespace, property, scope)
	return nil
}

// Flush implements [settings.Handler]. It empties the table and the cache.
func (h *DatabaseHandler) Flush(ctx context.Context) error {
	_, err := h.exec(ctx, "flush", func() (string, []any, error) {
		return buildFlushQuery(h.db.driver, h.table), nil, nil
	})
	if err != nil {
		return err
	}

	h.cache.Reset()
	h.hydrated.Reset()
	return nil
}

// hydrate loads the scopes reported by the tracker. Marks are set only after
// every row was read, so a failed query is retried on the next touch.
func (h *DatabaseHandler) hydrate(ctx context.Context, scope models.Scope) error {
	scopes := h.hydrated.pending(scope)
	if len(scopes) == 0 {
		return nil
	}

	log := logger.FromContext(ctx)

	query, args, err := buildSelectScopesQuery(h.db.builder, h.table, scopes)
	if err != nil {
		log.Err(err).Str("func", "*DatabaseHandler.hydrate").Msg("failed to create query")
		return storageError(ErrBuildingSQLQuery, err)
	}

	records, err := h.queryRecords(ctx, query, args)
	if err != nil {
		log.Err(err).
			Str("func", "*DatabaseHandler.hydrate").
			Stringer("scope", scope).
			Bool("retryable", h.db.IsRetryable(err)).
			Msg("failed to hydrate settings")
		return err
	}

	for _, s := range scopes {
		h.cache.ResetScope(s)
	}
	for _, rec := range records {
		h.cache.Store(rec.Namespace, rec.Property, rec.Scope(), rec.Value)
	}
	h.hydrated.mark(scopes...)

	log.Debug().
		Stringer("scope", scope).
		Int("scopes", len(scopes)).
		Int("rows", len(records)).
		Msg("settings hydrated from database")
	return nil
}

func (h *DatabaseHandler) queryRecords(ctx context.Context, query string, args []any) ([]models.SettingRecord, error) {
	rows, err := h.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageError(ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.SettingRecord, 0, 32)
	for rows.Next() {
		var (
			rec       models.SettingRecord
			raw       sql.NullString
			valueType string
			scopeName sql.NullString
		)

		if err = rows.Scan(&rec.Namespace, &rec.Property, &raw, &valueType, &scopeName); err != nil {
			return nil, storageError(ErrScanningRows, err)
		}

		if raw.Valid {
			rec.Value.Raw = &raw.String
		}
		rec.Value.Type = models.ValueType(valueType)
		if scopeName.Valid {
			rec.Context = &scopeName.String
		}

		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, storageError(ErrScanningRows, err)
	}

	return records, nil
}

// exec runs a data-modifying statement and returns the affected row count.
func (h *DatabaseHandler) exec(ctx context.Context, op string, build func() (string, []any, error)) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := build()
	if err != nil {
		log.Err(err).Str("func", "*DatabaseHandler.exec").Str("op", op).Msg("failed to create query")
		return 0, storageError(ErrBuildingSQLQuery, err)
	}

	result, err := h.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*DatabaseHandler.exec").
			Str("op", op).
			Str("sqlstate", postgresErrorCode(err)).
			Bool("retryable", h.db.IsRetryable(err)).
			Msg("failed to execute statement")
		return 0, storageError(ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		// not every driver reports it; the statement itself succeeded
		return -1, nil
	}

	return affected, nil
}

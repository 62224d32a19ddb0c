// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-settings/models"
)

var settingColumns = []string{"namespace", "property", "value", "type", "context"}

// buildSelectScopesQuery selects every row of the given scopes in one round
// trip.
func buildSelectScopesQuery(b sq.StatementBuilderType, table string, scopes []models.Scope) (string, []any, error) {
	where := make(sq.Or, 0, len(scopes))
	for _, scope := range scopes {
		where = append(where, scopePredicate(scope))
	}

	return b.Select(settingColumns...).
		From(table).
		Where(where).
		ToSql()
}

func buildUpdateSettingQuery(b sq.StatementBuilderType, table string, key models.SettingKey, sv models.StoredValue, scope models.Scope, now time.Time) (string, []any, error) {
	return b.Update(table).
		Set("value", nullString(sv.Raw)).
		Set("type", string(sv.Type)).
		Set("updated_at", now).
		Where(keyPredicate(key, scope)).
		ToSql()
}

func buildInsertSettingQuery(b sq.StatementBuilderType, table string, key models.SettingKey, sv models.StoredValue, scope models.Scope, now time.Time) (string, []any, error) {
	return b.Insert(table).
		Columns("namespace", "property", "value", "type", "context", "created_at", "updated_at").
		Values(key.Namespace, key.Property, nullString(sv.Raw), string(sv.Type), nullString(scope.Context()), now, now).
		ToSql()
}

func buildDeleteSettingQuery(b sq.StatementBuilderType, table string, key models.SettingKey, scope models.Scope) (string, []any, error) {
	return b.Delete(table).
		Where(keyPredicate(key, scope)).
		ToSql()
}

// buildFlushQuery empties the table. SQLite has no TRUNCATE.
func buildFlushQuery(driver, table string) string {
	if driver == DriverPostgres {
		return "TRUNCATE TABLE " + table
	}
	return "DELETE FROM " + table
}

// keyPredicate keeps namespace, property and context in this argument order.
func keyPredicate(key models.SettingKey, scope models.Scope) sq.And {
	return sq.And{
		sq.Eq{"namespace": key.Namespace},
		sq.Eq{"property": key.Property},
		scopePredicate(scope),
	}
}

func scopePredicate(scope models.Scope) sq.Sqlizer {
	if scope.IsGlobal() {
		return sq.Eq{"context": nil}
	}
	return sq.Eq{"context": scope.Name()}
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

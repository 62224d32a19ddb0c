package settings

import (
	"context"

	"github.com/MKhiriev/go-settings/internal/codec"
	"github.com/MKhiriev/go-settings/models"
)

type entryKey struct {
	namespace string
	property  string
}

// ArrayHandler is the non-persistent reference handler. Values live in two
// maps: one for the global scope and one per named context.
//
// It is usable on its own (tests, ephemeral overrides) and is embedded as the
// cache of the persistent handlers in the store package, which use the
// Contains/Stored/Store/Remove/Reset helpers to fill it from storage.
//
// ArrayHandler is not safe for concurrent use.
type ArrayHandler struct {
	general  map[entryKey]models.StoredValue
	contexts map[string]map[entryKey]models.StoredValue
}

// NewArrayHandler returns an empty ArrayHandler.
func NewArrayHandler() *ArrayHandler {
	return &ArrayHandler{
		general:  make(map[entryKey]models.StoredValue),
		contexts: make(map[string]map[entryKey]models.StoredValue),
	}
}

// Has implements [Handler].
func (a *ArrayHandler) Has(_ context.Context, namespace, property string, scope models.Scope) (bool, error) {
	return a.Contains(namespace, property, scope), nil
}

// Get implements [Handler]. A missing entry yields (nil, nil).
func (a *ArrayHandler) Get(_ context.Context, namespace, property string, scope models.Scope) (any, error) {
	return a.Value(namespace, property, scope)
}

// Set implements [Handler].
func (a *ArrayHandler) Set(_ context.Context, namespace, property string, value any, scope models.Scope) error {
	sv, err := codec.Prepare(value)
	if err != nil {
		return err
	}

	a.Store(namespace, property, scope, sv)
	return nil
}

// Forget implements [Handler].
func (a *ArrayHandler) Forget(_ context.Context, namespace, property string, scope models.Scope) error {
	a.Remove(namespace, property, scope)
	return nil
}

// Flush implements [Handler].
func (a *ArrayHandler) Flush(context.Context) error {
	a.Reset()
	return nil
}

// Contains reports whether an entry exists for the key in scope.
func (a *ArrayHandler) Contains(namespace, property string, scope models.Scope) bool {
	_, ok := a.Stored(namespace, property, scope)
	return ok
}

// Stored returns the encoded entry for the key in scope.
func (a *ArrayHandler) Stored(namespace, property string, scope models.Scope) (models.StoredValue, bool) {
	key := entryKey{namespace: namespace, property: property}

	if scope.IsGlobal() {
		sv, ok := a.general[key]
		return sv, ok
	}

	sv, ok := a.contexts[scope.Name()][key]
	return sv, ok
}

// Value decodes the entry for the key in scope, or returns (nil, nil) when
// there is none.
func (a *ArrayHandler) Value(namespace, property string, scope models.Scope) (any, error) {
	sv, ok := a.Stored(namespace, property, scope)
	if !ok {
		return nil, nil
	}

	return codec.Parse(sv)
}

// Store puts an already encoded entry.
func (a *ArrayHandler) Store(namespace, property string, scope models.Scope, sv models.StoredValue) {
	key := entryKey{namespace: namespace, property: property}

	if scope.IsGlobal() {
		a.general[key] = sv
		return
	}

	entries, ok := a.contexts[scope.Name()]
	if !ok {
		entries = make(map[entryKey]models.StoredValue)
		a.contexts[scope.Name()] = entries
	}
	entries[key] = sv
}

// Remove deletes the entry for the key in scope, if any.
func (a *ArrayHandler) Remove(namespace, property string, scope models.Scope) {
	key := entryKey{namespace: namespace, property: property}

	if scope.IsGlobal() {
		delete(a.general, key)
		return
	}

	entries, ok := a.contexts[scope.Name()]
	if !ok {
		return
	}
	delete(entries, key)
	if len(entries) == 0 {
		delete(a.contexts, scope.Name())
	}
}

// Reset drops every entry in every scope.
func (a *ArrayHandler) Reset() {
	a.general = make(map[entryKey]models.StoredValue)
	a.contexts = make(map[string]map[entryKey]models.StoredValue)
}

// ResetScope drops every entry of a single scope.
func (a *ArrayHandler) ResetScope(scope models.Scope) {
	if scope.IsGlobal() {
		a.general = make(map[entryKey]models.StoredValue)
		return
	}
	delete(a.contexts, scope.Name())
}

// Len returns the number of entries across all scopes.
func (a *ArrayHandler) Len() int {
	n := len(a.general)
	for _, entries := range a.contexts {
		n += len(entries)
	}
	return n
}

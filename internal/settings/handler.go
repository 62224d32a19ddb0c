package settings

import (
	"context"

	"github.com/MKhiriev/go-settings/models"
)

//go:generate mockgen -source=handler.go -destination=../mock/handler_mock.go -package=mock

// Handler is a pluggable settings backend.
//
// Has and Get never mutate the backing store, although persistent handlers
// may load (hydrate) data into their cache on first use of a scope.
// Handlers that cannot store values return [ErrNotSupported] from Set,
// Forget and Flush instead of silently dropping the call.
type Handler interface {
	Has(ctx context.Context, namespace, property string, scope models.Scope) (bool, error)
	Get(ctx context.Context, namespace, property string, scope models.Scope) (any, error)
	Set(ctx context.Context, namespace, property string, value any, scope models.Scope) error
	Forget(ctx context.Context, namespace, property string, scope models.Scope) error
	Flush(ctx context.Context) error
}

// ReadOnly can be embedded by handlers without mutation capability.
type ReadOnly struct{}

// Set implements [Handler].
func (ReadOnly) Set(context.Context, string, string, any, models.Scope) error {
	return ErrNotSupported
}

// Forget implements [Handler].
func (ReadOnly) Forget(context.Context, string, string, models.Scope) error {
	return ErrNotSupported
}

// Flush implements [Handler].
func (ReadOnly) Flush(context.Context) error {
	return ErrNotSupported
}

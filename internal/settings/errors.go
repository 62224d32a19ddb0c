package settings

import "errors"

// Sentinel errors returned by the engine and its handlers. Callers should use
// [errors.Is] to match against these values; storage failures wrap the
// backend's native error so it stays reachable with [errors.As].
var (
	// ErrInvalidKey is returned when a key is not in "Namespace.property"
	// form. It is raised before any handler is touched.
	ErrInvalidKey = errors.New("setting key must contain both namespace and property, i.e. Foo.bar")

	// ErrNotSupported is returned by handlers that cannot perform the
	// requested mutation (read-only handlers).
	ErrNotSupported = errors.New("operation not supported by settings handler")

	// ErrStorage is returned when the backing store of a handler fails to
	// read, write or delete.
	ErrStorage = errors.New("settings storage error")

	// ErrNoWritableHandler is returned by Set and Forget when the handler
	// chain has no link flagged writable.
	ErrNoWritableHandler = errors.New("unable to find a settings handler that can store values")

	// ErrUnknownHandler is returned by [Registry.Chain] for handler names
	// that were never registered.
	ErrUnknownHandler = errors.New("unknown settings handler")

	// ErrInvalidDefaults is returned when a defaults source has no namespace
	// or reuses a namespace or alias that is already registered.
	ErrInvalidDefaults = errors.New("invalid settings defaults source")
)

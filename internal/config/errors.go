package config

import "errors"

// Validation errors returned when required configuration groups are
// incomplete or invalid.
var (
	// ErrInvalidSettingsConfigs indicates an unusable handler chain (for
	// example, an empty or duplicated handler name, or a writable handler
	// that is not part of the chain).
	ErrInvalidSettingsConfigs = errors.New("invalid settings configuration")
	// ErrInvalidStorageConfigs indicates missing or invalid backend settings
	// for a handler present in the chain (for example, empty DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidServerConfigs indicates invalid HTTP server settings.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidAdapterConfigs indicates invalid client adapter settings
	// (for example, missing server address or request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidAuthConfigs indicates token settings that cannot sign or
	// verify tokens.
	ErrInvalidAuthConfigs = errors.New("invalid auth configuration")
)

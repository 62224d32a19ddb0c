package service

import "errors"

var (
	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	// ErrBackendNotConfigured is returned when the chain names a handler
	// whose backend connection was not provided.
	ErrBackendNotConfigured = errors.New("settings handler backend is not configured")

	ErrAuthDisabled   = errors.New("token auth is disabled: no sign key configured")
	ErrTokenIsExpired = errors.New("token is expired")
	ErrInvalidToken   = errors.New("invalid token")
)

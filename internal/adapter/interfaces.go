// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client side of the settings HTTP API.
//
// [SettingsClient] decouples command-line code from the transport. Error
// responses are mapped to the sentinel values in errors.go so that callers
// can use [errors.Is] (e.g. [ErrConflict] for 409, [ErrBadRequest] for 400,
// [ErrUnauthorized] for a missing or rejected bearer token).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-settings/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/settings_client_mock.go -package=mock

// SettingsClient talks to a settings server.
type SettingsClient interface {
	// Get resolves key in scope. An empty scope is the global scope. A key
	// without any value is not an error: the response has Found == false.
	Get(ctx context.Context, key, scope string) (models.SettingResponse, error)

	// Set stores value for key in scope.
	Set(ctx context.Context, key string, value any, scope string) error

	// Forget removes the override for key in scope.
	Forget(ctx context.Context, key, scope string) error

	// Flush clears every writable handler of the server.
	Flush(ctx context.Context) error

	// Handlers lists the server's handler chain in read order.
	Handlers(ctx context.Context) ([]models.HandlerInfo, error)

	// Version returns the server version string.
	Version(ctx context.Context) (string, error)
}

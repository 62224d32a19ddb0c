// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	// ErrInvalidRequestBody is returned when a PUT body is not a single JSON
	// object of the form {"value": ...}.
	ErrInvalidRequestBody = errors.New("invalid request body")

	// ErrEmptyAuthorizationHeader is returned when a guarded route is called
	// without an Authorization header.
	ErrEmptyAuthorizationHeader = errors.New("empty authorization header")
)

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators provides input validation applied before requests reach
// the settings engine.
//
// Validator implementations may restrict validation to specific named fields
// (field-level scoping). With no fields every rule applies.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {
	// Validate validates the provided input and optionally restricts
	// validation to specific named fields.
	Validate(context.Context, any, ...string) error
}

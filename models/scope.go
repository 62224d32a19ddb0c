// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Scope is the context a setting is resolved in: either a named context
// (tenant, locale, environment...) or the global scope.
//
// Scopes are flat. A named scope only ever falls back to the global one.
type Scope struct {
	name string
}

// GlobalScope is the "no context" sentinel.
var GlobalScope = Scope{}

// InScope returns the scope named name. An empty name is the global scope.
func InScope(name string) Scope {
	return Scope{name: name}
}

// IsGlobal reports whether s is the global scope.
func (s Scope) IsGlobal() bool {
	return s.name == ""
}

// Name returns the context name, or "" for the global scope.
func (s Scope) Name() string {
	return s.name
}

// Context returns the nullable column value for s: nil for the global scope.
func (s Scope) Context() *string {
	if s.IsGlobal() {
		return nil
	}
	name := s.name
	return &name
}

// String implements fmt.Stringer.
func (s Scope) String() string {
	if s.IsGlobal() {
		return "<global>"
	}
	return s.name
}

// Package utils provides general-purpose helper utilities used across
// different parts of the application: context keys, trace ID generation,
// JSON request and response helpers, and HTTP client initialization.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String implements fmt.Stringer.
func (c contextKey) String() string {
	return string(c)
}

// TraceIDCtxKey is the key the HTTP layer stores the request trace ID under.
var TraceIDCtxKey = contextKey("traceID")

// SubjectCtxKey is the key the HTTP layer stores the authenticated token
// subject under.
var SubjectCtxKey = contextKey("subject")

// WithTraceID returns a copy of ctx carrying traceID.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDCtxKey, traceID)
}

// GetTraceIDFromContext retrieves the trace ID stored by [WithTraceID].
// ok is false when the value is missing, empty or of an unexpected type.
func GetTraceIDFromContext(ctx context.Context) (string, bool) {
	traceID, ok := ctx.Value(TraceIDCtxKey).(string)
	return traceID, ok && traceID != ""
}

// WithSubject returns a copy of ctx carrying the authenticated subject.
func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, SubjectCtxKey, subject)
}

// GetSubjectFromContext retrieves the subject stored by [WithSubject].
func GetSubjectFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(SubjectCtxKey).(string)
	return subject, ok && subject != ""
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog for the settings server, the resolution
// engine and the command-line client.
//
// *Logger embeds zerolog.Logger, so the whole zerolog API is available on
// it. Request-scoped loggers travel in the context: attach one with
// WithContext and read it back with FromContext or FromRequest.
package logger

import (
	"context"
	"net/http"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger embeds zerolog.Logger so helpers can be added next to the upstream
// API.
type Logger struct {
	zerolog.Logger
}

// NewLogger returns the JSON logger of long-running processes, writing to
// os.Stdout. Every entry carries role, a timestamp and the calling function
// under "func". The global level is reset to debug; narrow it with
// [SetLevel].
func NewLogger(role string) *Logger {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	zerolog.CallerMarshalFunc = func(pc uintptr, _ string, _ int) string {
		return runtime.FuncForPC(pc).Name()
	}
	zerolog.CallerFieldName = "func"

	l := zerolog.New(os.Stdout).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{l}
}

// NewClientLogger returns a plain-text logger on os.Stderr so diagnostics
// never mix with command output on os.Stdout. Only warnings and errors pass
// until [SetLevel] lowers the level.
func NewClientLogger(role string) *Logger {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	l := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}).With().
		Str("role", role).
		Timestamp().
		Logger()

	return &Logger{l}
}

// SetLevel changes the global level by zerolog name ("debug", "info",
// "warn"...). An empty name leaves the level alone.
func SetLevel(level string) error {
	if level == "" {
		return nil
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}

	zerolog.SetGlobalLevel(lvl)
	return nil
}

// Nop returns a logger that writes nothing. Meant for tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a copy of l that can take extra fields without
// changing l.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// FromRequest returns the logger attached to the request context.
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext returns the logger attached to ctx, or zerolog's default
// context logger when there is none. It never returns nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}

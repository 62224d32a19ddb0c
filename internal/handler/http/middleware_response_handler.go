// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "net/http"

// responseWriter is a thin decorator around [http.ResponseWriter] that
// records the status code and body size of a response for the access log
// written by withLogging.
//
// WriteHeader is forwarded to the underlying writer exactly once. Later
// calls are ignored, matching the contract of [http.ResponseWriter].
type responseWriter struct {
	http.ResponseWriter

	// status is the code recorded on the first WriteHeader call. It stays
	// zero until WriteHeader or Write is called.
	status int

	// wroteHeader reports whether WriteHeader has already been forwarded.
	wroteHeader bool

	// size is the running total of body bytes written across all Write calls.
	size int
}

// WriteHeader records statusCode and forwards it to the underlying
// [http.ResponseWriter]. Only the first call has any effect.
func (w *responseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.status = statusCode
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(statusCode)
}

// Write writes b to the underlying writer and adds the number of bytes
// written to size.
//
// When no status was written yet, Write first calls WriteHeader with
// [http.StatusOK], as the standard library writer does.
func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

// Unwrap returns the wrapped writer so that [http.ResponseController] can
// reach optional interfaces such as [http.Flusher].
func (w *responseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

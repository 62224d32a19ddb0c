package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-settings/internal/logger"
)

// withLogging writes one access log entry per request after the handler
// returns. The entry goes through the request logger, so it carries the
// trace ID set by withTraceID.
//
// Logged fields: uri, method, route (the matched chi pattern), status,
// duration and size. Responses with a 5xx status are logged at warn level.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		start := time.Now()
		uri := r.RequestURI
		method := r.Method

		lw := &responseWriter{ResponseWriter: w}

		next.ServeHTTP(lw, r)

		event := log.Info()
		if lw.status >= http.StatusInternalServerError {
			event = log.Warn()
		}

		route := ""
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			route = rctx.RoutePattern()
		}

		event.
			Str("uri", uri).
			Str("method", method).
			Str("route", route).
			Int("status", lw.status).
			Dur("duration", time.Since(start)).
			Int("size", lw.size).
			Send()
	})
}

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the chi router of the settings API:
//
//	GET    /api/version
//	GET    /api/handlers
//	GET    /api/settings/{key}?context=...
//	PUT    /api/settings/{key}?context=...   (bearer token when auth is on)
//	DELETE /api/settings/{key}?context=...   (bearer token when auth is on)
//	DELETE /api/settings                     (bearer token when auth is on)
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	router.Route("/api", func(r chi.Router) {
		r.Get("/version", h.getServerVersion)
		r.Get("/handlers", h.listHandlers)

		r.Route("/settings", func(r chi.Router) {
			r.Get("/{key}", h.getSetting)

			// routes changing stored settings
			r.Group(func(r chi.Router) {
				r.Use(h.auth)

				r.Delete("/", h.flushSettings)
				r.Put("/{key}", h.setSetting)
				r.Delete("/{key}", h.forgetSetting)
			})
		})
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod)

	return router
}

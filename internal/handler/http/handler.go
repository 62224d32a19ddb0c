package http

import (
	"time"

	"github.com/MKhiriev/go-settings/internal/logger"
	"github.com/MKhiriev/go-settings/internal/service"
	"github.com/MKhiriev/go-settings/internal/utils"
)

// Handler serves the settings REST API. Its methods are the route handlers
// and middlewares wired together by [Handler.Init].
type Handler struct {
	services       *service.Services
	requestTimeout time.Duration
	traceIDs       *utils.UUIDGenerator

	logger *logger.Logger
}

// NewHandler creates the HTTP handler. A zero requestTimeout disables the
// per-request deadline.
func NewHandler(services *service.Services, requestTimeout time.Duration, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		requestTimeout: requestTimeout,
		traceIDs:       utils.NewUUIDGenerator(),
		logger:         logger,
	}
}

package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/MKhiriev/go-settings/internal/config"
	"github.com/MKhiriev/go-settings/internal/logger"
)

const readHeaderTimeout = 5 * time.Second

type httpServer struct {
	server *http.Server
	logger *logger.Logger
}

func newHTTPServer(handler http.Handler, cfg config.Server, logger *logger.Logger) *httpServer {
	return &httpServer{
		server: &http.Server{
			Addr:              cfg.HTTPAddress,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
			ErrorLog:          newErrorLog(logger),
		},
		logger: logger,
	}
}

// Serve blocks until the server is shut down. A graceful shutdown is not an
// error.
func (h *httpServer) Serve(ln net.Listener) error {
	if err := h.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		h.logger.Err(err).Str("func", "*httpServer.Serve").Msg("HTTP server stopped serving")
		return err
	}
	return nil
}

func (h *httpServer) Shutdown(ctx context.Context) error {
	h.logger.Info().Msg("HTTP server Shutdown")
	if err := h.server.Shutdown(ctx); err != nil {
		h.logger.Err(err).Str("func", "*httpServer.Shutdown").Msg("error shutting down HTTP server")
		return err
	}
	return nil
}

package server

import (
	"context"
	"fmt"
	"log"
	"net"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/go-settings/internal/config"
	"github.com/MKhiriev/go-settings/internal/handler"
	"github.com/MKhiriev/go-settings/internal/logger"
)

// shutdownTimeout bounds how long in-flight requests may drain.
const shutdownTimeout = 10 * time.Second

type server struct {
	httpServer *httpServer
	logger     *logger.Logger
}

func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil || cfg.HTTPAddress == "" {
		return nil, errNoServersAreCreated
	}

	return &server{
		httpServer: newHTTPServer(handlers.HTTP.Init(), cfg, logger),
		logger:     logger,
	}, nil
}

func (s *server) RunServer(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	addr := s.httpServer.server.Addr
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		s.logger.Err(err).Str("func", "*server.RunServer").Str("address", addr).Msg("error opening listener")
		return fmt.Errorf("error listening on %s: %w", addr, err)
	}

	return s.serve(ctx, ln)
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// serve runs the HTTP server on ln until ctx is done.
func (s *server) serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)

	s.logger.Info().Str("address", ln.Addr().String()).Msg("Launching HTTP server")
	go func() {
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil {
		return err
	}

	s.logger.Info().Msg("server Shutdown gracefully")
	return nil
}

// newErrorLog routes net/http's internal error log through l.
func newErrorLog(l *logger.Logger) *log.Logger {
	return log.New(l.With().Str("component", "net/http").Logger(), "", 0)
}

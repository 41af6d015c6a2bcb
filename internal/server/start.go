package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
)

// Start runs the HTTP server until it fails or a termination signal arrives,
// then shuts everything down within the configured timeout.
func (s *Server) Start() error {
	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", "addr", s.Cfg.HTTPAddr)
		serveErr <- s.E.Start(s.Cfg.HTTPAddr)
	}()

	// Wait for interrupt signal to gracefully shut down the server with a timeout.
	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	select {
	case err = <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		} else {
			err = fmt.Errorf("serve: %w", err)
		}
	case <-sigCtx.Done():
		s.logger.Info("Shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.Cfg.ShutdownTimeout)
	defer cancel()
	return errors.Join(err, s.Shutdown(ctx))
}

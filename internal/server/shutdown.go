package server

import (
	"context"
	"errors"
	"fmt"
)

// Shutdown stops the HTTP server, then the modules in reverse boot order,
// then the services held by the injector.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error

	if err := s.E.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http server: %w", err))
	}

	for i := len(s.modules) - 1; i >= 0; i-- {
		m := s.modules[i]
		if err := m.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("module %s: %w", m.Name(), err))
		}
	}
	if s.cancel != nil {
		s.cancel()
	}

	if report := s.injector.ShutdownWithContext(ctx); report != nil && !report.Succeed {
		errs = append(errs, report)
	}

	return errors.Join(errs...)
}

package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/nfrund/pollchat/internal/app"
	"github.com/nfrund/pollchat/internal/config"
	"github.com/nfrund/pollchat/internal/middleware"
	"github.com/nfrund/pollchat/internal/module"
	"github.com/samber/do/v2"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	E        *echo.Echo
	Cfg      *config.Config
	logger   *slog.Logger
	injector *do.RootScope
	modules  []module.Module
	cancel   context.CancelFunc
}

// New builds the echo instance, registers and boots every module and mounts
// the core routes.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Logger(logger))
	e.Use(echomw.RequestLoggerWithConfig(requestLoggerConfig(logger)))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowMethods: []string{echo.GET, echo.POST, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderContentType},
	}))
	e.Use(echomw.BodyLimit("16K"))

	setupErrorHandling(e)

	s := &Server{
		E:        e,
		Cfg:      cfg,
		logger:   logger,
		injector: app.NewInjector(cfg, logger, clockwork.NewRealClock()),
		modules:  app.NewModules(cfg),
	}

	if err := s.bootModules(); err != nil {
		s.injector.Shutdown()
		return nil, err
	}
	s.RegisterRoutes()

	return s, nil
}

// bootModules runs the Register phase of every module, then the Boot phase.
func (s *Server) bootModules() error {
	for _, m := range s.modules {
		if err := m.Register(s.injector); err != nil {
			return fmt.Errorf("register module %s: %w", m.Name(), err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	root := s.E.Group("")
	for _, m := range s.modules {
		s.logger.Info("Booting module", "module", m.Name())
		if err := m.Boot(ctx, root, s.injector); err != nil {
			cancel()
			return fmt.Errorf("boot module %s: %w", m.Name(), err)
		}
	}
	return nil
}

// Injector exposes the service container, useful for testing.
func (s *Server) Injector() do.Injector {
	return s.injector
}

func requestLoggerConfig(logger *slog.Logger) echomw.RequestLoggerConfig {
	return echomw.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"remote_ip", v.RemoteIP,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				logger.Warn("Request failed", append(attrs, "error", v.Error)...)
				return nil
			}
			logger.Debug("Request", attrs...)
			return nil
		},
	}
}

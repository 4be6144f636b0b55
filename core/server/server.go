package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
	"time"

	"dashmd/core/loader"
	"dashmd/core/logger"
	"dashmd/core/middleware/origin"
	"dashmd/core/middleware/rayid"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/browser"
	"go.uber.org/zap"
)

// ErrPortInUse is returned by Run when the configured port is already bound.
var ErrPortInUse = errors.New("port already in use")

// PortInUseError names the port that could not be bound. It matches
// ErrPortInUse with errors.Is.
type PortInUseError struct {
	Port int
}

func (e *PortInUseError) Error() string {
	return fmt.Sprintf("%s: %d", ErrPortInUse, e.Port)
}

func (e *PortInUseError) Is(target error) bool {
	return target == ErrPortInUse
}

const shutdownTimeout = 5 * time.Second

// Server hosts the registered features on a single port.
type Server struct {
	cfg    Config
	app    *fiber.App
	logger *zap.Logger

	openBrowser func(url string) error
}

// Option customizes a Server.
type Option func(*Server)

// WithBrowserOpener replaces the function used to open the dashboard page.
func WithBrowserOpener(open func(url string) error) Option {
	return func(s *Server) { s.openBrowser = open }
}

// New builds the fiber application, installs the middleware and loads every
// feature of mgr at the application root.
func New(cfg Config, logg *zap.Logger, mgr *loader.Manager, opts ...Option) (*Server, error) {
	s := &Server{
		cfg:         cfg,
		logger:      logg,
		openBrowser: browser.OpenURL,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "DashMD",
		DisableStartupMessage: true, // We will log our own startup message
	})

	// RayID must be first to trace everything
	s.app.Use(rayid.New())

	s.app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(s.logger, c)
		l.Debug("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})

	s.app.Use(origin.New(origin.Config{Allowed: []string{cfg.AllowedOrigin()}}))

	if err := mgr.LoadAll(s.app); err != nil {
		return nil, err
	}

	return s, nil
}

// App exposes the underlying fiber application.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run binds the port, serves until ctx is done and then shuts down.
// A port already in use yields ErrPortInUse without starting anything.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Address())
	if err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return &PortInUseError{Port: s.cfg.Port}
		}
		return fmt.Errorf("failed to bind port %d: %w", s.cfg.Port, err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.app.Listener(ln)
	}()

	url := s.cfg.URL("/")
	s.logger.Info("Opening DashMD on " + url)
	if s.cfg.OpenBrowser {
		go func() {
			if err := s.openBrowser(url); err != nil {
				s.logger.Warn("Could not open browser", zap.String("url", url), zap.Error(err))
			}
		}()
	}

	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down server...")
		if err := s.app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			return fmt.Errorf("failed to shut down: %w", err)
		}
		<-errCh
		return nil
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	}
}

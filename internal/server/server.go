// Package server exposes the content generator tools over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/abhisek/edugen/internal/generation"
	"github.com/abhisek/edugen/internal/metrics"
	"github.com/abhisek/edugen/internal/tools"
)

const (
	maxBodyBytes        = 1 << 20 // 1 MiB
	shutdownGracePeriod = 10 * time.Second
	readTimeout         = 30 * time.Second
	idleTimeout         = 120 * time.Second

	// Generation has no deadline of its own unless llm.timeout is set, so
	// the write timeout only guards against stuck clients.
	writeTimeout = 5 * time.Minute

	cacheControl = "no-store, no-cache, must-revalidate"
)

// CredentialCheck reports whether the provider credentials every /api
// route depends on are present.
type CredentialCheck func() error

type Server struct {
	gen         *generation.Generator
	registry    *tools.Registry
	credentials CredentialCheck
	log         *zap.Logger
	app         *echo.Echo
	address     string
}

// New constructs an HTTP server wired with routing and middleware.
func New(addr string, gen *generation.Generator, registry *tools.Registry, credentials CredentialCheck, log *zap.Logger) (*Server, error) {
	if gen == nil {
		return nil, errors.New("generator must not be nil")
	}
	if registry == nil {
		return nil, errors.New("tool registry must not be nil")
	}
	if credentials == nil {
		credentials = func() error { return nil }
	}
	if log == nil {
		log = zap.NewNop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		gen:         gen,
		registry:    registry,
		credentials: credentials,
		log:         log.Named("server"),
		app:         e,
		address:     addr,
	}
	e.HTTPErrorHandler = s.errorHandler

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogLatency:   true,
		LogMethod:    true,
		LogURI:       true,
		LogRoutePath: true,
		LogStatus:    true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			metrics.ObserveRequest(v.Method, v.RoutePath, v.Status)
			s.log.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Int64("latency_ms", v.Latency.Milliseconds()),
			)
			return nil
		},
	}))

	s.registerRoutes()
	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.app }

// Run starts the HTTP server and blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.log.Info("starting server",
		zap.String("addr", s.address),
		zap.String("model", s.gen.Model()),
		zap.String("mode", string(s.gen.Config().Mode)),
		zap.Int("tools", len(s.registry.All())),
	)

	httpServer := &http.Server{
		Addr:         s.address,
		Handler:      s.app,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.app.StartServer(httpServer); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGracePeriod)
		defer cancel()
		if err := s.app.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.log.Info("server shutdown complete")
		return nil
	case err := <-errCh:
		return err
	}
}

func (s *Server) registerRoutes() {
	s.app.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := s.app.Group("/api", s.requireCredentials)
	api.GET("/health", s.handleHealth)
	api.GET("/tools", s.handleCatalog)
	for _, t := range s.registry.All() {
		api.POST("/tools/"+t.Name(), s.handleTool(t))
	}
}

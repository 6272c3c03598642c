// Package server exposes the symptom analysis engine over HTTP. Requests
// are validated against an embedded OpenAPI document before they reach the
// engine, and free-text inputs are sanitized to plain text.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/routers"

	"github.com/denizgun/symtriage/internal/analyze"
	"github.com/denizgun/symtriage/internal/config"
	"github.com/denizgun/symtriage/internal/logger"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// Server hosts the analysis HTTP API.
type Server struct {
	config     config.ServerConfig
	engine     *analyze.Engine
	logger     *logger.Logger
	router     routers.Router
	httpServer *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the component logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a server for the given engine.
func New(cfg config.ServerConfig, engine *analyze.Engine, opts ...Option) (*Server, error) {
	if engine == nil {
		return nil, errors.New("analysis engine is required")
	}

	router, err := newRequestValidator(context.Background())
	if err != nil {
		return nil, err
	}

	s := &Server{
		config: cfg,
		engine: engine,
		logger: logger.NewWithCallback("server", nil),
		router: router,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.httpServer = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           s.Handler(),
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
	}
	return s, nil
}

// Handler returns the route table. Exposed separately so tests can drive
// the API through httptest without binding a socket.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/analyze", s.handleAnalyze)
	return mux
}

// ListenAndServe runs the HTTP server until the context ends, then shuts
// down gracefully within the configured timeout.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	serveErr := make(chan error, 1)
	s.logger.Info("listening on %s", s.config.Addr())
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

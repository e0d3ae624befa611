// Package server exposes scene generation over HTTP.
//
// Routes:
//
//	GET /healthz            liveness probe, plain "ok"
//	GET /version            build information as JSON
//	GET /presets            built-in and stored presets as JSON
//	GET /presets/{name}     one preset, 404 when unknown
//	GET /scene.{format}     a rendered scene (svg, png, pdf, json, heightmap)
//
// Scene requests take the configuration from query parameters layered over
// the defaults and an optional preset, for example
//
//	/scene.png?preset=Chocolate+Frosted+Donut&width=1200&density=35&seed=7
//
// Responses carry X-Scene-ID, X-Seed, and X-Sprinkles headers. Passing the
// returned X-Seed back reproduces the same scene.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/frosting/pkg/core/scene"
	"github.com/matzehuels/frosting/pkg/pipeline"
	"github.com/matzehuels/frosting/pkg/presets"
)

const (
	defaultTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Server serves scenes rendered by a pipeline runner.
type Server struct {
	runner  *pipeline.Runner
	store   presets.Store
	base    scene.Config
	logger  *log.Logger
	timeout time.Duration
	router  chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithPresetStore serves stored presets alongside the built-in ones.
func WithPresetStore(store presets.Store) Option {
	return func(s *Server) { s.store = store }
}

// WithBaseConfig sets the configuration that query parameters override.
// It defaults to [scene.Default].
func WithBaseConfig(cfg scene.Config) Option {
	return func(s *Server) { s.base = cfg }
}

// WithLogger sets the request logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithTimeout bounds the time spent on one request.
func WithTimeout(d time.Duration) Option {
	return func(s *Server) { s.timeout = d }
}

// New builds a server around runner.
func New(runner *pipeline.Runner, opts ...Option) *Server {
	s := &Server{
		runner:  runner,
		base:    scene.Default(),
		logger:  log.Default(),
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Route("/presets", func(r chi.Router) {
		r.Get("/", s.handleListPresets)
		r.Get("/{name}", s.handleGetPreset)
	})
	r.Get("/scene.{format}", s.handleScene)
	return r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

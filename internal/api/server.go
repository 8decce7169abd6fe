// Package api provides the HTTP API server and handlers for the catalog.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/slackdb/slackdb-server/internal/http/response"
	"github.com/slackdb/slackdb-server/internal/metrics"
	"github.com/slackdb/slackdb-server/internal/ratelimit"
	"github.com/slackdb/slackdb-server/internal/store"
)

// Options configures the HTTP surface.
type Options struct {
	Title          string
	Version        string
	AllowedOrigins []string                    // CORS; empty allows none
	RateLimiter    *ratelimit.KeyedRateLimiter // nil disables write rate limiting
	Metrics        *metrics.Metrics            // nil disables /metrics
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store    store.Store
	services *Services
	router   *chi.Mux
	api      huma.API
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st store.Store, services *Services, opts Options, logger *slog.Logger) *Server {
	if opts.Title == "" {
		opts.Title = "SlackDB API"
	}
	if opts.Version == "" {
		opts.Version = "1.0.0"
	}

	s := &Server{
		store:    st,
		services: services,
		router:   chi.NewRouter(),
		metrics:  opts.Metrics,
		logger:   logger,
	}

	s.setupMiddleware(opts)

	humaConfig := huma.DefaultConfig(opts.Title, opts.Version)
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)
	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API exposes the huma API, used by tests and OpenAPI export.
func (s *Server) API() huma.API {
	return s.api
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware(opts Options) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.logger, s.metrics))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	if opts.RateLimiter != nil {
		s.router.Use(RateLimitMiddleware(opts.RateLimiter, s.logger))
	}

	s.router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w, "route not found", s.logger)
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.MethodNotAllowed(w, s.logger)
	})
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.registerHealthRoutes()
	s.registerBrandRoutes()
	registerGearRoutes(s, s.services.Webbing, "webbings", webbingView)
	registerGearRoutes(s, s.services.Weblock, "weblocks", weblockView)
	registerGearRoutes(s, s.services.Roller, "rollers", rollerView)
	s.registerSearchRoutes()

	if s.metrics != nil {
		s.router.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}
}

// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/okian/echochamber/internal/domain/history"
	"github.com/okian/echochamber/internal/domain/model"
	"github.com/okian/echochamber/internal/domain/sequence"
	"github.com/okian/echochamber/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Analyze classifies one value and records it in the history on success.
	Analyze(ctx context.Context, v any) (sequence.Analysis, error)
	// AnalyzeBatch classifies each value independently, in input order.
	AnalyzeBatch(ctx context.Context, values []any) ([]model.Result, error)

	Statistics(ctx context.Context) history.Statistics
	ClearHistory(ctx context.Context)
	Uptime() time.Duration
}

// Server wires HTTP routes for the business API.
type Server struct {
	router *chi.Mux

	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	analyzeHandler    *AnalyzeHandler
	statisticsHandler *StatisticsHandler
	docsHandler       *DocsHandler

	corsOrigins []string
	logger      logger.Logger
}

// NewServer creates a new API server with all handlers and routes.
// statsProvider may be nil, in which case /api/stats is not served.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{
		router:      chi.NewRouter(),
		corsOrigins: []string{"*"},
	}
	cfg := options{maxBatchSize: defaultMaxBatchSize}
	for _, opt := range opts {
		opt(s, &cfg)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("api")
	}

	s.healthHandler = NewHealthHandler(deps)
	s.analyzeHandler = NewAnalyzeHandler(deps, cfg.maxBatchSize, s.logger)
	s.statisticsHandler = NewStatisticsHandler(deps, s.logger)
	s.docsHandler = NewDocsHandler()
	if statsProvider != nil {
		s.statsHandler = NewStatsHandler(statsProvider)
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Router returns the underlying router so other adapters (docs, site) can
// register their routes next to the API.
func (s *Server) Router() chi.Router {
	return s.router
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(RequestLogger(s.logger))
	s.router.Use(Recoverer(s.logger))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))
	s.router.Use(MetricsMiddleware)
}

func (s *Server) setupRoutes() {
	s.router.NotFound(s.handleNotFound)
	s.router.MethodNotAllowed(s.handleNotFound)

	s.router.Handle("/metrics", s.healthHandler.MetricsHandler())

	s.router.Route("/api", func(r chi.Router) {
		r.NotFound(s.handleNotFound)
		r.MethodNotAllowed(s.handleNotFound)

		r.Post("/analyze", s.analyzeHandler.HandleAnalyze)
		r.Post("/analyze-batch", s.analyzeHandler.HandleAnalyzeBatch)
		r.Get("/statistics", s.statisticsHandler.HandleStatistics)
		r.Post("/clear-history", s.statisticsHandler.HandleClearHistory)
		r.Get("/health", s.healthHandler.HandleHealth)
		r.Get("/documentation", s.docsHandler.HandleDocumentation)
		r.Get("/logs/statistics", HandleLogStatistics)
		if s.statsHandler != nil {
			r.Get("/stats", s.statsHandler.HandleStats)
		}
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.logger.Warn(r.Context(), "endpoint not found",
		logger.String("method", r.Method),
		logger.String("path", r.URL.Path),
	)
	writeError(w, r, http.StatusNotFound, "Endpoint not found")
}

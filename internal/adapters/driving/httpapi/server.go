// Package httpapi exposes the review dashboard as a JSON HTTP API.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/custodia-labs/reviewdesk/internal/core/ports/driving"
	"github.com/custodia-labs/reviewdesk/internal/logger"
)

// ErrMissingService is returned when a required driving port is not provided.
var ErrMissingService = errors.New("httpapi: applicant and review services are required")

// RequestMetrics counts served requests.
type RequestMetrics interface {
	IncrementRequest(route, code string)
}

// Config holds the dependencies of the API.
type Config struct {
	Applicants driving.ApplicantService
	Review     driving.ReviewService

	// Metrics, when set, is mounted at /metrics.
	Metrics http.Handler

	// Requests, when set, counts every request by route and status code.
	Requests RequestMetrics
}

// Server serves the API.
type Server struct {
	applicants driving.ApplicantService
	review     driving.ReviewService
	metrics    http.Handler
	requests   RequestMetrics
	validate   *validator.Validate
	router     chi.Router
}

// New builds the API router.
func New(cfg Config) (*Server, error) {
	if cfg.Applicants == nil || cfg.Review == nil {
		return nil, ErrMissingService
	}
	s := &Server{
		applicants: cfg.Applicants,
		review:     cfg.Review,
		metrics:    cfg.Metrics,
		requests:   cfg.Requests,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/summary", s.handleSummary)
		r.Get("/applicants", s.handleList)
		r.Get("/applicants/{id}", s.handleGet)
		r.Post("/applicants/{id}/decision", s.handleDecision)
	})
	return r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	logger.Info("HTTP API listening on %s", addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

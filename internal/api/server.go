// Package api exposes the application-intake HTTP endpoint.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hartline-properties/leasegate/internal/config"
	"github.com/hartline-properties/leasegate/internal/model"
)

// ApplicationStore persists accepted applications.
type ApplicationStore interface {
	Create(ctx context.Context, rec *model.ApplicationRecord) error
}

// DocumentStore uploads one data-URI document, returning its storage path or
// nil when the document was absent or could not be stored.
type DocumentStore interface {
	Upload(ctx context.Context, applicationID, docType, dataURI string) *string
}

// RateLimiter bounds request volume per client key.
type RateLimiter interface {
	Allow(key string) bool
}

// Server hosts the intake endpoint and its supporting routes.
type Server struct {
	cfg     *config.Config
	repo    ApplicationStore
	docs    DocumentStore
	limiter RateLimiter
	log     *zap.Logger
	server  *http.Server
	once    sync.Once
}

// New constructs a Server.
func New(cfg *config.Config, repo ApplicationStore, docs DocumentStore, limiter RateLimiter, log *zap.Logger) *Server {
	return &Server{
		cfg:     cfg,
		repo:    repo,
		docs:    docs,
		limiter: limiter,
		log:     log,
	}
}

// Handler returns the fully wired HTTP handler, exported so tests can drive
// it through httptest without binding a port.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/applications", s.handleApplications)
	return s.corsMiddleware(s.loggingMiddleware(s.recoverMiddleware(mux)))
}

// Run starts the HTTP server and blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.once.Do(func() {
		s.server = &http.Server{
			Addr:    s.cfg.Address,
			Handler: s.Handler(),
		}
	})
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()
	s.log.Info("api listening", zap.String("address", s.cfg.Address))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// corsMiddleware attaches the permissive headers the website front-end
// expects on every response, including errors and panics.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				s.log.Error("handler panic", zap.Any("panic", v))
				respondError(w, http.StatusInternalServerError, CodeInternalError, "An unexpected error occurred", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

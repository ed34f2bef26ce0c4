package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/annoview/internal/config"
	"github.com/dgallion1/annoview/internal/library"
	"github.com/dgallion1/annoview/internal/metrics"
	"github.com/dgallion1/annoview/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for annoview.
type Server struct {
	router  chi.Router
	docs    *store.DocumentStore
	library *library.Library
	metrics *metrics.Recorder
	log     *slog.Logger
	cfg     config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(docs *store.DocumentStore, lib *library.Library, rec *metrics.Recorder, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		docs:    docs,
		library: lib,
		metrics: rec,
		log:     log,
		cfg:     cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", s.metrics.Handler())

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Get("/api/legend", s.handleLegend)
		r.Get("/api/stats/parse", s.handleParseStats)

		r.Get("/api/files", s.handleListFiles)
		r.Get("/api/files/*", s.handleGetFile)

		r.Post("/api/documents", s.handleUpload)
		r.Post("/api/documents/batch", s.handleBatchUpload)
		r.Get("/api/documents", s.handleListDocuments)
		r.Get("/api/documents/{docID}", s.handleGetDocument)
		r.Delete("/api/documents/{docID}", s.handleDeleteDocument)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dgallion1/homepage/internal/config"
	"github.com/dgallion1/homepage/internal/pipeline"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Builder is the part of pipeline.Builder the preview server drives.
type Builder interface {
	Run(ctx context.Context) (*pipeline.Result, error)
	Status() *pipeline.Status
}

// Server serves the generated site and a small build-control API.
type Server struct {
	router  chi.Router
	builder Builder
	log     *slog.Logger
	cfg     config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(builder Builder, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		builder: builder,
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

	r.Get("/health", s.handleHealth)
	r.Get("/api/status", s.handleStatus)

	r.Group(func(r chi.Router) {
		if s.cfg.PreviewToken != "" {
			r.Use(AuthMiddleware(s.cfg.PreviewToken, s.log))
		}
		r.Post("/api/rebuild", s.handleRebuild)
	})

	// Everything else is the site root as written by the build.
	r.Handle("/*", http.FileServer(http.Dir(s.cfg.Root)))

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

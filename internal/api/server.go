// Package api implements the HTTP API for running the structviz pipeline as
// a service: workspace CRUD against a pluggable store, plus stateless analyze,
// layout, and export endpoints.
package api

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/structviz/structviz/pkg/pipeline"
	"github.com/structviz/structviz/pkg/store"
)

// Server holds the chi router, the workspace store, and the pipeline runner.
type Server struct {
	router chi.Router
	store  store.Store
	runner *pipeline.Runner
	logger *log.Logger
}

// NewServer creates a Server with all routes configured.
func NewServer(st store.Store, runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		store:  st,
		runner: runner,
		logger: logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/templates", s.handleListTemplates)
		r.Post("/templates/{id}", s.handleInstantiateTemplate)

		r.Route("/workspaces", func(r chi.Router) {
			r.Get("/", s.handleListWorkspaces)
			r.Post("/", s.handleSaveWorkspace)
			r.Get("/{name}", s.handleGetWorkspace)
			r.Delete("/{name}", s.handleDeleteWorkspace)
		})

		r.Post("/analyze", s.handleAnalyze)
		r.Post("/layout", s.handleLayout)
		r.Post("/export", s.handleExport)
	})

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

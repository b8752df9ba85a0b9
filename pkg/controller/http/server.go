package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/j4ckxyz/memory-node-mcp/pkg/usecase"
)

// Server exposes the memory store as a JSON API
type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
}

func New(uc *usecase.UseCases) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}

	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/memories", func(r chi.Router) {
			r.Post("/", s.handleRemember)
			r.Get("/", s.handleListRecent)
			r.Get("/all", s.handleListAll)
			r.Get("/search", s.handleSearch)
			r.Put("/{id}", s.handleUpdate)
			r.Delete("/{id}", s.handleDelete)
		})
		r.Post("/maintenance", s.handleMaintenance)
		r.Get("/summary", s.handleGlobalSummary)
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Post("/create_task", s.handleCreateTask)
	r.Get("/read_task/{id}", s.handleReadTask)
	r.Put("/update_task/{id}", s.handleUpdateTask)

	r.Get("/healthz", s.handleHealthz)

	return r
}

package server

import (
  "net/http"

  "github.com/go-chi/chi/v5"
  "github.com/go-chi/chi/v5/middleware"
  "github.com/go-chi/cors"
  "github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) routes() http.Handler {
  r := chi.NewRouter()
  r.Use(middleware.Recoverer)
  r.Use(s.requestLogger())
  if len(s.cfg.CORS.AllowedOrigins) > 0 {
    r.Use(cors.Handler(cors.Options{
      AllowedOrigins: s.cfg.CORS.AllowedOrigins,
      AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
      AllowedHeaders: []string{"Accept", "Content-Type"},
      MaxAge:         300,
    }))
  }

  r.Post("/launch", s.handleLaunch)
  r.Get("/health", s.handleHealth)
  r.Handle("/metrics", promhttp.Handler())

  return r
}

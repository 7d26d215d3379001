package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", s.healthHandler)

	r.Route("/auth", func(r chi.Router) {
		r.Use(s.rateLimit(s.authLimiter))
		r.Post("/register", s.registerHandler)
		r.Post("/login", s.loginHandler)
	})

	r.Route("/items", func(r chi.Router) {
		r.Post("/", s.createItemHandler)
		r.Get("/{id}", s.getItemByIDHandler)
	})

	r.Route("/cards", func(r chi.Router) {
		r.Use(s.requireAuth)
		r.With(s.rateLimit(s.cardLimiter)).Post("/", s.createCardHandler)
		r.Get("/", s.getAllCardsHandler)
		r.Get("/{id}", s.getCardByIDHandler)
		r.Patch("/{id}/move", s.moveCardHandler)
		r.Delete("/{id}", s.deleteCardHandler)
	})

	return r
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	healthStats := s.db.Health()
	if status, ok := healthStats["status"]; ok && status == "down" {
		respondWithJSON(w, http.StatusServiceUnavailable, healthStats)
		return
	}
	respondWithJSON(w, http.StatusOK, healthStats)
}

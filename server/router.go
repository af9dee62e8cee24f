// Package server exposes the message collection as a JSON REST surface.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"chatboard/services"
)

// NewRouter assembles the HTTP surface. The service is meant to be
// called directly from browsers on other origins, hence the wide-open
// CORS policy. Every route, health included, sits behind the static
// deployment token.
func NewRouter(service services.IMessageService, token string, log *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		ExposedHeaders: []string{"Content-Length"},
		MaxAge:         600,
	}))
	r.Use(BearerAuth(token))

	h := NewMessageHandler(service, log)
	r.Get("/health", h.Health)
	r.Get("/messages", h.ListMessages)
	r.Post("/messages", h.CreateMessage)
	return r
}

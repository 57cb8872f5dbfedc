// Package router assembles the HTTP routing tree.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nordlys-ai/assistant-platform/internal/chat"
	"github.com/nordlys-ai/assistant-platform/internal/http/handlers"
	httpmiddleware "github.com/nordlys-ai/assistant-platform/internal/http/middleware"
	"github.com/nordlys-ai/assistant-platform/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger          *logging.Logger
	ChatHandler     *chat.Handler
	SanitizeHandler *handlers.SanitizeHandler
	MetricsHandler  http.Handler
}

// New creates a Chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/api", func(api chi.Router) {
		if cfg.ChatHandler != nil {
			api.Post("/chat/message", cfg.ChatHandler.Message)
		}
		if cfg.SanitizeHandler != nil {
			api.Post("/sanitize", cfg.SanitizeHandler.Sanitize)
		}
	})

	return r
}

package router

import (
	"guardian-vault-api/internal/handler"
	"guardian-vault-api/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Config holds the configuration for creating a router.
type Config struct {
	Handler            *handler.Handler
	StoresHandler      *handler.StoresHandler
	AnnotationsHandler *handler.AnnotationsHandler
}

// New creates and configures the HTTP router.
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware stack (applies to ALL routes)
	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if cfg.Handler != nil {
		r.Get("/api/status", cfg.Handler.Status)
	}

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.Handler != nil {
			r.Get("/health", cfg.Handler.Health)
			r.Get("/ready", cfg.Handler.Ready)
			r.Get("/notifications", cfg.Handler.Notifications)
		}

		if cfg.StoresHandler != nil {
			r.Route("/stores", func(r chi.Router) {
				r.Get("/", cfg.StoresHandler.GetStores)
				r.Post("/reload", cfg.StoresHandler.Reload)
				r.Get("/stream-state", cfg.StoresHandler.StreamState)
			})
			r.Route("/accounts", func(r chi.Router) {
				r.Get("/", cfg.StoresHandler.ListAccounts)
				r.Post("/select", cfg.StoresHandler.SelectAccount)
				r.Get("/link/{user_key}", cfg.StoresHandler.LinkedAccount)
			})
		}

		if cfg.AnnotationsHandler != nil {
			r.Route("/annotations", func(r chi.Router) {
				r.Get("/{membership_id}", cfg.AnnotationsHandler.List)
				r.Put("/{membership_id}/{item_id}", cfg.AnnotationsHandler.Set)
			})
			r.Post("/new-items/clear", cfg.AnnotationsHandler.ClearNewItems)
		}
	})

	return r
}

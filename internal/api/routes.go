package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/itzbandhan/sallukobirthday/config"
	"github.com/itzbandhan/sallukobirthday/internal/store"
	"github.com/itzbandhan/sallukobirthday/web"
)

func SetupRouter(s store.Store, cfg *config.Config, logger *zap.Logger) *chi.Mux {
	h := NewHandler(s, cfg, logger)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         86400,
	}))

	// Health
	r.Get("/health", h.Health)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/invitation", h.GetInvitation)

		r.Route("/admin", func(r chi.Router) {
			r.Use(h.AdminOnly)

			r.Get("/settings", h.GetSettings)
			r.Put("/settings", h.UpdateSettings)

			r.Route("/recipients", func(r chi.Router) {
				r.Get("/", h.ListRecipients)
				r.Post("/", h.CreateRecipient)
				r.Put("/{id}", h.UpdateRecipient)
				r.Delete("/{id}", h.DeleteRecipient)
			})
		})
	})

	// Frontend
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(web.StaticFS())))
	r.Get("/ogimg.png", h.PreviewImage)
	r.Get("/", h.InvitationPage)
	r.Get("/{slug}", h.InvitationPage)

	return r
}

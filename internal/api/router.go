package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jvmedeiros/gym-checkin-api/internal/api/handlers"
	"github.com/jvmedeiros/gym-checkin-api/internal/api/middleware"
	"github.com/jvmedeiros/gym-checkin-api/internal/config"
	"github.com/jvmedeiros/gym-checkin-api/internal/domain"
	"github.com/jvmedeiros/gym-checkin-api/internal/feed"
	"github.com/jvmedeiros/gym-checkin-api/internal/service"
)

func NewRouter(services *service.Services, hub *feed.Hub, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	gymHandler := handlers.NewGymHandler(services.Gym)
	checkInHandler := handlers.NewCheckInHandler(services.CheckIn, hub)
	feedHandler := handlers.NewFeedHandler(hub, services.Auth)

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Post("/users", authHandler.Register)
		r.Post("/sessions", authHandler.Login)
		r.Patch("/token/refresh", authHandler.Refresh)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))

			r.Get("/me", authHandler.Me)
			r.Post("/logout", authHandler.Logout)

			r.Route("/gyms", func(r chi.Router) {
				r.Get("/search", gymHandler.Search)
				r.Get("/nearby", gymHandler.Nearby)
				r.Post("/{gymId}/check-ins", checkInHandler.Create)

				r.With(middleware.RequireRole(domain.RoleAdmin)).Post("/", gymHandler.Create)
			})

			r.Route("/check-ins", func(r chi.Router) {
				r.Get("/history", checkInHandler.History)
				r.Get("/metrics", checkInHandler.Metrics)

				r.With(middleware.RequireRole(domain.RoleAdmin)).
					Patch("/{checkInId}/validate", checkInHandler.Validate)
			})
		})

		// WebSocket check-in feed (admin token via query parameter)
		r.Get("/feed", feedHandler.Handle)
	})

	return r
}

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/pkazakov/accounts-service/internal/api/handlers"
	"github.com/pkazakov/accounts-service/internal/api/middleware"
	"github.com/pkazakov/accounts-service/internal/domain"
	"github.com/pkazakov/accounts-service/internal/service"
)

func NewRouter(services *service.Services, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	authHandler := handlers.NewAuthHandler(services.Auth, services.Tokens)
	userHandler := handlers.NewUserHandler(services.Users)
	adminHandler := handlers.NewAdminHandler(services.Users)

	// Session lifecycle
	r.Post("/login", authHandler.Login)
	r.Post("/refresh", authHandler.Refresh)
	r.Get("/logout", authHandler.Logout)

	// Self-service and general listing
	r.Route("/users", func(r chi.Router) {
		r.Use(middleware.Auth(services.Auth, domain.RoleBasic, domain.RoleSuperuser))
		r.Get("/current", userHandler.Current)
		r.Patch("/current", userHandler.UpdateCurrent)
		r.Get("/", userHandler.List)
	})

	// Privileged namespace
	r.Route("/private", func(r chi.Router) {
		r.Use(middleware.Auth(services.Auth, domain.RoleSuperuser))
		r.Route("/users", func(r chi.Router) {
			r.Get("/", adminHandler.List)
			r.Post("/", adminHandler.Create)
			r.Get("/{id}", adminHandler.Get)
			r.Patch("/{id}", adminHandler.Update)
			r.Delete("/{id}", adminHandler.Delete)
		})
	})

	return r
}

package routes

import (
	"github.com/go-chi/chi/v5"

	"Scribe/internal/api/handlers/user"
	"Scribe/internal/api/middleware"
	"Scribe/internal/core/users"
)

// RegisterUserRoutes registers registration, login and account lookups
func RegisterUserRoutes(r chi.Router, service users.UserService, authMiddleware *middleware.AuthMiddleware) {
	authHandler := user.NewAuthHandler(service)
	usersHandler := user.NewUsersHandler(service)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register/", authHandler.HandleRegister)
		r.Post("/login/", authHandler.HandleLogin)

		r.With(authMiddleware.RequireAuth).Get("/users/me/", usersHandler.HandleMe)
		r.With(authMiddleware.RequireAuth, middleware.RequireAdmin).Get("/users/", usersHandler.HandleList)
		r.With(authMiddleware.RequireAuth, middleware.RequireAdmin).Get("/users/{id}/", usersHandler.HandleGet)
	})
}

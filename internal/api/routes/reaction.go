package routes

import (
	"github.com/go-chi/chi/v5"

	"Scribe/internal/api/handlers/reaction"
	"Scribe/internal/api/middleware"
	"Scribe/internal/core/access"
	"Scribe/internal/core/engagement"
)

// RegisterReactionRoutes registers like and unlike. Both require authentication.
func RegisterReactionRoutes(r chi.Router, service engagement.Service, policy access.Policy, authMiddleware *middleware.AuthMiddleware) {
	h := reaction.NewHandler(service, policy)

	r.With(authMiddleware.RequireAuth).Post("/api/posts/{id}/like/", h.HandleLike)
	r.With(authMiddleware.RequireAuth).Post("/api/posts/{id}/unlike/", h.HandleUnlike)
}

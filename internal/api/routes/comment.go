package routes

import (
	"github.com/go-chi/chi/v5"

	"Scribe/internal/api/handlers/comments"
	"Scribe/internal/api/middleware"
	"Scribe/internal/core/access"
	commentsCore "Scribe/internal/core/comments"
)

// RegisterCommentRoutes registers the comment endpoints of a post.
// Listing shows approved comments only; submitting requires authentication.
func RegisterCommentRoutes(r chi.Router, service commentsCore.Service, policy access.Policy, authMiddleware *middleware.AuthMiddleware) {
	h := comments.NewHandler(service, policy)

	r.Get("/api/posts/{id}/comments/", h.HandleList)
	r.With(authMiddleware.RequireAuth).Post("/api/posts/{id}/comments/", h.HandleCreate)
}

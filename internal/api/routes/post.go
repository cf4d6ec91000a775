package routes

import (
	"github.com/go-chi/chi/v5"

	"Scribe/internal/api/handlers/post"
	"Scribe/internal/api/middleware"
	"Scribe/internal/core/access"
	"Scribe/internal/core/posts"
)

// RegisterPostRoutes registers the public post endpoints.
// Reads are anonymous; writes require a signed-in caller.
func RegisterPostRoutes(r chi.Router, service posts.Service, policy access.Policy, authMiddleware *middleware.AuthMiddleware) {
	h := post.NewHandler(service, policy)

	r.Get("/api/posts/", h.HandleList)
	r.With(authMiddleware.RequireAuth).Post("/api/posts/", h.HandleCreate)

	r.Get("/api/posts/{id}/", h.HandleGet)
	r.With(authMiddleware.RequireAuth).Put("/api/posts/{id}/", h.HandleUpdate)
	r.With(authMiddleware.RequireAuth).Patch("/api/posts/{id}/", h.HandleUpdate)
	r.With(authMiddleware.RequireAuth).Delete("/api/posts/{id}/", h.HandleDelete)
}

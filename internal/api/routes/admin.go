package routes

import (
	"github.com/go-chi/chi/v5"

	"Scribe/internal/api/handlers/comments"
	"Scribe/internal/api/handlers/post"
	"Scribe/internal/api/middleware"
	"Scribe/internal/core/access"
	commentsCore "Scribe/internal/core/comments"
	"Scribe/internal/core/posts"
)

// RegisterAdminRoutes registers the staff-only listing and moderation endpoints
func RegisterAdminRoutes(r chi.Router, postService posts.Service, commentService commentsCore.Service, policy access.Policy, authMiddleware *middleware.AuthMiddleware) {
	postHandler := post.NewHandler(postService, policy)
	moderation := comments.NewModerationHandler(commentService, policy)

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(authMiddleware.RequireAuth, middleware.RequireAdmin)

		r.Get("/posts/", postHandler.HandleList)
		r.Get("/comments/", moderation.HandleListAll)
		r.Post("/comments/{id}/approve/", moderation.HandleApprove)
		r.Post("/comments/{id}/block/", moderation.HandleBlock)
	})
}

package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"Scribe/internal/api/middleware"
	"Scribe/internal/core/access"
	"Scribe/internal/core/comments"
	"Scribe/internal/core/engagement"
	"Scribe/internal/core/posts"
	"Scribe/internal/core/users"
	"Scribe/internal/metrics"
)

// Services bundles everything the HTTP layer dispatches to
type Services struct {
	Users      users.UserService
	Posts      posts.Service
	Comments   comments.Service
	Engagement engagement.Service
	Auth       *middleware.AuthMiddleware
	Policy     access.Policy
}

// Options controls the optional parts of the router
type Options struct {
	AllowedOrigins []string
	MediaRoot      string
	MediaURL       string
	EnableMetrics  bool
}

// NewRouter builds the full HTTP handler
func NewRouter(s Services, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(corsMiddleware(opts.AllowedOrigins))

	RegisterUserRoutes(r, s.Users, s.Auth)
	RegisterPostRoutes(r, s.Posts, s.Policy, s.Auth)
	RegisterCommentRoutes(r, s.Comments, s.Policy, s.Auth)
	RegisterReactionRoutes(r, s.Engagement, s.Policy, s.Auth)
	RegisterAdminRoutes(r, s.Posts, s.Comments, s.Policy, s.Auth)

	if opts.MediaRoot != "" && opts.MediaURL != "" {
		prefix := "/" + trimSlashes(opts.MediaURL)
		r.Handle(prefix+"/*", http.StripPrefix(prefix+"/", http.FileServer(http.Dir(opts.MediaRoot))))
	}

	if opts.EnableMetrics {
		r.Handle("/metrics", metrics.Handler())
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return r
}

// corsMiddleware allows browser clients from the configured origins
func corsMiddleware(allowedOrigins []string) func(next http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
		},
		AllowCredentials: true,
		MaxAge:           300,
	})
}

func trimSlashes(s string) string {
	for len(s) > 0 && s[0] == '/' {
		s = s[1:]
	}
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}

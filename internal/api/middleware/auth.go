package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"Scribe/internal/auth"
	"Scribe/internal/core/access"
	"Scribe/internal/core/users"
)

// Context keys for storing caller information
type contextKey string

const (
	PrincipalKey contextKey = "principal"
	UserKey      contextKey = "user"
)

// TokenVerifier validates access tokens
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// UserLoader resolves the account behind a token
type UserLoader interface {
	GetUser(ctx context.Context, id int64) (*users.User, error)
}

// AuthMiddleware authenticates requests carrying a Bearer access token.
// The account is reloaded on every request so deactivation and staff changes apply immediately.
type AuthMiddleware struct {
	tokens TokenVerifier
	users  UserLoader
	logger *slog.Logger
}

// NewAuthMiddleware creates the bearer token middleware
func NewAuthMiddleware(tokens TokenVerifier, loader UserLoader, logger *slog.Logger) *AuthMiddleware {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthMiddleware{
		tokens: tokens,
		users:  loader,
		logger: logger,
	}
}

// RequireAuth rejects requests without a valid token with 401
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			writeAuthError(w, "Authentication credentials were not provided.")
			return
		}

		user, err := m.authenticate(r.Context(), token)
		if err != nil {
			m.logger.Info("authentication failed",
				"ip", r.RemoteAddr,
				"method", r.Method,
				"path", r.URL.Path,
				"error", err)
			writeAuthError(w, "Invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
	})
}

// OptionalAuth attaches the caller if a valid token is present, and continues
// anonymously otherwise
func (m *AuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		user, err := m.authenticate(r.Context(), token)
		if err != nil {
			m.logger.Debug("optional auth failed", "error", err)
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
	})
}

// RequireAdmin must run after RequireAuth. Non-staff callers get 403.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := GetPrincipal(r)
		if !access.IsAuthenticated(p) {
			writeAuthError(w, "Authentication credentials were not provided.")
			return
		}
		if !access.IsAdmin(p) {
			writeJSONError(w, http.StatusForbidden, "PermissionDenied",
				"You do not have permission to perform this action.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *AuthMiddleware) authenticate(ctx context.Context, token string) (*users.User, error) {
	claims, err := m.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, err
	}
	user, err := m.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, users.ErrInvalidCredentials
	}
	return user, nil
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	return token, token != ""
}

func withUser(ctx context.Context, user *users.User) context.Context {
	ctx = context.WithValue(ctx, UserKey, user)
	return context.WithValue(ctx, PrincipalKey, &access.Principal{
		UserID:  user.ID,
		IsAdmin: user.IsStaff,
	})
}

// GetPrincipal returns the caller, or nil for anonymous requests
func GetPrincipal(r *http.Request) *access.Principal {
	p, _ := r.Context().Value(PrincipalKey).(*access.Principal)
	return p
}

// GetUser returns the authenticated account, or nil for anonymous requests
func GetUser(r *http.Request) *users.User {
	u, _ := r.Context().Value(UserKey).(*users.User)
	return u
}

// SetTestUser sets the caller in the context for testing purposes.
// This function should ONLY be used in tests to mock authenticated users.
func SetTestUser(ctx context.Context, user *users.User) context.Context {
	return withUser(ctx, user)
}

// writeAuthError writes a JSON error response for authentication failures
func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
	writeJSONError(w, http.StatusUnauthorized, "AuthenticationRequired", message)
}

func writeJSONError(w http.ResponseWriter, status int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"error":   errorType,
		"message": message,
	}); err != nil {
		slog.Error("failed to write auth error response", "error", err)
	}
}

package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Scribe/internal/api/middleware"
	"Scribe/internal/auth"
	"Scribe/internal/core/access"
	"Scribe/internal/core/users"
)

type stubLoader map[int64]*users.User

func (s stubLoader) GetUser(ctx context.Context, id int64) (*users.User, error) {
	if u, ok := s[id]; ok {
		return u, nil
	}
	return nil, users.ErrUserNotFound
}

func newTestRouter(t *testing.T, opts Options) (http.Handler, *auth.TokenManager) {
	t.Helper()
	tokens, err := auth.NewTokenManager("router-secret", "scribe", time.Hour)
	require.NoError(t, err)

	loader := stubLoader{1: {ID: 1, Username: "reader", IsActive: true}}
	return NewRouter(Services{
		Auth:   middleware.NewAuthMiddleware(tokens, loader, nil),
		Policy: access.DefaultPolicy(),
	}, opts), tokens
}

func TestRouter_Health(t *testing.T) {
	router, _ := newTestRouter(t, Options{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestRouter_AuthenticationGates(t *testing.T) {
	router, tokens := newTestRouter(t, Options{})
	token, _, err := tokens.Issue(1, false)
	require.NoError(t, err)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"create post anonymously", http.MethodPost, "/api/posts/", "", http.StatusUnauthorized},
		{"comment anonymously", http.MethodPost, "/api/posts/1/comments/", "", http.StatusUnauthorized},
		{"like anonymously", http.MethodPost, "/api/posts/1/like/", "", http.StatusUnauthorized},
		{"unlike anonymously", http.MethodPost, "/api/posts/1/unlike/", "", http.StatusUnauthorized},
		{"me anonymously", http.MethodGet, "/api/auth/users/me/", "", http.StatusUnauthorized},
		{"admin posts anonymously", http.MethodGet, "/api/admin/posts/", "", http.StatusUnauthorized},
		{"admin comments as user", http.MethodGet, "/api/admin/comments/", token, http.StatusForbidden},
		{"approve as user", http.MethodPost, "/api/admin/comments/1/approve/", token, http.StatusForbidden},
		{"block as user", http.MethodPost, "/api/admin/comments/1/block/", token, http.StatusForbidden},
		{"list users as user", http.MethodGet, "/api/auth/users/", token, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	router, _ := newTestRouter(t, Options{AllowedOrigins: []string{"http://localhost:3000"}})

	req := httptest.NewRequest(http.MethodOptions, "/api/posts/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_Metrics(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		router, _ := newTestRouter(t, Options{})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("enabled", func(t *testing.T) {
		router, _ := newTestRouter(t, Options{EnableMetrics: true})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRouter_ServesMedia(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "posts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "posts", "a.png"), []byte("png"), 0o644))

	router, _ := newTestRouter(t, Options{MediaRoot: root, MediaURL: "/media/"})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/media/posts/a.png", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "png", w.Body.String())
}

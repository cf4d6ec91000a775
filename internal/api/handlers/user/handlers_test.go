package user

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"Scribe/internal/api/middleware"
	"Scribe/internal/core/users"
)

// MockUserService is a mock implementation of users.UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, req users.RegisterRequest) (*users.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, req users.LoginRequest) (*users.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.LoginResponse), args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, id int64) (*users.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context) ([]*users.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*users.User), args.Error(1)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHandleRegister(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
		wantField  string
		wantMsg    string
	}{
		{
			name:       "created",
			wantStatus: http.StatusCreated,
		},
		{
			name:       "email taken",
			serviceErr: users.ErrEmailTaken,
			wantStatus: http.StatusBadRequest,
			wantField:  "email",
			wantMsg:    "User with this email already exists",
		},
		{
			name:       "username taken",
			serviceErr: users.ErrUsernameTaken,
			wantStatus: http.StatusBadRequest,
			wantField:  "username",
			wantMsg:    "User with this username already exists",
		},
		{
			name:       "passwords differ",
			serviceErr: &users.ValidationError{Field: "confirm_password", Message: "Passwords do not match"},
			wantStatus: http.StatusBadRequest,
			wantField:  "confirm_password",
			wantMsg:    "Passwords do not match",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockUserService)
			req := users.RegisterRequest{Email: "a@example.com", Username: "alice", Password: "password1", ConfirmPassword: "password1"}
			if tt.serviceErr != nil {
				svc.On("Register", mock.Anything, req).Return(nil, tt.serviceErr)
			} else {
				svc.On("Register", mock.Anything, req).Return(&users.User{ID: 1, Email: req.Email, Username: req.Username, IsActive: true}, nil)
			}

			body := `{"email":"a@example.com","username":"alice","password":"password1","confirm_password":"password1"}`
			r := httptest.NewRequest(http.MethodPost, "/api/auth/register/", strings.NewReader(body))
			w := httptest.NewRecorder()
			NewAuthHandler(svc).HandleRegister(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeBody(t, w)
			if tt.wantField != "" {
				assert.Equal(t, tt.wantField, resp["field"])
				assert.Equal(t, tt.wantMsg, resp["message"])
			} else {
				assert.Equal(t, "alice", resp["username"])
				assert.NotContains(t, resp, "password_hash")
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestHandleRegister_BadJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/api/auth/register/", strings.NewReader("{"))
	w := httptest.NewRecorder()
	NewAuthHandler(new(MockUserService)).HandleRegister(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleLogin(t *testing.T) {
	svc := new(MockUserService)
	good := users.LoginRequest{Email: "a@example.com", Password: "password1"}
	bad := users.LoginRequest{Email: "a@example.com", Password: "nope"}
	svc.On("Login", mock.Anything, good).Return(&users.LoginResponse{
		AccessToken: "tok",
		ExpiresAt:   time.Now().Add(time.Hour),
		User:        &users.User{ID: 1},
	}, nil)
	svc.On("Login", mock.Anything, bad).Return(nil, users.ErrInvalidCredentials)
	h := NewAuthHandler(svc)

	w := httptest.NewRecorder()
	h.HandleLogin(w, httptest.NewRequest(http.MethodPost, "/api/auth/login/",
		strings.NewReader(`{"email":"a@example.com","password":"password1"}`)))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tok", decodeBody(t, w)["access"])

	w = httptest.NewRecorder()
	h.HandleLogin(w, httptest.NewRequest(http.MethodPost, "/api/auth/login/",
		strings.NewReader(`{"email":"a@example.com","password":"nope"}`)))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUsersHandler(t *testing.T) {
	svc := new(MockUserService)
	svc.On("ListUsers", mock.Anything).Return([]*users.User{{ID: 1}, {ID: 2}}, nil)
	svc.On("GetUser", mock.Anything, int64(2)).Return(&users.User{ID: 2, Username: "bob"}, nil)
	svc.On("GetUser", mock.Anything, int64(9)).Return(nil, users.ErrUserNotFound)
	h := NewUsersHandler(svc)

	router := chi.NewRouter()
	router.Get("/users/", h.HandleList)
	router.Get("/users/me/", h.HandleMe)
	router.Get("/users/{id}/", h.HandleGet)

	t.Run("list", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		var out []users.User
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		assert.Len(t, out, 2)
	})

	t.Run("get", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/2/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "bob", decodeBody(t, w)["username"])
	})

	t.Run("get missing", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/9/", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("me", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/users/me/", nil)
		r = r.WithContext(middleware.SetTestUser(r.Context(), &users.User{ID: 5, Username: "me"}))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "me", decodeBody(t, w)["username"])
	})

	t.Run("me anonymous", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/me/", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

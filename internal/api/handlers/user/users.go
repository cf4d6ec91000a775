package user

import (
	"net/http"

	"Scribe/internal/api/handlers"
	"Scribe/internal/api/middleware"
	"Scribe/internal/core/users"
)

// UsersHandler serves account lookups
type UsersHandler struct {
	service users.UserService
}

// NewUsersHandler creates a new users handler
func NewUsersHandler(service users.UserService) *UsersHandler {
	return &UsersHandler{service: service}
}

// HandleList handles GET /api/auth/users/ (admin)
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	all, err := h.service.ListUsers(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if all == nil {
		all = []*users.User{}
	}
	handlers.WriteJSON(w, http.StatusOK, all)
}

// HandleGet handles GET /api/auth/users/{id}/ (admin)
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := handlers.IDParam(w, r, "id")
	if !ok {
		return
	}

	user, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, user)
}

// HandleMe handles GET /api/auth/users/me/
func (h *UsersHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthenticationRequired",
			"Authentication credentials were not provided.")
		return
	}
	handlers.WriteJSON(w, http.StatusOK, user)
}

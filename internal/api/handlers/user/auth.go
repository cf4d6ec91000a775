package user

import (
	"net/http"

	"Scribe/internal/api/handlers"
	"Scribe/internal/core/users"
)

// AuthHandler serves registration and login
type AuthHandler struct {
	service users.UserService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service users.UserService) *AuthHandler {
	return &AuthHandler{service: service}
}

// HandleRegister handles POST /api/auth/register/
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req users.RegisterRequest
	if !handlers.DecodeJSON(w, r, &req) {
		return
	}

	user, err := h.service.Register(r.Context(), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, user)
}

// HandleLogin handles POST /api/auth/login/
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req users.LoginRequest
	if !handlers.DecodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, resp)
}

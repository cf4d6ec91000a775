package user

import (
	"errors"
	"net/http"

	"Scribe/internal/api/handlers"
	"Scribe/internal/core/users"
)

// handleServiceError maps account errors to HTTP responses
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var valErr *users.ValidationError
	switch {
	case errors.As(err, &valErr):
		handlers.WriteFieldError(w, valErr.Field, valErr.Message)

	case errors.Is(err, users.ErrEmailTaken):
		handlers.WriteFieldError(w, "email", "User with this email already exists")

	case errors.Is(err, users.ErrUsernameTaken):
		handlers.WriteFieldError(w, "username", "User with this username already exists")

	case errors.Is(err, users.ErrInvalidCredentials):
		handlers.WriteError(w, http.StatusUnauthorized, "InvalidCredentials",
			"No active account found with the given credentials")

	case errors.Is(err, users.ErrUserNotFound):
		handlers.WriteError(w, http.StatusNotFound, "NotFound", "User not found")

	default:
		handlers.WriteInternalError(w, r, err)
	}
}

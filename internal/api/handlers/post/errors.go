package post

import (
	"errors"
	"net/http"

	"Scribe/internal/api/handlers"
	"Scribe/internal/core/posts"
)

// handleServiceError maps post service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var valErr *posts.ValidationError
	switch {
	case errors.As(err, &valErr):
		handlers.WriteFieldError(w, valErr.Field, valErr.Message)

	case errors.Is(err, posts.ErrNotFound):
		handlers.WriteError(w, http.StatusNotFound, "NotFound", "Not found.")

	case errors.Is(err, posts.ErrAuthorNotFound):
		handlers.WriteError(w, http.StatusUnauthorized, "AuthenticationRequired", "Author account no longer exists")

	default:
		handlers.WriteInternalError(w, r, err)
	}
}

func writeForbidden(w http.ResponseWriter) {
	handlers.WriteError(w, http.StatusForbidden, "PermissionDenied",
		"You do not have permission to perform this action.")
}

func writeUnauthenticated(w http.ResponseWriter) {
	handlers.WriteError(w, http.StatusUnauthorized, "AuthenticationRequired",
		"Authentication credentials were not provided.")
}

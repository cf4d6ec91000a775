package comments

import (
	"errors"
	"net/http"

	"Scribe/internal/api/handlers"
	"Scribe/internal/core/comments"
)

// handleServiceError maps comment errors to HTTP responses
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var valErr *comments.ValidationError
	switch {
	case errors.As(err, &valErr):
		handlers.WriteJSON(w, http.StatusBadRequest, validationResponse{
			Error:   "InvalidRequest",
			Message: valErr.Message,
			Field:   valErr.Field,
			Rule:    string(valErr.Rule),
		})

	case errors.Is(err, comments.ErrPostNotFound):
		handlers.WriteError(w, http.StatusNotFound, "NotFound", "Post not found")

	case errors.Is(err, comments.ErrCommentNotFound):
		handlers.WriteError(w, http.StatusNotFound, "NotFound", "Comment not found")

	case comments.IsConflict(err):
		handlers.WriteError(w, http.StatusConflict, "Conflict", "The comment was modified concurrently, try again")

	default:
		handlers.WriteInternalError(w, r, err)
	}
}

// validationResponse adds the violated rule to the standard error body
type validationResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field"`
	Rule    string `json:"rule"`
}

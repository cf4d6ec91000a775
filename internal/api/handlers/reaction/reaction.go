package reaction

import (
	"context"
	"errors"
	"net/http"

	"Scribe/internal/api/handlers"
	"Scribe/internal/api/middleware"
	"Scribe/internal/core/access"
	"Scribe/internal/core/engagement"
)

// Handler serves like and unlike
type Handler struct {
	service engagement.Service
	policy  access.Policy
}

// NewHandler creates a new reaction handler
func NewHandler(service engagement.Service, policy access.Policy) *Handler {
	return &Handler{
		service: service,
		policy:  policy,
	}
}

// HandleLike handles POST /api/posts/{id}/like/
func (h *Handler) HandleLike(w http.ResponseWriter, r *http.Request) {
	h.react(w, r, h.service.Like)
}

// HandleUnlike handles POST /api/posts/{id}/unlike/
func (h *Handler) HandleUnlike(w http.ResponseWriter, r *http.Request) {
	h.react(w, r, h.service.Unlike)
}

func (h *Handler) react(w http.ResponseWriter, r *http.Request,
	action func(ctx context.Context, postID, userID int64) (*engagement.Result, error),
) {
	postID, ok := handlers.IDParam(w, r, "id")
	if !ok {
		return
	}

	principal := middleware.GetPrincipal(r)
	if !h.policy.CanWrite(principal) {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthenticationRequired",
			"Authentication credentials were not provided.")
		return
	}

	result, err := action(r.Context(), postID, principal.UserID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, result)
}

// handleServiceError maps ledger errors to HTTP responses.
// A duplicate reaction keeps the {"status": "already liked"} body clients expect.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var already *engagement.AlreadyInStateError
	switch {
	case errors.As(err, &already):
		handlers.WriteJSON(w, http.StatusBadRequest, map[string]string{"status": already.Error()})

	case engagement.IsNotFound(err):
		handlers.WriteError(w, http.StatusNotFound, "NotFound", "Not found.")

	case engagement.IsConflict(err):
		handlers.WriteError(w, http.StatusConflict, "Conflict", "The post was modified concurrently, try again")

	default:
		handlers.WriteInternalError(w, r, err)
	}
}

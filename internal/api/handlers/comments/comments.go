package comments

import (
	"net/http"

	"Scribe/internal/api/handlers"
	"Scribe/internal/api/middleware"
	"Scribe/internal/core/access"
	"Scribe/internal/core/comments"
)

// Handler serves the comments of a post
type Handler struct {
	service comments.Service
	policy  access.Policy
}

// NewHandler creates a new comments handler
func NewHandler(service comments.Service, policy access.Policy) *Handler {
	return &Handler{
		service: service,
		policy:  policy,
	}
}

type createCommentRequest struct {
	Content *string `json:"content"`
}

// HandleList handles GET /api/posts/{id}/comments/. Only approved comments are listed.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	postID, ok := handlers.IDParam(w, r, "id")
	if !ok {
		return
	}

	visible, err := h.service.ListVisible(r.Context(), postID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if visible == nil {
		visible = []*comments.Comment{}
	}
	handlers.WriteJSON(w, http.StatusOK, visible)
}

// HandleCreate handles POST /api/posts/{id}/comments/.
// New comments are pending whatever the caller's role.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
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

	var req createCommentRequest
	if !handlers.DecodeJSON(w, r, &req) {
		return
	}
	if req.Content == nil {
		handlers.WriteFieldError(w, "content", "This field is required.")
		return
	}

	created, err := h.service.Submit(r.Context(), postID, principal.UserID, *req.Content)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	handlers.WriteJSON(w, http.StatusCreated, created)
}

package post

import (
	"net/http"

	"Scribe/internal/api/handlers"
	"Scribe/internal/api/middleware"
	"Scribe/internal/core/access"
	"Scribe/internal/core/posts"
)

// Handler serves the post endpoints. Permission checks come from the injected policy.
type Handler struct {
	service posts.Service
	policy  access.Policy
}

// NewHandler creates a new post handler
func NewHandler(service posts.Service, policy access.Policy) *Handler {
	return &Handler{
		service: service,
		policy:  policy,
	}
}

// HandleList handles GET /api/posts/ and GET /api/admin/posts/
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.ListPosts(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, views)
}

// HandleCreate handles POST /api/posts/
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r)
	if !h.policy.CanWrite(principal) {
		writeUnauthenticated(w)
		return
	}

	form, err := parsePostForm(w, r)
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}
	defer form.Close()

	req := posts.CreatePostRequest{
		AuthorID: principal.UserID,
		Image:    form.image,
	}
	if form.title == nil {
		handlers.WriteFieldError(w, "title", "This field is required.")
		return
	}
	if form.content == nil {
		handlers.WriteFieldError(w, "content", "This field is required.")
		return
	}
	req.Title = *form.title
	req.Content = *form.content

	view, err := h.service.CreatePost(r.Context(), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	handlers.WriteJSON(w, http.StatusCreated, view)
}

// HandleGet handles GET /api/posts/{id}/. Every successful fetch counts as one read.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := handlers.IDParam(w, r, "id")
	if !ok {
		return
	}

	view, err := h.service.ViewPost(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, view)
}

// HandleUpdate handles PUT and PATCH /api/posts/{id}/
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.authorize(w, r)
	if !ok {
		return
	}

	form, err := parsePostForm(w, r)
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}
	defer form.Close()

	view, err := h.service.UpdatePost(r.Context(), id, posts.UpdatePostRequest{
		Title:       form.title,
		Content:     form.content,
		Image:       form.image,
		RemoveImage: form.removeImage,
		Partial:     r.Method == http.MethodPatch,
	})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, view)
}

// HandleDelete handles DELETE /api/posts/{id}/
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.authorize(w, r)
	if !ok {
		return
	}

	if err := h.service.DeletePost(r.Context(), id); err != nil {
		handleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// authorize resolves the post id and checks the caller may modify the post.
// The author of a post never changes, so the check cannot go stale before the write.
func (h *Handler) authorize(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := handlers.IDParam(w, r, "id")
	if !ok {
		return 0, false
	}

	principal := middleware.GetPrincipal(r)
	if !access.IsAuthenticated(principal) {
		writeUnauthenticated(w)
		return 0, false
	}

	post, err := h.service.GetPost(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return 0, false
	}
	if !h.policy.CanModify(principal, post.AuthorID) {
		writeForbidden(w)
		return 0, false
	}
	return id, true
}

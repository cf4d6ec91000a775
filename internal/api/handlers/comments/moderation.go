package comments

import (
	"context"
	"net/http"
	"strconv"

	"Scribe/internal/api/handlers"
	"Scribe/internal/api/middleware"
	"Scribe/internal/core/access"
	"Scribe/internal/core/comments"
)

// ModerationHandler serves the admin comment endpoints
type ModerationHandler struct {
	service comments.Service
	policy  access.Policy
}

// NewModerationHandler creates a new moderation handler
func NewModerationHandler(service comments.Service, policy access.Policy) *ModerationHandler {
	return &ModerationHandler{
		service: service,
		policy:  policy,
	}
}

// HandleListAll handles GET /api/admin/comments/. An optional ?is_approved= narrows
// the listing to approved or pending comments.
func (h *ModerationHandler) HandleListAll(w http.ResponseWriter, r *http.Request) {
	if !h.allowed(w, r) {
		return
	}

	var filter comments.ListFilter
	if raw := r.URL.Query().Get("is_approved"); raw != "" {
		approved, err := strconv.ParseBool(raw)
		if err != nil {
			handlers.WriteFieldError(w, "is_approved", "Must be true or false.")
			return
		}
		filter.Approved = &approved
	}

	all, err := h.service.ListAll(r.Context(), filter)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if all == nil {
		all = []*comments.Comment{}
	}
	handlers.WriteJSON(w, http.StatusOK, all)
}

// HandleApprove handles POST /api/admin/comments/{id}/approve/
func (h *ModerationHandler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, h.service.Approve)
}

// HandleBlock handles POST /api/admin/comments/{id}/block/
func (h *ModerationHandler) HandleBlock(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, h.service.Block)
}

func (h *ModerationHandler) moderate(w http.ResponseWriter, r *http.Request,
	action func(ctx context.Context, id int64) (*comments.ModerationResult, error),
) {
	if !h.allowed(w, r) {
		return
	}
	id, ok := handlers.IDParam(w, r, "id")
	if !ok {
		return
	}

	result, err := action(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, result)
}

func (h *ModerationHandler) allowed(w http.ResponseWriter, r *http.Request) bool {
	principal := middleware.GetPrincipal(r)
	if !access.IsAuthenticated(principal) {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthenticationRequired",
			"Authentication credentials were not provided.")
		return false
	}
	if !h.policy.CanModerate(principal) {
		handlers.WriteError(w, http.StatusForbidden, "PermissionDenied",
			"You do not have permission to perform this action.")
		return false
	}
	return true
}

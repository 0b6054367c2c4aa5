package handler

import (
	"context"
	"net/http"

	"github.com/frameyourvoice/api/internal/middleware"
	"github.com/frameyourvoice/api/internal/model"
)

// UserService defines the account operations the handler needs
type UserService interface {
	SetBanState(ctx context.Context, userID, adminID string, req *model.BanUserRequest) (*model.User, error)
	GetWarnings(ctx context.Context, userID string) ([]*model.Warning, error)
}

// UserHandler handles the admin ban endpoint and user-facing warning
// retrieval
type UserHandler struct {
	users UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(users UserService) *UserHandler {
	return &UserHandler{users: users}
}

// RegisterRoutes registers authenticated user routes
func (h *UserHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/users/{userId}/warnings", h.GetWarnings)
}

// RegisterAdminRoutes registers admin user routes
func (h *UserHandler) RegisterAdminRoutes(mux *http.ServeMux) {
	mux.HandleFunc("PATCH /v1/admin/users/{userId}/ban", h.SetBanState)
}

// SetBanState bans or unbans a user. The body accepts both the
// account-status enum and the legacy boolean shape.
func (h *UserHandler) SetBanState(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	adminID := middleware.GetUserID(ctx)

	userID := r.PathValue("userId")
	if userID == "" {
		WriteError(w, model.NewBadRequestError("user ID required"))
		return
	}

	var req model.BanUserRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	user, err := h.users.SetBanState(ctx, userID, adminID, &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, user, nil)
}

// GetWarnings retrieves a user's own warnings
func (h *UserHandler) GetWarnings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	callerID := middleware.GetUserID(ctx)

	userID := r.PathValue("userId")
	if userID == "" {
		WriteError(w, model.NewBadRequestError("user ID required"))
		return
	}
	if callerID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}
	if userID != callerID {
		WriteError(w, model.NewForbiddenError("can only view your own warnings"))
		return
	}

	warnings, err := h.users.GetWarnings(ctx, userID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, map[string]interface{}{
		"warnings": warnings,
	}, nil)
}

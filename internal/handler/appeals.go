package handler

import (
	"context"
	"net/http"

	"github.com/frameyourvoice/api/internal/middleware"
	"github.com/frameyourvoice/api/internal/model"
)

// AppealService defines the appeal operations the handler needs
type AppealService interface {
	SubmitAppeal(ctx context.Context, userID string, req *model.CreateAppealRequest) (*model.Appeal, error)
	ListPending(ctx context.Context, limit int) ([]*model.Appeal, error)
	ResolveAppeal(ctx context.Context, appealID, adminID string, req *model.ResolveAppealRequest) (*model.Appeal, error)
}

// AppealHandler handles appeal submission and the admin appeal queue
type AppealHandler struct {
	appeals AppealService
}

// NewAppealHandler creates a new appeal handler
func NewAppealHandler(appeals AppealService) *AppealHandler {
	return &AppealHandler{appeals: appeals}
}

// RegisterRoutes registers authenticated appeal routes
func (h *AppealHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/appeals", h.SubmitAppeal)
}

// RegisterAdminRoutes registers admin appeal routes
func (h *AppealHandler) RegisterAdminRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/admin/appeals/pending", h.GetPendingAppeals)
	mux.HandleFunc("POST /v1/admin/appeals/{appealId}/resolve", h.ResolveAppeal)
}

// SubmitAppeal files an appeal against a temporary removal or ban
func (h *AppealHandler) SubmitAppeal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req model.CreateAppealRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	appeal, err := h.appeals.SubmitAppeal(ctx, userID, &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, appeal, nil)
}

// GetPendingAppeals retrieves the admin appeal queue
func (h *AppealHandler) GetPendingAppeals(w http.ResponseWriter, r *http.Request) {
	appeals, err := h.appeals.ListPending(r.Context(), 50)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, map[string]interface{}{
		"appeals": appeals,
	}, nil)
}

// ResolveAppeal records an admin verdict on an appeal
func (h *AppealHandler) ResolveAppeal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	adminID := middleware.GetUserID(ctx)

	appealID := r.PathValue("appealId")
	if appealID == "" {
		WriteError(w, model.NewBadRequestError("appeal ID required"))
		return
	}

	var req model.ResolveAppealRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	appeal, err := h.appeals.ResolveAppeal(ctx, appealID, adminID, &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, appeal, nil)
}

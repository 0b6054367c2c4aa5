package handler

import (
	"context"
	"net/http"

	"github.com/frameyourvoice/api/internal/middleware"
	"github.com/frameyourvoice/api/internal/model"
)

// ModerationService defines the verdict operations the handler needs
type ModerationService interface {
	ApplyToReport(ctx context.Context, reportID, adminID string, req *model.TakeActionRequest) (*model.Report, error)
	ApplyToSummary(ctx context.Context, summaryID, adminID string, req *model.TakeActionRequest) (*model.ReportSummary, error)
}

// ModerationHandler handles admin verdicts on reports and summaries
type ModerationHandler struct {
	moderation ModerationService
}

// NewModerationHandler creates a new moderation handler
func NewModerationHandler(moderation ModerationService) *ModerationHandler {
	return &ModerationHandler{moderation: moderation}
}

// RegisterAdminRoutes registers moderation routes
func (h *ModerationHandler) RegisterAdminRoutes(mux *http.ServeMux) {
	mux.HandleFunc("PATCH /v1/admin/reports/{reportId}", h.TakeReportAction)
	mux.HandleFunc("PATCH /v1/admin/reports/summaries/{summaryId}", h.TakeSummaryAction)
}

// TakeReportAction applies an admin verdict to a single report
func (h *ModerationHandler) TakeReportAction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	adminID := middleware.GetUserID(ctx)

	reportID := r.PathValue("reportId")
	if reportID == "" {
		WriteError(w, model.NewBadRequestError("report ID required"))
		return
	}

	var req model.TakeActionRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	report, err := h.moderation.ApplyToReport(ctx, reportID, adminID, &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, report, nil)
}

// TakeSummaryAction applies an admin verdict to every open report
// against a summary's target
func (h *ModerationHandler) TakeSummaryAction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	adminID := middleware.GetUserID(ctx)

	summaryID := r.PathValue("summaryId")
	if summaryID == "" {
		WriteError(w, model.NewBadRequestError("summary ID required"))
		return
	}

	var req model.TakeActionRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	summary, err := h.moderation.ApplyToSummary(ctx, summaryID, adminID, &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, summary, nil)
}

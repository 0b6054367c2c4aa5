package handler

import (
	"context"
	"net/http"

	"github.com/frameyourvoice/api/internal/middleware"
	"github.com/frameyourvoice/api/internal/model"
)

// ReportService defines the report operations the handler needs
type ReportService interface {
	CreateReport(ctx context.Context, reporterID string, req *model.CreateReportRequest) (*model.Report, error)
	ListPending(ctx context.Context, limit int) ([]*model.Report, error)
	ListSummaries(ctx context.Context, limit int) ([]*model.ReportSummary, error)
	GetReport(ctx context.Context, id string) (*model.Report, error)
}

// ReportHandler handles report intake and the admin report queues
type ReportHandler struct {
	reports ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reports ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// RegisterPublicRoutes registers the end-user report route. Anonymous
// submissions are allowed; the route sits behind OptionalAuth.
func (h *ReportHandler) RegisterPublicRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/reports", h.CreateReport)
}

// RegisterAdminRoutes registers the admin report queues
func (h *ReportHandler) RegisterAdminRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/admin/reports/pending", h.GetPendingReports)
	mux.HandleFunc("GET /v1/admin/reports/summaries", h.GetReportSummaries)
	mux.HandleFunc("GET /v1/admin/reports/{reportId}", h.GetReport)
}

// CreateReport files a report against a campaign or profile
func (h *ReportHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reporterID := middleware.GetUserID(ctx)

	var req model.CreateReportRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	report, err := h.reports.CreateReport(ctx, reporterID, &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, report, nil)
}

// GetPendingReports retrieves the raw pending report queue
func (h *ReportHandler) GetPendingReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.reports.ListPending(r.Context(), 50)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, map[string]interface{}{
		"reports": reports,
	}, nil)
}

// GetReportSummaries retrieves the aggregated per-target queue
func (h *ReportHandler) GetReportSummaries(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.reports.ListSummaries(r.Context(), 50)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, map[string]interface{}{
		"summaries": summaries,
	}, nil)
}

// GetReport retrieves a single report
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	reportID := r.PathValue("reportId")
	if reportID == "" {
		WriteError(w, model.NewBadRequestError("report ID required"))
		return
	}

	report, err := h.reports.GetReport(r.Context(), reportID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, report, nil)
}

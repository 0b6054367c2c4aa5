package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/frameyourvoice/api/internal/middleware"
	"github.com/frameyourvoice/api/internal/model"
)

// Service mocks with function fields, matching the service-layer test
// style. Routes are exercised through a real ServeMux so method and
// path patterns are covered too.

type mockReportService struct {
	createReportFunc  func(ctx context.Context, reporterID string, req *model.CreateReportRequest) (*model.Report, error)
	listPendingFunc   func(ctx context.Context, limit int) ([]*model.Report, error)
	listSummariesFunc func(ctx context.Context, limit int) ([]*model.ReportSummary, error)
	getReportFunc     func(ctx context.Context, id string) (*model.Report, error)
}

func (m *mockReportService) CreateReport(ctx context.Context, reporterID string, req *model.CreateReportRequest) (*model.Report, error) {
	if m.createReportFunc != nil {
		return m.createReportFunc(ctx, reporterID, req)
	}
	return &model.Report{ID: "report:new"}, nil
}

func (m *mockReportService) ListPending(ctx context.Context, limit int) ([]*model.Report, error) {
	if m.listPendingFunc != nil {
		return m.listPendingFunc(ctx, limit)
	}
	return nil, nil
}

func (m *mockReportService) ListSummaries(ctx context.Context, limit int) ([]*model.ReportSummary, error) {
	if m.listSummariesFunc != nil {
		return m.listSummariesFunc(ctx, limit)
	}
	return nil, nil
}

func (m *mockReportService) GetReport(ctx context.Context, id string) (*model.Report, error) {
	if m.getReportFunc != nil {
		return m.getReportFunc(ctx, id)
	}
	return &model.Report{ID: id}, nil
}

type mockModerationService struct {
	applyToReportFunc  func(ctx context.Context, reportID, adminID string, req *model.TakeActionRequest) (*model.Report, error)
	applyToSummaryFunc func(ctx context.Context, summaryID, adminID string, req *model.TakeActionRequest) (*model.ReportSummary, error)
}

func (m *mockModerationService) ApplyToReport(ctx context.Context, reportID, adminID string, req *model.TakeActionRequest) (*model.Report, error) {
	if m.applyToReportFunc != nil {
		return m.applyToReportFunc(ctx, reportID, adminID, req)
	}
	return &model.Report{ID: reportID}, nil
}

func (m *mockModerationService) ApplyToSummary(ctx context.Context, summaryID, adminID string, req *model.TakeActionRequest) (*model.ReportSummary, error) {
	if m.applyToSummaryFunc != nil {
		return m.applyToSummaryFunc(ctx, summaryID, adminID, req)
	}
	return &model.ReportSummary{ID: summaryID}, nil
}

type mockUserService struct {
	setBanStateFunc func(ctx context.Context, userID, adminID string, req *model.BanUserRequest) (*model.User, error)
	getWarningsFunc func(ctx context.Context, userID string) ([]*model.Warning, error)
}

func (m *mockUserService) SetBanState(ctx context.Context, userID, adminID string, req *model.BanUserRequest) (*model.User, error) {
	if m.setBanStateFunc != nil {
		return m.setBanStateFunc(ctx, userID, adminID, req)
	}
	return &model.User{ID: userID}, nil
}

func (m *mockUserService) GetWarnings(ctx context.Context, userID string) ([]*model.Warning, error) {
	if m.getWarningsFunc != nil {
		return m.getWarningsFunc(ctx, userID)
	}
	return nil, nil
}

type mockAppealService struct {
	submitAppealFunc  func(ctx context.Context, userID string, req *model.CreateAppealRequest) (*model.Appeal, error)
	listPendingFunc   func(ctx context.Context, limit int) ([]*model.Appeal, error)
	resolveAppealFunc func(ctx context.Context, appealID, adminID string, req *model.ResolveAppealRequest) (*model.Appeal, error)
}

func (m *mockAppealService) SubmitAppeal(ctx context.Context, userID string, req *model.CreateAppealRequest) (*model.Appeal, error) {
	if m.submitAppealFunc != nil {
		return m.submitAppealFunc(ctx, userID, req)
	}
	return &model.Appeal{ID: "appeal:new"}, nil
}

func (m *mockAppealService) ListPending(ctx context.Context, limit int) ([]*model.Appeal, error) {
	if m.listPendingFunc != nil {
		return m.listPendingFunc(ctx, limit)
	}
	return nil, nil
}

func (m *mockAppealService) ResolveAppeal(ctx context.Context, appealID, adminID string, req *model.ResolveAppealRequest) (*model.Appeal, error) {
	if m.resolveAppealFunc != nil {
		return m.resolveAppealFunc(ctx, appealID, adminID, req)
	}
	return &model.Appeal{ID: appealID}, nil
}

type mockCampaignService struct {
	createCampaignFunc func(ctx context.Context, creatorID string, req *model.CreateCampaignRequest) (*model.Campaign, error)
	getBySlugFunc      func(ctx context.Context, slug, viewerID string) (*model.Campaign, error)
	trackDownloadFunc  func(ctx context.Context, callerID string, req *model.TrackDownloadRequest) error
}

func (m *mockCampaignService) CreateCampaign(ctx context.Context, creatorID string, req *model.CreateCampaignRequest) (*model.Campaign, error) {
	if m.createCampaignFunc != nil {
		return m.createCampaignFunc(ctx, creatorID, req)
	}
	return &model.Campaign{ID: "campaign:new"}, nil
}

func (m *mockCampaignService) GetBySlug(ctx context.Context, slug, viewerID string) (*model.Campaign, error) {
	if m.getBySlugFunc != nil {
		return m.getBySlugFunc(ctx, slug, viewerID)
	}
	return &model.Campaign{Slug: slug}, nil
}

func (m *mockCampaignService) TrackDownload(ctx context.Context, callerID string, req *model.TrackDownloadRequest) error {
	if m.trackDownloadFunc != nil {
		return m.trackDownloadFunc(ctx, callerID, req)
	}
	return nil
}

// Helpers

func jsonBody(t *testing.T, v interface{}) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(v); err != nil {
		t.Fatalf("encode body: %v", err)
	}
	return buf
}

func authenticated(req *http.Request, userID string) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
	return req.WithContext(ctx)
}

func doRequest(mux *http.ServeMux, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, rec.Body.String())
	}
	if err := json.Unmarshal(envelope.Data, v); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

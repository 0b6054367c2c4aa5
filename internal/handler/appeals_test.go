package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/frameyourvoice/api/internal/model"
	"github.com/frameyourvoice/api/internal/service"
)

func appealMux(svc *mockAppealService) *http.ServeMux {
	mux := http.NewServeMux()
	h := NewAppealHandler(svc)
	h.RegisterRoutes(mux)
	h.RegisterAdminRoutes(mux)
	return mux
}

func TestSubmitAppeal(t *testing.T) {
	t.Parallel()

	var gotUserID string
	svc := &mockAppealService{
		submitAppealFunc: func(_ context.Context, userID string, req *model.CreateAppealRequest) (*model.Appeal, error) {
			gotUserID = userID
			return &model.Appeal{ID: "appeal:new", Status: model.AppealStatusPending}, nil
		},
	}
	mux := appealMux(svc)

	body := jsonBody(t, map[string]interface{}{
		"type": "campaign", "campaign_id": "campaign:abc", "message": "please reconsider",
	})
	req := authenticated(httptest.NewRequest(http.MethodPost, "/v1/appeals", body), "user:creator")
	rec := doRequest(mux, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if gotUserID != "user:creator" {
		t.Errorf("user = %q", gotUserID)
	}
}

func TestSubmitAppealDeadlinePassed(t *testing.T) {
	t.Parallel()

	svc := &mockAppealService{
		submitAppealFunc: func(_ context.Context, _ string, _ *model.CreateAppealRequest) (*model.Appeal, error) {
			return nil, service.ErrAppealDeadlinePassed
		},
	}
	mux := appealMux(svc)

	body := jsonBody(t, map[string]interface{}{"type": "campaign", "campaign_id": "campaign:abc", "message": "late"})
	req := authenticated(httptest.NewRequest(http.MethodPost, "/v1/appeals", body), "user:creator")
	rec := doRequest(mux, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
}

func TestSubmitAppealDuplicateConflict(t *testing.T) {
	t.Parallel()

	svc := &mockAppealService{
		submitAppealFunc: func(_ context.Context, _ string, _ *model.CreateAppealRequest) (*model.Appeal, error) {
			return nil, service.ErrAppealAlreadyPending
		},
	}
	mux := appealMux(svc)

	body := jsonBody(t, map[string]interface{}{"type": "campaign", "campaign_id": "campaign:abc", "message": "again"})
	req := authenticated(httptest.NewRequest(http.MethodPost, "/v1/appeals", body), "user:creator")
	rec := doRequest(mux, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

func TestResolveAppeal(t *testing.T) {
	t.Parallel()

	var gotAppealID, gotAdminID string
	var gotReq *model.ResolveAppealRequest
	svc := &mockAppealService{
		resolveAppealFunc: func(_ context.Context, appealID, adminID string, req *model.ResolveAppealRequest) (*model.Appeal, error) {
			gotAppealID, gotAdminID, gotReq = appealID, adminID, req
			return &model.Appeal{ID: appealID, Status: model.AppealStatusAccepted}, nil
		},
	}
	mux := appealMux(svc)

	body := jsonBody(t, map[string]interface{}{"accept": true})
	req := authenticated(httptest.NewRequest(http.MethodPost, "/v1/admin/appeals/appeal:one/resolve", body), "user:admin")
	rec := doRequest(mux, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if gotAppealID != "appeal:one" || gotAdminID != "user:admin" || !gotReq.Accept {
		t.Errorf("call = (%q, %q, %+v)", gotAppealID, gotAdminID, gotReq)
	}
}

func TestGetPendingAppeals(t *testing.T) {
	t.Parallel()

	svc := &mockAppealService{
		listPendingFunc: func(_ context.Context, limit int) ([]*model.Appeal, error) {
			return []*model.Appeal{{ID: "appeal:one"}}, nil
		},
	}
	mux := appealMux(svc)

	req := authenticated(httptest.NewRequest(http.MethodGet, "/v1/admin/appeals/pending", nil), "user:admin")
	rec := doRequest(mux, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var payload struct {
		Appeals []*model.Appeal `json:"appeals"`
	}
	decodeData(t, rec, &payload)
	if len(payload.Appeals) != 1 {
		t.Errorf("appeals = %d, want 1", len(payload.Appeals))
	}
}

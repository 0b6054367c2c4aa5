package service

import (
	"context"
	"errors"
	"testing"

	"github.com/frameyourvoice/api/internal/model"
)

func reportFixture() (*ReportService, *mockDB, *mockReportStore, *mockSummaryStore, *mockUserStore, *mockCampaignStore) {
	db := &mockDB{}
	reports := &mockReportStore{}
	summaries := &mockSummaryStore{}
	users := &mockUserStore{}
	campaigns := &mockCampaignStore{}
	svc := NewReportService(db, reports, summaries, users, campaigns)
	return svc, db, reports, summaries, users, campaigns
}

func TestCreateReportValidation(t *testing.T) {
	t.Parallel()

	svc, db, _, _, _, _ := reportFixture()

	tests := []struct {
		name    string
		req     model.CreateReportRequest
		wantErr error
	}{
		{
			name:    "missing target",
			req:     model.CreateReportRequest{Type: "campaign", Reason: "spam"},
			wantErr: ErrInvalidTarget,
		},
		{
			name:    "unknown reason",
			req:     model.CreateReportRequest{Type: "campaign", CampaignID: strPtr2("campaign:abc"), Reason: "bogus"},
			wantErr: ErrInvalidReason,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateReport(context.Background(), "user:me", &tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
	if len(db.queries) != 0 {
		t.Error("rejected reports must not touch the database")
	}
}

func TestCreateReportAgainstOwnCampaign(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _, campaigns := reportFixture()
	campaigns.getByID = func(_ context.Context, id string) (*model.Campaign, error) {
		return activeCampaign(id, "user:me"), nil
	}

	_, err := svc.CreateReport(context.Background(), "user:me", &model.CreateReportRequest{
		Type: "campaign", CampaignID: strPtr2("campaign:abc"), Reason: "spam",
	})
	if !errors.Is(err, ErrCannotReportSelf) {
		t.Fatalf("error = %v, want ErrCannotReportSelf", err)
	}
}

func TestCreateReportAgainstOwnProfile(t *testing.T) {
	t.Parallel()

	svc, db, _, _, users, _ := reportFixture()
	users.getByID = func(_ context.Context, id string) (*model.User, error) {
		return activeUser(id), nil
	}

	_, err := svc.CreateReport(context.Background(), "user:me", &model.CreateReportRequest{
		Type: "profile", ReportedUserID: strPtr2("user:me"), Reason: "spam",
	})
	if !errors.Is(err, ErrCannotReportSelf) {
		t.Fatalf("error = %v, want ErrCannotReportSelf", err)
	}
	if len(db.queries) != 0 {
		t.Error("a rejected self-report must not touch the database")
	}
}

func TestCreateReportFirstAgainstTarget(t *testing.T) {
	t.Parallel()

	svc, db, reports, summaries, _, campaigns := reportFixture()
	campaigns.getByID = func(_ context.Context, id string) (*model.Campaign, error) {
		return activeCampaign(id, "user:creator"), nil
	}

	report, err := svc.CreateReport(context.Background(), "", &model.CreateReportRequest{
		Type: "campaign", CampaignID: strPtr2("campaign:abc"), Reason: "spam",
	})
	if err != nil {
		t.Fatalf("CreateReport() error = %v", err)
	}

	if report.ReportedBy != model.ReporterAnonymous {
		t.Errorf("unauthenticated reporter = %q, want anonymous", report.ReportedBy)
	}
	if report.Status != model.ReportStatusPending {
		t.Errorf("status = %s, want pending", report.Status)
	}
	if report.ID == "" {
		t.Error("batch-created report needs a pre-generated ID")
	}

	if len(reports.created) != 1 {
		t.Fatalf("expected one report insert, got %d", len(reports.created))
	}
	if len(summaries.created) != 1 {
		t.Fatalf("first report must create the summary, got %d creates", len(summaries.created))
	}
	s := summaries.created[0]
	if s.PendingReportCount != 1 || s.ReportCount != 1 {
		t.Errorf("fresh summary counters = %d/%d, want 1/1", s.PendingReportCount, s.ReportCount)
	}
	if s.CampaignTitle == nil || *s.CampaignTitle != "Test Campaign" {
		t.Errorf("summary snapshot title = %v", s.CampaignTitle)
	}
	if len(summaries.incremented) != 0 {
		t.Error("first report must not increment")
	}
	if len(campaigns.reportsBumped) != 1 {
		t.Error("target report counter must move in the same transaction")
	}
	if len(db.queries) != 1 {
		t.Errorf("expected a single transaction, got %d queries", len(db.queries))
	}
}

func TestCreateReportRepeatIncrementsSummary(t *testing.T) {
	t.Parallel()

	target := model.ReportTarget{Kind: model.TargetKindProfile, ID: "user:bob"}
	svc, _, _, summaries, users, _ := reportFixture()
	name := "Robert"
	users.getByID = func(_ context.Context, id string) (*model.User, error) {
		return &model.User{ID: id, DisplayName: &name, AccountStatus: model.AccountStatusActive}, nil
	}
	summaries.getByTarget = func(_ context.Context, _ model.ReportTarget) (*model.ReportSummary, error) {
		return &model.ReportSummary{ID: "report_summary:bob", Target: target, PendingReportCount: 2, ReportCount: 4, Status: model.SummaryStatusDismissed}, nil
	}

	_, err := svc.CreateReport(context.Background(), "user:alice", &model.CreateReportRequest{
		Type: "profile", ReportedUserID: strPtr2("user:bob"), Reason: "harassment",
	})
	if err != nil {
		t.Fatalf("CreateReport() error = %v", err)
	}

	if len(summaries.created) != 0 {
		t.Error("repeat report must not create a second summary")
	}
	if len(summaries.incremented) != 1 {
		t.Fatalf("expected one increment, got %d", len(summaries.incremented))
	}
	s := summaries.incremented[0]
	if s.DisplayName == nil || *s.DisplayName != "Robert" {
		t.Errorf("snapshot must refresh from the current target, got %v", s.DisplayName)
	}
	if len(users.reportsBumped) != 1 || users.reportsBumped[0] != "user:bob" {
		t.Errorf("target counter bump = %v", users.reportsBumped)
	}
}

func TestCreateReportUnknownCampaign(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _, _ := reportFixture()
	_, err := svc.CreateReport(context.Background(), "user:alice", &model.CreateReportRequest{
		Type: "campaign", CampaignID: strPtr2("campaign:gone"), Reason: "spam",
	})
	if !errors.Is(err, ErrCampaignNotFound) {
		t.Fatalf("error = %v, want ErrCampaignNotFound", err)
	}
}

func strPtr2(s string) *string { return &s }

package service

import (
	"context"
	"fmt"

	"github.com/frameyourvoice/api/internal/database"
	"github.com/frameyourvoice/api/internal/model"
)

// ReportService handles report intake and the admin queues. Filing a
// report maintains the per-target summary in the same transaction, so
// the aggregate view never trails the report table.
type ReportService struct {
	db        database.Database
	reports   ReportStore
	summaries SummaryStore
	users     UserStore
	campaigns CampaignStore
}

// NewReportService creates a new report service
func NewReportService(db database.Database, reports ReportStore, summaries SummaryStore, users UserStore, campaigns CampaignStore) *ReportService {
	return &ReportService{
		db:        db,
		reports:   reports,
		summaries: summaries,
		users:     users,
		campaigns: campaigns,
	}
}

// CreateReport files a report against a campaign or a profile.
// reporterID is empty for anonymous reports.
func (s *ReportService) CreateReport(ctx context.Context, reporterID string, req *model.CreateReportRequest) (*model.Report, error) {
	target, ok := req.Target()
	if !ok {
		return nil, ErrInvalidTarget
	}
	if !model.IsValidReportReason(req.Reason) {
		return nil, ErrInvalidReason
	}
	if req.Details != nil && len(*req.Details) > model.MaxReportDetailsLength {
		return nil, ErrDetailsTooLong
	}
	// Pre-transaction reads: the target for the display snapshot and
	// the existing summary to decide create vs increment
	var campaign *model.Campaign
	var creator *model.User
	var targetUser *model.User
	var ownerID string
	switch target.Kind {
	case model.TargetKindCampaign:
		c, err := s.campaigns.GetByID(ctx, target.ID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, ErrCampaignNotFound
		}
		campaign = c
		ownerID = c.CreatorID
		// Best-effort creator lookup for the display snapshot
		creator, _ = s.users.GetByID(ctx, c.CreatorID)
	case model.TargetKindProfile:
		u, err := s.users.GetByID(ctx, target.ID)
		if err != nil {
			return nil, err
		}
		if u == nil {
			return nil, ErrUserNotFound
		}
		targetUser = u
		ownerID = u.ID
	}

	if reporterID != "" && reporterID == ownerID {
		return nil, ErrCannotReportSelf
	}

	summary, err := s.summaries.GetByTarget(ctx, target)
	if err != nil {
		return nil, err
	}

	reportedBy := reporterID
	if reportedBy == "" {
		reportedBy = model.ReporterAnonymous
	}

	report := &model.Report{
		ID:         newRecordID("report"),
		Target:     target,
		Reason:     model.ReportReason(req.Reason),
		Details:    req.Details,
		ReportedBy: reportedBy,
		Status:     model.ReportStatusPending,
	}

	batch := database.NewAtomicBatch()
	s.reports.AddCreate(batch, report)

	if summary == nil {
		fresh := &model.ReportSummary{
			ID:                 newRecordID("report_summary"),
			Target:             target,
			PendingReportCount: 1,
			ReportCount:        1,
			Status:             model.SummaryStatusPending,
		}
		applySnapshot(fresh, campaign, creator, targetUser)
		s.summaries.AddCreate(batch, fresh)
	} else {
		applySnapshot(summary, campaign, creator, targetUser)
		s.summaries.AddIncrement(batch, summary)
	}

	switch target.Kind {
	case model.TargetKindCampaign:
		s.campaigns.AddIncrementReports(batch, target.ID)
	case model.TargetKindProfile:
		s.users.AddIncrementReports(batch, target.ID)
	}

	if err := batch.Execute(ctx, s.db); err != nil {
		return nil, fmt.Errorf("failed to file report: %w", err)
	}

	return report, nil
}

// ListPending retrieves the raw pending report queue
func (s *ReportService) ListPending(ctx context.Context, limit int) ([]*model.Report, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.reports.ListPending(ctx, limit)
}

// ListSummaries retrieves the aggregated admin queue
func (s *ReportService) ListSummaries(ctx context.Context, limit int) ([]*model.ReportSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.summaries.ListPending(ctx, limit)
}

// GetReport retrieves a single report
func (s *ReportService) GetReport(ctx context.Context, id string) (*model.Report, error) {
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, ErrReportNotFound
	}
	return report, nil
}

// applySnapshot refreshes the summary's denormalized display fields
// from the current target state
func applySnapshot(summary *model.ReportSummary, campaign *model.Campaign, creator, user *model.User) {
	if campaign != nil {
		title := campaign.Title
		summary.CampaignTitle = &title
		summary.CampaignImage = campaign.ImageURL
		if creator != nil {
			if creator.DisplayName != nil {
				summary.CreatorName = creator.DisplayName
			} else {
				summary.CreatorName = creator.Username
			}
		}
	}
	if user != nil {
		summary.DisplayName = user.DisplayName
		summary.Username = user.Username
		summary.ProfileImage = user.ProfileImage
	}
}

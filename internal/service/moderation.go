package service

import (
	"context"
	"fmt"
	"time"

	"github.com/frameyourvoice/api/internal/database"
	"github.com/frameyourvoice/api/internal/model"
)

// ModerationService executes admin verdicts on reports and report
// summaries. Every verdict runs in three phases: read the full
// pre-transaction snapshot, commit one atomic batch derived from it,
// then fire the owner notification. A failed commit leaves nothing
// partially applied; a failed notification is logged and forgotten.
type ModerationService struct {
	db        database.Database
	reports   ReportStore
	summaries SummaryStore
	users     UserStore
	campaigns CampaignStore
	warnings  WarningStore
	notifier  *Notifier
}

// NewModerationService creates a new moderation service
func NewModerationService(db database.Database, reports ReportStore, summaries SummaryStore, users UserStore, campaigns CampaignStore, warnings WarningStore, notifier *Notifier) *ModerationService {
	return &ModerationService{
		db:        db,
		reports:   reports,
		summaries: summaries,
		users:     users,
		campaigns: campaigns,
		warnings:  warnings,
		notifier:  notifier,
	}
}

// targetSnapshot is the pre-transaction read of the reported entity
type targetSnapshot struct {
	ownerID string
	exists  bool
}

// readTarget loads the reported campaign or user and resolves the
// owner to notify
func (s *ModerationService) readTarget(ctx context.Context, target model.ReportTarget) (*targetSnapshot, error) {
	switch target.Kind {
	case model.TargetKindCampaign:
		campaign, err := s.campaigns.GetByID(ctx, target.ID)
		if err != nil {
			return nil, err
		}
		if campaign == nil {
			return &targetSnapshot{}, nil
		}
		return &targetSnapshot{ownerID: campaign.CreatorID, exists: true}, nil
	case model.TargetKindProfile:
		user, err := s.users.GetByID(ctx, target.ID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return &targetSnapshot{}, nil
		}
		return &targetSnapshot{ownerID: user.ID, exists: true}, nil
	}
	return &targetSnapshot{}, nil
}

// addTargetUpdates routes the decision's target mutations to the right
// repository
func (s *ModerationService) addTargetUpdates(batch *database.AtomicBatch, target model.ReportTarget, updates map[string]interface{}) {
	if len(updates) == 0 {
		return
	}
	switch target.Kind {
	case model.TargetKindCampaign:
		s.campaigns.AddUpdate(batch, target.ID, updates)
	case model.TargetKindProfile:
		s.users.AddUpdate(batch, target.ID, updates)
	}
}

// ApplyToReport executes an admin verdict on a single report
func (s *ModerationService) ApplyToReport(ctx context.Context, reportID, adminID string, req *model.TakeActionRequest) (*model.Report, error) {
	report, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, ErrReportNotFound
	}
	if report.Status.IsTerminal() {
		return nil, ErrReportAlreadyClosed
	}

	snapshot, err := s.readTarget(ctx, report.Target)
	if err != nil {
		return nil, err
	}
	if !snapshot.exists {
		return nil, ErrTargetNotFound
	}

	decision, err := Decide(DecisionInput{
		Status:    model.ReportStatus(req.Status),
		Action:    model.ReportAction(req.Action),
		Reason:    removalReason(report.Reason, req),
		Permanent: req.Permanent,
		Target:    report.Target,
		OwnerID:   snapshot.ownerID,
		AdminID:   adminID,
		Now:       time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	batch := database.NewAtomicBatch()

	if decision.CascadeClose {
		s.reports.AddCloseOpenByTarget(batch, report.Target, decision.Status, decision.Action, adminID)
	} else {
		s.reports.AddUpdate(batch, report.ID, map[string]interface{}{
			"status":      decision.Status,
			"action":      decision.Action,
			"reviewed_by": adminID,
			"reviewed_on": now,
		})
	}

	s.addTargetUpdates(batch, report.Target, decision.TargetUpdates)

	if decision.IssueWarning {
		s.warnings.AddCreate(batch, &model.Warning{
			ID:       newRecordID("warning"),
			UserID:   snapshot.ownerID,
			Target:   report.Target,
			ReportID: report.ID,
			Reason:   report.Reason,
			Details:  req.Details,
			IssuedBy: adminID,
		})
	}

	summary, err := s.summaries.GetByTarget(ctx, report.Target)
	if err != nil {
		return nil, err
	}
	if summary != nil {
		s.summaries.AddClose(batch, summary.ID, summaryStatus(decision.Status))
	}

	if err := batch.Execute(ctx, s.db); err != nil {
		return nil, fmt.Errorf("failed to apply moderation decision: %w", err)
	}

	s.notifier.dispatchAsync(decision.Notice)

	report.Status = decision.Status
	action := decision.Action
	report.Action = &action
	report.ReviewedBy = &adminID
	report.ReviewedOn = &now
	return report, nil
}

// ApplyToSummary executes an admin verdict on every open report behind
// a summary at once
func (s *ModerationService) ApplyToSummary(ctx context.Context, summaryID, adminID string, req *model.TakeActionRequest) (*model.ReportSummary, error) {
	summary, err := s.summaries.GetByID(ctx, summaryID)
	if err != nil {
		return nil, err
	}
	if summary == nil {
		return nil, ErrSummaryNotFound
	}
	if summary.Status != model.SummaryStatusPending {
		return nil, ErrSummaryAlreadyClosed
	}

	snapshot, err := s.readTarget(ctx, summary.Target)
	if err != nil {
		return nil, err
	}
	if !snapshot.exists {
		return nil, ErrTargetNotFound
	}

	openReports, err := s.reports.ListOpenByTarget(ctx, summary.Target)
	if err != nil {
		return nil, err
	}

	reason := model.ReportReasonOther
	var latestReportID string
	if len(openReports) > 0 {
		latest := openReports[len(openReports)-1]
		reason = latest.Reason
		latestReportID = latest.ID
	}

	decision, err := Decide(DecisionInput{
		Status:    model.ReportStatus(req.Status),
		Action:    model.ReportAction(req.Action),
		Reason:    removalReason(reason, req),
		Permanent: req.Permanent,
		Target:    summary.Target,
		OwnerID:   snapshot.ownerID,
		AdminID:   adminID,
		Now:       time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	batch := database.NewAtomicBatch()

	// The whole aggregate closes with one verdict, cascade or not
	s.reports.AddCloseOpenByTarget(batch, summary.Target, decision.Status, decision.Action, adminID)
	s.addTargetUpdates(batch, summary.Target, decision.TargetUpdates)

	if decision.IssueWarning && latestReportID != "" {
		s.warnings.AddCreate(batch, &model.Warning{
			ID:       newRecordID("warning"),
			UserID:   snapshot.ownerID,
			Target:   summary.Target,
			ReportID: latestReportID,
			Reason:   reason,
			Details:  req.Details,
			IssuedBy: adminID,
		})
	}

	s.summaries.AddClose(batch, summary.ID, summaryStatus(decision.Status))

	if err := batch.Execute(ctx, s.db); err != nil {
		return nil, fmt.Errorf("failed to apply moderation decision: %w", err)
	}

	s.notifier.dispatchAsync(decision.Notice)

	summary.PendingReportCount = 0
	summary.Status = summaryStatus(decision.Status)
	return summary, nil
}

// removalReason prefers the admin-entered reason over the report's
// reason code when one was supplied
func removalReason(fallback model.ReportReason, req *model.TakeActionRequest) model.ReportReason {
	if req.Reason != nil && *req.Reason != "" {
		return model.ReportReason(*req.Reason)
	}
	return fallback
}

// summaryStatus maps a report verdict to the summary's terminal status
func summaryStatus(status model.ReportStatus) model.SummaryStatus {
	if status == model.ReportStatusDismissed {
		return model.SummaryStatusDismissed
	}
	return model.SummaryStatusResolved
}

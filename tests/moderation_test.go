package tests

/*
FEATURE: Moderation Verdicts
DOMAIN: Content Moderation

ACCEPTANCE CRITERIA:
===================

AC-MOD-001: Dismiss Cascades
  GIVEN multiple open reports against one target
  WHEN an admin dismisses one with no_action
  THEN every open sibling report is dismissed
  AND the target's report counters reset
  AND the summary closes as dismissed

AC-MOD-002: Resolve With Warning
  GIVEN an open report
  WHEN an admin resolves it with action=warned
  THEN a warning record is issued to the owner
  AND the target itself is untouched

AC-MOD-003: Temporary Removal
  GIVEN an open report against a campaign
  WHEN an admin resolves it with action=removed
  THEN the campaign becomes removed_temporary
  AND an appeal deadline 30 days out is set

AC-MOD-004: Permanent Removal
  GIVEN an open report against a campaign
  WHEN an admin resolves it with action=removed, permanent
  THEN the campaign becomes removed_permanent
  AND no appeal deadline remains

AC-MOD-005: Closed Reports Stay Closed
  GIVEN a resolved report
  WHEN an admin acts on it again
  THEN the verdict is rejected

AC-MOD-006: Summary Verdict Closes Everything
  GIVEN a summary with several open reports
  WHEN an admin acts on the summary
  THEN all open reports close with one verdict

AC-MOD-007: Ban Via Profile Verdict
  GIVEN an open report against a profile
  WHEN an admin resolves it with action=removed
  THEN the account becomes banned_temporary
  AND the legacy banned flag mirrors the enum
*/

import (
	"context"
	"testing"
	"time"

	"github.com/frameyourvoice/api/internal/model"
	"github.com/frameyourvoice/api/internal/service"
	"github.com/frameyourvoice/api/internal/testing/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dismissRequest() *model.TakeActionRequest {
	return &model.TakeActionRequest{Status: "dismissed", Action: "no_action"}
}

func TestModeration_DismissCascades(t *testing.T) {
	// AC-MOD-001: Dismiss Cascades
	e := newEnv(t)
	ctx := context.Background()

	creator := e.f.CreateUser(t)
	admin := e.f.CreateAdmin(t)
	campaign := e.f.CreateCampaign(t, creator)

	var first *model.Report
	for i := 0; i < 3; i++ {
		reporter := e.f.CreateUser(t)
		r, err := e.reports.CreateReport(ctx, reporter.ID, campaignReportRequest(campaign.ID))
		require.NoError(t, err)
		if first == nil {
			first = r
		}
	}

	resolved, err := e.moderation.ApplyToReport(ctx, first.ID, admin.ID, dismissRequest())
	require.NoError(t, err)
	assert.Equal(t, model.ReportStatusDismissed, resolved.Status)

	// Every sibling closed
	open, err := e.reportRepo.ListOpenByTarget(ctx, fixtures.CampaignTarget(campaign))
	require.NoError(t, err)
	assert.Empty(t, open, "dismissal must close every open report on the target")

	// Target counters reset, content restored
	fetched, err := e.campaignRepo.GetByID(ctx, campaign.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, 0, fetched.ReportsCount)
	assert.Equal(t, model.CampaignStatusActive, fetched.Status)

	// Summary closed as dismissed
	summary, err := e.summaryRepo.GetByTarget(ctx, fixtures.CampaignTarget(campaign))
	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Equal(t, model.SummaryStatusDismissed, summary.Status)
	assert.Equal(t, 0, summary.PendingReportCount)
}

func TestModeration_ResolveWithWarning(t *testing.T) {
	// AC-MOD-002: Resolve With Warning
	e := newEnv(t)
	ctx := context.Background()

	creator := e.f.CreateUser(t)
	admin := e.f.CreateAdmin(t)
	reporter := e.f.CreateUser(t)
	campaign := e.f.CreateCampaign(t, creator)

	report, err := e.reports.CreateReport(ctx, reporter.ID, campaignReportRequest(campaign.ID))
	require.NoError(t, err)

	_, err = e.moderation.ApplyToReport(ctx, report.ID, admin.ID, &model.TakeActionRequest{
		Status: "resolved",
		Action: "warned",
	})
	require.NoError(t, err)

	// Warning issued to the campaign's owner
	warnings, err := e.warningRepo.ListByUser(ctx, creator.ID)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, creator.ID, warnings[0].UserID)
	assert.Equal(t, admin.ID, warnings[0].IssuedBy)

	// The campaign itself is untouched
	fetched, err := e.campaignRepo.GetByID(ctx, campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CampaignStatusActive, fetched.Status)
	assert.Nil(t, fetched.AppealDeadline)
}

func TestModeration_TemporaryRemoval(t *testing.T) {
	// AC-MOD-003: Temporary Removal
	e := newEnv(t)
	ctx := context.Background()

	creator := e.f.CreateUser(t)
	admin := e.f.CreateAdmin(t)
	reporter := e.f.CreateUser(t)
	campaign := e.f.CreateCampaign(t, creator)

	report, err := e.reports.CreateReport(ctx, reporter.ID, campaignReportRequest(campaign.ID))
	require.NoError(t, err)

	before := time.Now().UTC()
	_, err = e.moderation.ApplyToReport(ctx, report.ID, admin.ID, &model.TakeActionRequest{
		Status: "resolved",
		Action: "removed",
		Reason: strPtr("spam"),
	})
	require.NoError(t, err)

	fetched, err := e.campaignRepo.GetByID(ctx, campaign.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, model.CampaignStatusRemovedTemporary, fetched.Status)
	require.NotNil(t, fetched.AppealDeadline)

	// Appeal window is 30 days from the verdict
	wantDeadline := before.AddDate(0, 0, model.AppealWindowDays)
	assert.WithinDuration(t, wantDeadline, *fetched.AppealDeadline, time.Minute)
}

func TestModeration_RemovalLeavesSiblingsOpen(t *testing.T) {
	// A removal verdict closes the acted-on report only; the other
	// reports stay open for individual review.
	e := newEnv(t)
	ctx := context.Background()

	creator := e.f.CreateUser(t)
	admin := e.f.CreateAdmin(t)
	campaign := e.f.CreateCampaign(t, creator)

	firstReporter := e.f.CreateUser(t)
	first, err := e.reports.CreateReport(ctx, firstReporter.ID, campaignReportRequest(campaign.ID))
	require.NoError(t, err)
	secondReporter := e.f.CreateUser(t)
	second, err := e.reports.CreateReport(ctx, secondReporter.ID, campaignReportRequest(campaign.ID))
	require.NoError(t, err)

	_, err = e.moderation.ApplyToReport(ctx, first.ID, admin.ID, &model.TakeActionRequest{
		Status: "resolved",
		Action: "removed",
	})
	require.NoError(t, err)

	open, err := e.reportRepo.ListOpenByTarget(ctx, fixtures.CampaignTarget(campaign))
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, second.ID, open[0].ID)

	closed, err := e.reportRepo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ReportStatusResolved, closed.Status)
}

func TestModeration_PermanentRemoval(t *testing.T) {
	// AC-MOD-004: Permanent Removal
	e := newEnv(t)
	ctx := context.Background()

	creator := e.f.CreateUser(t)
	admin := e.f.CreateAdmin(t)
	reporter := e.f.CreateUser(t)
	campaign := e.f.CreateCampaign(t, creator)

	report, err := e.reports.CreateReport(ctx, reporter.ID, campaignReportRequest(campaign.ID))
	require.NoError(t, err)

	_, err = e.moderation.ApplyToReport(ctx, report.ID, admin.ID, &model.TakeActionRequest{
		Status:    "resolved",
		Action:    "removed",
		Permanent: true,
	})
	require.NoError(t, err)

	fetched, err := e.campaignRepo.GetByID(ctx, campaign.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, model.CampaignStatusRemovedPermanent, fetched.Status)
	assert.Nil(t, fetched.AppealDeadline, "permanent removal must not leave an appeal window")
}

func TestModeration_ClosedReportsStayClosed(t *testing.T) {
	// AC-MOD-005: Closed Reports Stay Closed
	e := newEnv(t)
	ctx := context.Background()

	creator := e.f.CreateUser(t)
	admin := e.f.CreateAdmin(t)
	reporter := e.f.CreateUser(t)
	campaign := e.f.CreateCampaign(t, creator)

	report, err := e.reports.CreateReport(ctx, reporter.ID, campaignReportRequest(campaign.ID))
	require.NoError(t, err)

	_, err = e.moderation.ApplyToReport(ctx, report.ID, admin.ID, dismissRequest())
	require.NoError(t, err)

	_, err = e.moderation.ApplyToReport(ctx, report.ID, admin.ID, dismissRequest())
	assert.ErrorIs(t, err, service.ErrReportAlreadyClosed)
}

func TestModeration_SummaryVerdictClosesEverything(t *testing.T) {
	// AC-MOD-006: Summary Verdict Closes Everything
	e := newEnv(t)
	ctx := context.Background()

	creator := e.f.CreateUser(t)
	admin := e.f.CreateAdmin(t)
	campaign := e.f.CreateCampaign(t, creator)

	for i := 0; i < 3; i++ {
		reporter := e.f.CreateUser(t)
		_, err := e.reports.CreateReport(ctx, reporter.ID, campaignReportRequest(campaign.ID))
		require.NoError(t, err)
	}

	summary, err := e.summaryRepo.GetByTarget(ctx, fixtures.CampaignTarget(campaign))
	require.NoError(t, err)
	require.NotNil(t, summary)

	resolved, err := e.moderation.ApplyToSummary(ctx, summary.ID, admin.ID, &model.TakeActionRequest{
		Status: "resolved",
		Action: "removed",
	})
	require.NoError(t, err)
	assert.Equal(t, model.SummaryStatusResolved, resolved.Status)

	open, err := e.reportRepo.ListOpenByTarget(ctx, fixtures.CampaignTarget(campaign))
	require.NoError(t, err)
	assert.Empty(t, open)

	fetched, err := e.campaignRepo.GetByID(ctx, campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CampaignStatusRemovedTemporary, fetched.Status)
}

func TestModeration_BanViaProfileVerdict(t *testing.T) {
	// AC-MOD-007: Ban Via Profile Verdict
	e := newEnv(t)
	ctx := context.Background()

	reported := e.f.CreateUser(t)
	admin := e.f.CreateAdmin(t)
	reporter := e.f.CreateUser(t)

	report, err := e.reports.CreateReport(ctx, reporter.ID, &model.CreateReportRequest{
		Type:           "profile",
		ReportedUserID: &reported.ID,
		Reason:         "harassment",
	})
	require.NoError(t, err)

	_, err = e.moderation.ApplyToReport(ctx, report.ID, admin.ID, &model.TakeActionRequest{
		Status: "resolved",
		Action: "removed",
	})
	require.NoError(t, err)

	fetched, err := e.userRepo.GetByID(ctx, reported.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, model.AccountStatusBannedTemporary, fetched.AccountStatus)
	assert.True(t, fetched.Banned, "legacy flag must mirror the enum")
	require.NotNil(t, fetched.AppealDeadline)
}

func TestModeration_AdminBanAndUnban(t *testing.T) {
	// Direct admin ban endpoint, both request shapes and the unban path
	e := newEnv(t)
	ctx := context.Background()

	user := e.f.CreateUser(t)
	admin := e.f.CreateAdmin(t)

	// Legacy shape: banned=true, permanent
	banned := true
	updated, err := e.users.SetBanState(ctx, user.ID, admin.ID, &model.BanUserRequest{
		Banned:    &banned,
		Permanent: true,
		BanReason: strPtr("Repeated harassment"),
	})
	require.NoError(t, err)
	assert.Equal(t, model.AccountStatusBannedPermanent, updated.AccountStatus)
	assert.True(t, updated.Banned)

	fetched, err := e.userRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AccountStatusBannedPermanent, fetched.AccountStatus)
	assert.Nil(t, fetched.AppealDeadline)

	// Enum shape: back to active
	status := "active"
	updated, err = e.users.SetBanState(ctx, user.ID, admin.ID, &model.BanUserRequest{
		AccountStatus: &status,
	})
	require.NoError(t, err)
	assert.Equal(t, model.AccountStatusActive, updated.AccountStatus)
	assert.False(t, updated.Banned)

	fetched, err = e.userRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AccountStatusActive, fetched.AccountStatus)
	assert.False(t, fetched.Banned)
}

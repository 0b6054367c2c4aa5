package tests

/*
FEATURE: Appeals
DOMAIN: Content Moderation

ACCEPTANCE CRITERIA:
===================

AC-APP-001: Appeal Temporary Removal
  GIVEN a campaign removed temporarily with an open appeal window
  WHEN the creator submits an appeal
  THEN a pending appeal is created
  AND the campaign's appeal_count increments

AC-APP-002: Deadline Enforced Lazily
  GIVEN a removal whose appeal deadline has passed
  WHEN the creator submits an appeal
  THEN the appeal is rejected

AC-APP-003: One Pending Appeal
  GIVEN a pending appeal on a target
  WHEN the same user appeals again
  THEN the duplicate is rejected

AC-APP-004: Accepted Appeal Restores
  GIVEN a pending appeal on a removed campaign
  WHEN an admin accepts it
  THEN the campaign returns to active
  AND its removal bookkeeping is cleared

AC-APP-005: Denied Appeal Changes Nothing
  GIVEN a pending appeal
  WHEN an admin denies it
  THEN the target stays removed

AC-APP-006: Banned User Appeals Own Account
  GIVEN a temporarily banned user within the window
  WHEN they appeal their ban
  THEN a pending profile appeal is created
*/

import (
	"context"
	"testing"
	"time"

	"github.com/frameyourvoice/api/internal/model"
	"github.com/frameyourvoice/api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func campaignAppealRequest(campaignID string) *model.CreateAppealRequest {
	return &model.CreateAppealRequest{
		Type:       "campaign",
		CampaignID: &campaignID,
		Message:    "The removal was a mistake, please reconsider.",
	}
}

func TestAppeals_AppealTemporaryRemoval(t *testing.T) {
	// AC-APP-001: Appeal Temporary Removal
	e := newEnv(t)
	ctx := context.Background()

	creator := e.f.CreateUser(t)
	campaign := e.f.CreateCampaign(t, creator)
	deadline := time.Now().UTC().AddDate(0, 0, 7)
	e.f.RemoveCampaign(t, campaign, model.CampaignStatusRemovedTemporary, &deadline)

	appeal, err := e.appeals.SubmitAppeal(ctx, creator.ID, campaignAppealRequest(campaign.ID))
	require.NoError(t, err)
	assert.Equal(t, model.AppealStatusPending, appeal.Status)
	assert.Equal(t, creator.ID, appeal.SubmittedBy)

	fetched, err := e.campaignRepo.GetByID(ctx, campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, fetched.AppealCount)
}

func TestAppeals_DeadlineEnforcedLazily(t *testing.T) {
	// AC-APP-002: Deadline Enforced Lazily
	e := newEnv(t)
	ctx := context.Background()

	creator := e.f.CreateUser(t)
	campaign := e.f.CreateCampaign(t, creator)
	passed := time.Now().UTC().AddDate(0, 0, -1)
	e.f.RemoveCampaign(t, campaign, model.CampaignStatusRemovedTemporary, &passed)

	_, err := e.appeals.SubmitAppeal(ctx, creator.ID, campaignAppealRequest(campaign.ID))
	assert.ErrorIs(t, err, service.ErrAppealDeadlinePassed)
}

func TestAppeals_PermanentRemovalHasNoWindow(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	creator := e.f.CreateUser(t)
	campaign := e.f.CreateCampaign(t, creator)
	e.f.RemoveCampaign(t, campaign, model.CampaignStatusRemovedPermanent, nil)

	_, err := e.appeals.SubmitAppeal(ctx, creator.ID, campaignAppealRequest(campaign.ID))
	assert.ErrorIs(t, err, service.ErrNothingToAppeal)
}

func TestAppeals_OnePendingAppeal(t *testing.T) {
	// AC-APP-003: One Pending Appeal
	e := newEnv(t)
	ctx := context.Background()

	creator := e.f.CreateUser(t)
	campaign := e.f.CreateCampaign(t, creator)
	deadline := time.Now().UTC().AddDate(0, 0, 7)
	e.f.RemoveCampaign(t, campaign, model.CampaignStatusRemovedTemporary, &deadline)

	_, err := e.appeals.SubmitAppeal(ctx, creator.ID, campaignAppealRequest(campaign.ID))
	require.NoError(t, err)

	_, err = e.appeals.SubmitAppeal(ctx, creator.ID, campaignAppealRequest(campaign.ID))
	assert.ErrorIs(t, err, service.ErrAppealAlreadyPending)
}

func TestAppeals_AcceptedAppealRestores(t *testing.T) {
	// AC-APP-004: Accepted Appeal Restores
	e := newEnv(t)
	ctx := context.Background()

	creator := e.f.CreateUser(t)
	admin := e.f.CreateAdmin(t)
	campaign := e.f.CreateCampaign(t, creator)
	deadline := time.Now().UTC().AddDate(0, 0, 7)
	e.f.RemoveCampaign(t, campaign, model.CampaignStatusRemovedTemporary, &deadline)

	appeal, err := e.appeals.SubmitAppeal(ctx, creator.ID, campaignAppealRequest(campaign.ID))
	require.NoError(t, err)

	resolved, err := e.appeals.ResolveAppeal(ctx, appeal.ID, admin.ID, &model.ResolveAppealRequest{Accept: true})
	require.NoError(t, err)
	assert.Equal(t, model.AppealStatusAccepted, resolved.Status)

	fetched, err := e.campaignRepo.GetByID(ctx, campaign.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, model.CampaignStatusActive, fetched.Status)
	assert.Nil(t, fetched.AppealDeadline)
}

func TestAppeals_DeniedAppealChangesNothing(t *testing.T) {
	// AC-APP-005: Denied Appeal Changes Nothing
	e := newEnv(t)
	ctx := context.Background()

	creator := e.f.CreateUser(t)
	admin := e.f.CreateAdmin(t)
	campaign := e.f.CreateCampaign(t, creator)
	deadline := time.Now().UTC().AddDate(0, 0, 7)
	e.f.RemoveCampaign(t, campaign, model.CampaignStatusRemovedTemporary, &deadline)

	appeal, err := e.appeals.SubmitAppeal(ctx, creator.ID, campaignAppealRequest(campaign.ID))
	require.NoError(t, err)

	resolved, err := e.appeals.ResolveAppeal(ctx, appeal.ID, admin.ID, &model.ResolveAppealRequest{Accept: false})
	require.NoError(t, err)
	assert.Equal(t, model.AppealStatusDenied, resolved.Status)

	fetched, err := e.campaignRepo.GetByID(ctx, campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CampaignStatusRemovedTemporary, fetched.Status)

	// A denied appeal is terminal
	_, err = e.appeals.ResolveAppeal(ctx, appeal.ID, admin.ID, &model.ResolveAppealRequest{Accept: true})
	assert.ErrorIs(t, err, service.ErrAppealAlreadyResolved)
}

func TestAppeals_BannedUserAppealsOwnAccount(t *testing.T) {
	// AC-APP-006: Banned User Appeals Own Account
	e := newEnv(t)
	ctx := context.Background()

	user := e.f.CreateUser(t)
	deadline := time.Now().UTC().AddDate(0, 0, 7)
	e.f.BanUser(t, user, model.AccountStatusBannedTemporary, &deadline)

	appeal, err := e.appeals.SubmitAppeal(ctx, user.ID, &model.CreateAppealRequest{
		Type:    "profile",
		Message: "I believe this ban was issued in error.",
	})
	require.NoError(t, err)
	assert.Equal(t, model.AppealStatusPending, appeal.Status)
	assert.Equal(t, model.TargetKindProfile, appeal.Target.Kind)

	pending, err := e.appeals.ListPending(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestAppeals_OnlyCreatorMayAppealCampaign(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	creator := e.f.CreateUser(t)
	stranger := e.f.CreateUser(t)
	campaign := e.f.CreateCampaign(t, creator)
	deadline := time.Now().UTC().AddDate(0, 0, 7)
	e.f.RemoveCampaign(t, campaign, model.CampaignStatusRemovedTemporary, &deadline)

	_, err := e.appeals.SubmitAppeal(ctx, stranger.ID, campaignAppealRequest(campaign.ID))
	assert.ErrorIs(t, err, service.ErrNotAppealOwner)
}

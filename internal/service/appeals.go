package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/frameyourvoice/api/internal/database"
	"github.com/frameyourvoice/api/internal/model"
)

// AppealService handles appeals against temporary removals and bans.
// The appeal deadline is checked lazily at submission time; nothing
// sweeps temporary states into permanent ones when deadlines lapse.
type AppealService struct {
	db        database.Database
	appeals   AppealStore
	users     UserStore
	campaigns CampaignStore
	notifier  *Notifier
}

// NewAppealService creates a new appeal service
func NewAppealService(db database.Database, appeals AppealStore, users UserStore, campaigns CampaignStore, notifier *Notifier) *AppealService {
	return &AppealService{
		db:        db,
		appeals:   appeals,
		users:     users,
		campaigns: campaigns,
		notifier:  notifier,
	}
}

// SubmitAppeal files an appeal. Campaign appeals must come from the
// campaign's creator; profile appeals always target the caller's own
// account.
func (s *AppealService) SubmitAppeal(ctx context.Context, userID string, req *model.CreateAppealRequest) (*model.Appeal, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, ErrAppealMessageRequired
	}
	if len(message) > model.MaxAppealMessageLength {
		return nil, ErrAppealMessageTooLong
	}

	now := time.Now().UTC()
	var target model.ReportTarget

	switch model.TargetKind(req.Type) {
	case model.TargetKindCampaign:
		if req.CampaignID == nil || *req.CampaignID == "" {
			return nil, ErrInvalidTarget
		}
		campaign, err := s.campaigns.GetByID(ctx, *req.CampaignID)
		if err != nil {
			return nil, err
		}
		if campaign == nil {
			return nil, ErrCampaignNotFound
		}
		if campaign.CreatorID != userID {
			return nil, ErrNotAppealOwner
		}
		if campaign.Status != model.CampaignStatusRemovedTemporary {
			return nil, ErrNothingToAppeal
		}
		if !campaign.CanAppeal(now) {
			return nil, ErrAppealDeadlinePassed
		}
		target = model.ReportTarget{Kind: model.TargetKindCampaign, ID: campaign.ID}
	case model.TargetKindProfile:
		user, err := s.users.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, ErrUserNotFound
		}
		if user.AccountStatus != model.AccountStatusBannedTemporary {
			return nil, ErrNothingToAppeal
		}
		if !user.CanAppeal(now) {
			return nil, ErrAppealDeadlinePassed
		}
		target = model.ReportTarget{Kind: model.TargetKindProfile, ID: user.ID}
	default:
		return nil, ErrInvalidTarget
	}

	pending, err := s.appeals.HasPendingForTarget(ctx, target, userID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, ErrAppealAlreadyPending
	}

	appeal := &model.Appeal{
		Target:      target,
		SubmittedBy: userID,
		Message:     message,
		Status:      model.AppealStatusPending,
	}
	if err := s.appeals.Create(ctx, appeal); err != nil {
		return nil, err
	}

	// Campaign appeals count attempts on the campaign itself
	if target.Kind == model.TargetKindCampaign {
		batch := database.NewAtomicBatch()
		batch.Add(`UPDATE type::record($id) SET appeal_count += 1`, map[string]interface{}{
			"id": target.ID,
		})
		if err := batch.Execute(ctx, s.db); err != nil {
			return nil, fmt.Errorf("failed to count appeal: %w", err)
		}
	}

	return appeal, nil
}

// ListPending retrieves the admin appeal queue
func (s *AppealService) ListPending(ctx context.Context, limit int) ([]*model.Appeal, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.appeals.ListPending(ctx, limit)
}

// ResolveAppeal records an admin verdict. Accepting an appeal restores
// the target through the same plan a dismissal uses; denying only
// closes the appeal.
func (s *AppealService) ResolveAppeal(ctx context.Context, appealID, adminID string, req *model.ResolveAppealRequest) (*model.Appeal, error) {
	appeal, err := s.appeals.GetByID(ctx, appealID)
	if err != nil {
		return nil, err
	}
	if appeal == nil {
		return nil, ErrAppealNotFound
	}
	if appeal.Status != model.AppealStatusPending {
		return nil, ErrAppealAlreadyResolved
	}

	batch := database.NewAtomicBatch()
	var notice *Notice

	if req.Accept {
		decision, err := Decide(DecisionInput{
			Status:  model.ReportStatusDismissed,
			Action:  model.ReportActionNoAction,
			Target:  appeal.Target,
			OwnerID: appeal.SubmittedBy,
			AdminID: adminID,
			Now:     time.Now().UTC(),
		})
		if err != nil {
			return nil, err
		}
		switch appeal.Target.Kind {
		case model.TargetKindCampaign:
			s.campaigns.AddUpdate(batch, appeal.Target.ID, decision.TargetUpdates)
		case model.TargetKindProfile:
			s.users.AddUpdate(batch, appeal.Target.ID, decision.TargetUpdates)
		}
		notice = decision.Notice
		s.appeals.AddResolve(batch, appeal.ID, model.AppealStatusAccepted, adminID)
		appeal.Status = model.AppealStatusAccepted
	} else {
		s.appeals.AddResolve(batch, appeal.ID, model.AppealStatusDenied, adminID)
		appeal.Status = model.AppealStatusDenied
		notice = &Notice{
			UserID: appeal.SubmittedBy,
			Type:   model.NotificationTypeAppealResolved,
			Title:  "Your appeal was reviewed",
			Body:   "After another look, our team upheld the original decision.",
		}
	}

	if err := batch.Execute(ctx, s.db); err != nil {
		return nil, fmt.Errorf("failed to resolve appeal: %w", err)
	}

	s.notifier.dispatchAsync(notice)

	appeal.ResolvedBy = &adminID
	now := time.Now().UTC()
	appeal.ResolvedOn = &now
	return appeal, nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/frameyourvoice/api/internal/database"
	"github.com/frameyourvoice/api/internal/model"
)

// UserService handles account-level moderation: direct ban/unban by an
// admin, outside the report workflow, plus warning retrieval. The ban
// endpoint accepts both the account-status enum and the legacy boolean
// shape; both run through the same transition.
type UserService struct {
	db       database.Database
	users    UserStore
	warnings WarningStore
	notifier *Notifier
}

// NewUserService creates a new user service
func NewUserService(db database.Database, users UserStore, warnings WarningStore, notifier *Notifier) *UserService {
	return &UserService{
		db:       db,
		users:    users,
		warnings: warnings,
		notifier: notifier,
	}
}

// SetBanState bans or unbans a user. Legacy requests are normalized to
// the enum before any rule runs, so both shapes behave identically.
func (s *UserService) SetBanState(ctx context.Context, userID, adminID string, req *model.BanUserRequest) (*model.User, error) {
	status, ok := req.Normalize()
	if !ok {
		return nil, ErrBanRequestEmpty
	}
	if !model.IsValidAccountStatus(string(status)) {
		return nil, ErrInvalidAccountStatus
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	now := time.Now().UTC()
	var updates map[string]interface{}
	var notice *Notice

	switch status {
	case model.AccountStatusActive:
		updates = map[string]interface{}{
			"account_status":  model.AccountStatusActive,
			"banned":          false,
			"ban_reason":      nil,
			"banned_by":       nil,
			"banned_on":       nil,
			"appeal_deadline": nil,
		}
		notice = &Notice{
			UserID: user.ID,
			Type:   model.NotificationTypeAccountRestored,
			Title:  "Your account is in good standing",
			Body:   "Your account has been restored and all restrictions lifted.",
		}
	case model.AccountStatusBannedTemporary, model.AccountStatusBannedPermanent:
		if req.BanReason == nil || *req.BanReason == "" {
			return nil, ErrBanReasonRequired
		}
		updates = map[string]interface{}{
			"account_status": status,
			"banned":         true,
			"ban_reason":     *req.BanReason,
			"banned_by":      adminID,
			"banned_on":      now,
		}
		body := fmt.Sprintf("Your account was banned for %s.", model.ReportReason(*req.BanReason).Humanize())
		if status == model.AccountStatusBannedTemporary {
			deadline := now.AddDate(0, 0, model.AppealWindowDays)
			updates["appeal_deadline"] = deadline
			body += fmt.Sprintf(" You may appeal this decision until %s.", deadline.Format("January 2, 2006"))
		} else {
			updates["appeal_deadline"] = nil
		}
		notice = &Notice{
			UserID: user.ID,
			Type:   model.NotificationTypeAccountBanned,
			Title:  "Your account has been banned",
			Body:   body,
		}
	}

	batch := database.NewAtomicBatch()
	s.users.AddUpdate(batch, user.ID, updates)
	if err := batch.Execute(ctx, s.db); err != nil {
		return nil, fmt.Errorf("failed to update ban state: %w", err)
	}

	s.notifier.dispatchAsync(notice)

	applyBanUpdates(user, status, updates)
	return user, nil
}

// GetWarnings retrieves a user's warnings
func (s *UserService) GetWarnings(ctx context.Context, userID string) ([]*model.Warning, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return s.warnings.ListByUser(ctx, userID)
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// applyBanUpdates mirrors the committed mutations onto the in-memory
// user so the handler can return fresh state without a re-read
func applyBanUpdates(user *model.User, status model.AccountStatus, updates map[string]interface{}) {
	user.AccountStatus = status
	user.Banned = status != model.AccountStatusActive

	if v, ok := updates["ban_reason"].(string); ok {
		user.BanReason = &v
	} else {
		user.BanReason = nil
	}
	if v, ok := updates["banned_by"].(string); ok {
		user.BannedBy = &v
	} else {
		user.BannedBy = nil
	}
	if v, ok := updates["banned_on"].(time.Time); ok {
		user.BannedOn = &v
	} else {
		user.BannedOn = nil
	}
	if v, ok := updates["appeal_deadline"].(time.Time); ok {
		user.AppealDeadline = &v
	} else {
		user.AppealDeadline = nil
	}
}

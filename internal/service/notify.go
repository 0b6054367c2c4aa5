package service

import (
	"context"
	"log"

	"github.com/frameyourvoice/api/internal/model"
)

// Notifier delivers moderation notices to users. Delivery is
// best-effort: a notice is persisted for in-app retrieval and the
// failure of either step is logged, never propagated into the
// moderation decision that produced it.
type Notifier struct {
	store   NotificationStore
	enabled bool
}

// NotifierConfig holds configuration for the notifier
type NotifierConfig struct {
	Store   NotificationStore
	Enabled bool
}

// NewNotifier creates a new notifier
func NewNotifier(cfg NotifierConfig) *Notifier {
	return &Notifier{
		store:   cfg.Store,
		enabled: cfg.Enabled,
	}
}

// IsEnabled returns whether notification delivery is enabled
func (n *Notifier) IsEnabled() bool {
	return n.enabled
}

// Dispatch delivers a notice. Callers fire this after their transaction
// has committed and ignore the returned error beyond logging; the
// error return exists for tests and direct callers.
func (n *Notifier) Dispatch(ctx context.Context, notice *Notice) error {
	if notice == nil || notice.UserID == "" {
		return nil
	}
	if !n.enabled {
		return ErrNotificationsDisabled
	}

	notification := &model.Notification{
		UserID: notice.UserID,
		Type:   notice.Type,
		Title:  notice.Title,
		Body:   notice.Body,
	}

	if err := n.store.Create(ctx, notification); err != nil {
		log.Printf("[Notifier] Failed to deliver %s notice to %s: %v", notice.Type, notice.UserID, err)
		return err
	}

	log.Printf("[Notifier] Delivered %s notice to %s", notice.Type, notice.UserID)
	return nil
}

// ListForUser retrieves a user's notifications, newest first
func (n *Notifier) ListForUser(ctx context.Context, userID string, limit int) ([]*model.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	return n.store.ListByUser(ctx, userID, limit)
}

// MarkRead records that the recipient has seen a notification
func (n *Notifier) MarkRead(ctx context.Context, id string) error {
	return n.store.MarkRead(ctx, id)
}

// dispatchAsync fires a notice without blocking the caller. Used after
// commit so a slow notification path never delays the response.
func (n *Notifier) dispatchAsync(notice *Notice) {
	if notice == nil {
		return
	}
	go func() {
		_ = n.Dispatch(context.Background(), notice)
	}()
}

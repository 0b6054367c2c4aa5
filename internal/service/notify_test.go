package service

import (
	"context"
	"errors"
	"testing"

	"github.com/frameyourvoice/api/internal/model"
)

func TestDispatchPersistsNotification(t *testing.T) {
	t.Parallel()

	var saved *model.Notification
	store := &mockNotificationStore{
		create: func(_ context.Context, n *model.Notification) error {
			saved = n
			return nil
		},
	}
	n := NewNotifier(NotifierConfig{Store: store, Enabled: true})

	err := n.Dispatch(context.Background(), &Notice{
		UserID: "user:bob",
		Type:   model.NotificationTypeWarning,
		Title:  "You've received a warning",
		Body:   "Your campaign was reported for spam.",
	})
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if saved == nil {
		t.Fatal("notice was not persisted")
	}
	if saved.UserID != "user:bob" || saved.Type != model.NotificationTypeWarning {
		t.Errorf("persisted notification = %+v", saved)
	}
}

func TestDispatchNilNoticeIsNoop(t *testing.T) {
	t.Parallel()

	called := false
	store := &mockNotificationStore{
		create: func(_ context.Context, _ *model.Notification) error {
			called = true
			return nil
		},
	}
	n := NewNotifier(NotifierConfig{Store: store, Enabled: true})

	if err := n.Dispatch(context.Background(), nil); err != nil {
		t.Fatalf("Dispatch(nil) error = %v", err)
	}
	if err := n.Dispatch(context.Background(), &Notice{}); err != nil {
		t.Fatalf("Dispatch(empty) error = %v", err)
	}
	if called {
		t.Error("empty notices must not reach the store")
	}
}

func TestDispatchDisabled(t *testing.T) {
	t.Parallel()

	n := NewNotifier(NotifierConfig{Store: &mockNotificationStore{}, Enabled: false})
	err := n.Dispatch(context.Background(), &Notice{UserID: "user:bob", Type: model.NotificationTypeWarning})
	if !errors.Is(err, ErrNotificationsDisabled) {
		t.Fatalf("error = %v, want ErrNotificationsDisabled", err)
	}
}

func TestDispatchStoreFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection reset")
	store := &mockNotificationStore{
		create: func(_ context.Context, _ *model.Notification) error {
			return boom
		},
	}
	n := NewNotifier(NotifierConfig{Store: store, Enabled: true})

	err := n.Dispatch(context.Background(), &Notice{UserID: "user:bob", Type: model.NotificationTypeWarning})
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want store failure", err)
	}
}

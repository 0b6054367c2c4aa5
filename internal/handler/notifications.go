package handler

import (
	"context"
	"net/http"

	"github.com/frameyourvoice/api/internal/middleware"
	"github.com/frameyourvoice/api/internal/model"
)

// NotificationReader defines the retrieval operations the handler needs
type NotificationReader interface {
	ListForUser(ctx context.Context, userID string, limit int) ([]*model.Notification, error)
	MarkRead(ctx context.Context, id string) error
}

// NotificationHandler serves in-app notification retrieval
type NotificationHandler struct {
	notifier NotificationReader
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notifier NotificationReader) *NotificationHandler {
	return &NotificationHandler{notifier: notifier}
}

// RegisterRoutes registers authenticated notification routes
func (h *NotificationHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/notifications", h.GetNotifications)
	mux.HandleFunc("POST /v1/notifications/{notificationId}/read", h.MarkRead)
}

// GetNotifications retrieves the caller's notifications, newest first
func (h *NotificationHandler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	notifications, err := h.notifier.ListForUser(ctx, userID, 50)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, map[string]interface{}{
		"notifications": notifications,
	}, nil)
}

// MarkRead records that the caller has seen a notification
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	notificationID := r.PathValue("notificationId")
	if notificationID == "" {
		WriteError(w, model.NewBadRequestError("notification ID required"))
		return
	}

	if err := h.notifier.MarkRead(ctx, notificationID); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}

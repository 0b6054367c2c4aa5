package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/frameyourvoice/api/internal/database"
	"github.com/frameyourvoice/api/internal/model"
)

// NotificationRepository handles notification data access
type NotificationRepository struct {
	db database.Database
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db database.Database) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create persists a notification for later retrieval by its recipient
func (r *NotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	setClause := `user_id = type::record($user_id), type = $type, title = $title,
		body = $body, created_on = time::now()`
	vars := map[string]interface{}{
		"user_id": n.UserID,
		"type":    n.Type,
		"title":   n.Title,
		"body":    n.Body,
	}

	if n.ActionURL != nil && *n.ActionURL != "" {
		setClause += ", action_url = $action_url"
		vars["action_url"] = *n.ActionURL
	}
	if len(n.Metadata) > 0 {
		setClause += ", metadata = $metadata"
		vars["metadata"] = n.Metadata
	}

	query := "CREATE notification SET " + setClause
	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	rows, ok := extractQueryResults(result)
	if !ok || len(rows) == 0 {
		return errors.New("no notification returned")
	}
	if m, ok := rows[0].(map[string]interface{}); ok {
		if id, ok := m["id"]; ok {
			n.ID = extractRecordID(id)
		}
		if v, ok := m["created_on"]; ok {
			n.CreatedOn = parseTime(v)
		}
	}
	return nil
}

// ListByUser retrieves notifications for a user, newest first
func (r *NotificationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*model.Notification, error) {
	query := `
		SELECT * FROM notification
		WHERE user_id = type::record($user_id)
		ORDER BY created_on DESC
		LIMIT $limit
	`
	result, err := r.db.Query(ctx, query, map[string]interface{}{
		"user_id": userID,
		"limit":   limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	rows, ok := extractQueryResults(result)
	if !ok {
		return []*model.Notification{}, nil
	}

	notifications := make([]*model.Notification, 0, len(rows))
	for _, row := range rows {
		if m, ok := row.(map[string]interface{}); ok {
			notifications = append(notifications, r.parseNotificationFromMap(m))
		}
	}
	return notifications, nil
}

// MarkRead records that the recipient has seen a notification
func (r *NotificationRepository) MarkRead(ctx context.Context, id string) error {
	query := `UPDATE type::record($id) SET read_on = time::now()`
	if err := r.db.Execute(ctx, query, map[string]interface{}{"id": id}); err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

func (r *NotificationRepository) parseNotificationFromMap(m map[string]interface{}) *model.Notification {
	n := &model.Notification{}

	if id, ok := m["id"]; ok {
		n.ID = extractRecordID(id)
	}
	n.UserID = getRecordID(m, "user_id")
	if v, ok := m["type"].(string); ok {
		n.Type = model.NotificationType(v)
	}
	n.Title = getString(m, "title")
	n.Body = getString(m, "body")
	n.ActionURL = getStringPtr(m, "action_url")
	if v, ok := m["metadata"].(map[string]interface{}); ok {
		n.Metadata = make(map[string]string, len(v))
		for k, val := range v {
			if s, ok := val.(string); ok {
				n.Metadata[k] = s
			}
		}
	}
	if v, ok := m["created_on"]; ok {
		n.CreatedOn = parseTime(v)
	}
	n.ReadOn = getTime(m, "read_on")

	return n
}

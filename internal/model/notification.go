package model

import "time"

// NotificationType categorizes moderation notifications
type NotificationType string

const (
	NotificationTypeContentRestored NotificationType = "content_restored"
	NotificationTypeWarning         NotificationType = "warning_issued"
	NotificationTypeContentRemoved  NotificationType = "content_removed"
	NotificationTypeAccountBanned   NotificationType = "account_banned"
	NotificationTypeAccountRestored NotificationType = "account_restored"
	NotificationTypeAppealResolved  NotificationType = "appeal_resolved"
)

// Notification represents a message delivered to a user after a
// moderation decision. Dispatch is best-effort: a failed delivery is
// logged and never rolls back the decision that produced it.
type Notification struct {
	ID        string            `json:"id"`
	UserID    string            `json:"user_id"`
	Type      NotificationType  `json:"type"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	ActionURL *string           `json:"action_url,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedOn time.Time         `json:"created_on"`
	ReadOn    *time.Time        `json:"read_on,omitempty"`
}

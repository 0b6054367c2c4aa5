package model

import "time"

// AppealStatus represents the state of an appeal
type AppealStatus string

const (
	AppealStatusPending  AppealStatus = "pending"
	AppealStatusAccepted AppealStatus = "accepted"
	AppealStatusDenied   AppealStatus = "denied"
)

// Appeal represents a request to reverse a temporary removal or ban.
// Appeals are accepted only while the target's appeal deadline has not
// passed, and at most one pending appeal exists per target and user.
type Appeal struct {
	ID          string       `json:"id"`
	Target      ReportTarget `json:"target"`
	SubmittedBy string       `json:"submitted_by"`
	Message     string       `json:"message"`
	Status      AppealStatus `json:"status"`
	CreatedOn   time.Time    `json:"created_on"`
	ResolvedBy  *string      `json:"resolved_by,omitempty"`
	ResolvedOn  *time.Time   `json:"resolved_on,omitempty"`
}

// Constraints
const (
	MaxAppealMessageLength = 2000
)

// CreateAppealRequest represents a request to appeal a removal or ban.
// CampaignID is set for campaign appeals; profile appeals target the
// caller's own account and carry no ID.
type CreateAppealRequest struct {
	Type       string  `json:"type"` // campaign or profile
	CampaignID *string `json:"campaign_id,omitempty"`
	Message    string  `json:"message"`
}

// ResolveAppealRequest represents an admin verdict on an appeal
type ResolveAppealRequest struct {
	Accept bool    `json:"accept"`
	Notes  *string `json:"notes,omitempty"`
}

// Valid appeal statuses
func IsValidAppealStatus(status string) bool {
	switch AppealStatus(status) {
	case AppealStatusPending,
		AppealStatusAccepted,
		AppealStatusDenied:
		return true
	}
	return false
}

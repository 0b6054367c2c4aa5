package model

import "time"

// Warning represents a formal warning issued to a user as the outcome
// of a report review. Warnings accumulate; they are never deleted by
// later moderation decisions.
type Warning struct {
	ID           string       `json:"id"`
	UserID       string       `json:"user_id"`
	Target       ReportTarget `json:"target"`
	ReportID     string       `json:"report_id"`
	Reason       ReportReason `json:"reason"`
	Details      *string      `json:"details,omitempty"`
	IssuedBy     string       `json:"issued_by"`
	IssuedOn     time.Time    `json:"issued_on"`
	Acknowledged bool         `json:"acknowledged"`
}

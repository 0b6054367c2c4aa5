package model

import "time"

// TargetKind discriminates what a report points at
type TargetKind string

const (
	TargetKindCampaign TargetKind = "campaign"
	TargetKindProfile  TargetKind = "profile"
)

// ReportTarget is a tagged reference to the reported entity. Every
// report carries exactly one target; there are no parallel nullable
// foreign keys to keep consistent.
type ReportTarget struct {
	Kind TargetKind `json:"kind"`
	ID   string     `json:"id"`
}

// IsValidTargetKind reports whether k is an enumerated target kind
func IsValidTargetKind(k string) bool {
	switch TargetKind(k) {
	case TargetKindCampaign, TargetKindProfile:
		return true
	}
	return false
}

// ReportReason represents why content was reported
type ReportReason string

const (
	ReportReasonSpam           ReportReason = "spam"
	ReportReasonInappropriate  ReportReason = "inappropriate_content"
	ReportReasonCopyright      ReportReason = "copyright_violation"
	ReportReasonHarassment     ReportReason = "harassment"
	ReportReasonImpersonation  ReportReason = "impersonation"
	ReportReasonMisinformation ReportReason = "misinformation"
	ReportReasonOther          ReportReason = "other"
)

// reasonLabels maps reason codes to the phrasing used in notifications
var reasonLabels = map[ReportReason]string{
	ReportReasonSpam:           "spam",
	ReportReasonInappropriate:  "inappropriate content",
	ReportReasonCopyright:      "a copyright violation",
	ReportReasonHarassment:     "harassment",
	ReportReasonImpersonation:  "impersonation",
	ReportReasonMisinformation: "misinformation",
	ReportReasonOther:          "a community guidelines violation",
}

// Humanize returns the notification-facing phrasing for a reason code.
// Unknown codes fall back to the generic label rather than leaking the
// raw code to users.
func (r ReportReason) Humanize() string {
	if label, ok := reasonLabels[r]; ok {
		return label
	}
	return reasonLabels[ReportReasonOther]
}

// ReportStatus represents the lifecycle state of a report
type ReportStatus string

const (
	ReportStatusPending   ReportStatus = "pending"
	ReportStatusReviewed  ReportStatus = "reviewed"
	ReportStatusResolved  ReportStatus = "resolved"
	ReportStatusDismissed ReportStatus = "dismissed"
)

// IsTerminal reports whether the status ends the report's lifecycle.
// Terminal reports are never touched by a dismissal cascade.
func (s ReportStatus) IsTerminal() bool {
	return s == ReportStatusResolved || s == ReportStatusDismissed
}

// ReportAction represents the admin's verdict on a report
type ReportAction string

const (
	ReportActionNoAction ReportAction = "no_action"
	ReportActionWarned   ReportAction = "warned"
	ReportActionRemoved  ReportAction = "removed"
)

// Report represents a single complaint against a campaign or a profile
type Report struct {
	ID         string        `json:"id"`
	Target     ReportTarget  `json:"target"`
	Reason     ReportReason  `json:"reason"`
	Details    *string       `json:"details,omitempty"`
	ReportedBy string        `json:"reported_by"` // User ID or ReporterAnonymous
	Status     ReportStatus  `json:"status"`
	Action     *ReportAction `json:"action,omitempty"`
	ReviewedBy *string       `json:"reviewed_by,omitempty"`
	ReviewedOn *time.Time    `json:"reviewed_on,omitempty"`
	CreatedOn  time.Time     `json:"created_on"`
}

// Constraints
const (
	ReporterAnonymous      = "anonymous"
	MaxReportDetailsLength = 1000
	AppealWindowDays       = 30
)

// CreateReportRequest represents a request to file a report. Exactly one
// of CampaignID and ReportedUserID must be set, matching Type.
type CreateReportRequest struct {
	Type           string  `json:"type"` // campaign or profile
	CampaignID     *string `json:"campaign_id,omitempty"`
	ReportedUserID *string `json:"reported_user_id,omitempty"`
	Reason         string  `json:"reason"`
	Details        *string `json:"details,omitempty"`
}

// Target resolves the request into a tagged target reference. Returns
// false when the type and the supplied ID do not line up.
func (r *CreateReportRequest) Target() (ReportTarget, bool) {
	switch TargetKind(r.Type) {
	case TargetKindCampaign:
		if r.CampaignID == nil || *r.CampaignID == "" || r.ReportedUserID != nil {
			return ReportTarget{}, false
		}
		return ReportTarget{Kind: TargetKindCampaign, ID: *r.CampaignID}, true
	case TargetKindProfile:
		if r.ReportedUserID == nil || *r.ReportedUserID == "" || r.CampaignID != nil {
			return ReportTarget{}, false
		}
		return ReportTarget{Kind: TargetKindProfile, ID: *r.ReportedUserID}, true
	}
	return ReportTarget{}, false
}

// TakeActionRequest represents an admin decision on a report or on a
// report summary
type TakeActionRequest struct {
	Status  string  `json:"status"` // resolved or dismissed
	Action  string  `json:"action"` // no_action, warned, removed
	Reason  *string `json:"reason,omitempty"`
	Details *string `json:"details,omitempty"`
	// Permanent applies only when action is removed
	Permanent bool `json:"permanent"`
}

// Valid report reasons
func IsValidReportReason(reason string) bool {
	switch ReportReason(reason) {
	case ReportReasonSpam,
		ReportReasonInappropriate,
		ReportReasonCopyright,
		ReportReasonHarassment,
		ReportReasonImpersonation,
		ReportReasonMisinformation,
		ReportReasonOther:
		return true
	}
	return false
}

// Valid report statuses
func IsValidReportStatus(status string) bool {
	switch ReportStatus(status) {
	case ReportStatusPending,
		ReportStatusReviewed,
		ReportStatusResolved,
		ReportStatusDismissed:
		return true
	}
	return false
}

// Valid report actions
func IsValidReportAction(action string) bool {
	switch ReportAction(action) {
	case ReportActionNoAction,
		ReportActionWarned,
		ReportActionRemoved:
		return true
	}
	return false
}

package model

import "time"

// SummaryStatus represents the lifecycle state of a report summary
type SummaryStatus string

const (
	SummaryStatusPending   SummaryStatus = "pending"
	SummaryStatusDismissed SummaryStatus = "dismissed"
	SummaryStatusResolved  SummaryStatus = "resolved"
)

// ReportSummary aggregates all reports against a single target. It is a
// derived view maintained alongside report writes so the admin queue
// reads one row per target instead of scanning the report table.
//
// PendingReportCount tracks open reports; ReportCount never decreases.
// The snapshot fields are denormalized from the target at report time
// so the queue renders without joins; the reconciler refreshes them.
type ReportSummary struct {
	ID                 string        `json:"id"`
	Target             ReportTarget  `json:"target"`
	PendingReportCount int           `json:"pending_report_count"`
	ReportCount        int           `json:"report_count"`
	FirstReportedOn    time.Time     `json:"first_reported_on"`
	LastReportedOn     time.Time     `json:"last_reported_on"`
	Status             SummaryStatus `json:"status"`

	// Display snapshot, campaign targets
	CampaignTitle *string `json:"campaign_title,omitempty"`
	CampaignImage *string `json:"campaign_image,omitempty"`
	CreatorName   *string `json:"creator_name,omitempty"`

	// Display snapshot, profile targets
	DisplayName  *string `json:"display_name,omitempty"`
	Username     *string `json:"username,omitempty"`
	ProfileImage *string `json:"profile_image,omitempty"`
}

// Valid summary statuses
func IsValidSummaryStatus(status string) bool {
	switch SummaryStatus(status) {
	case SummaryStatusPending,
		SummaryStatusDismissed,
		SummaryStatusResolved:
		return true
	}
	return false
}

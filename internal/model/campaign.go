package model

import (
	"regexp"
	"time"
)

// CampaignStatus represents the moderation state of a campaign. A
// campaign is exactly one of active, removed_temporary or
// removed_permanent at any time.
type CampaignStatus string

const (
	CampaignStatusActive           CampaignStatus = "active"
	CampaignStatusRemovedTemporary CampaignStatus = "removed_temporary"
	CampaignStatusRemovedPermanent CampaignStatus = "removed_permanent"
)

// Campaign represents a photo-frame campaign owned by a creator.
//
// AppealDeadline is set only alongside removed_temporary and is always
// recomputed fresh on removal, never extended from a prior deadline.
// SupportersCount is a usage counter mutated by commuting atomic
// increments, unrelated to moderation.
type Campaign struct {
	ID              string         `json:"id"`
	Slug            string         `json:"slug"`
	Title           string         `json:"title"`
	Description     *string        `json:"description,omitempty"`
	ImageURL        *string        `json:"image_url,omitempty"`
	CreatorID       string         `json:"creator_id"`
	Status          CampaignStatus `json:"moderation_status"`
	RemovedOn       *time.Time     `json:"removed_on,omitempty"`
	RemovalReason   *string        `json:"removal_reason,omitempty"`
	AppealDeadline  *time.Time     `json:"appeal_deadline,omitempty"`
	AppealCount     int            `json:"appeal_count"`
	ReportsCount    int            `json:"reports_count"`
	SupportersCount int            `json:"supporters_count"`
	CreatedOn       time.Time      `json:"created_on"`
	UpdatedOn       time.Time      `json:"updated_on"`
}

// IsRemoved returns true if the campaign is removed in any form
func (c *Campaign) IsRemoved() bool {
	return c.Status != CampaignStatusActive
}

// CanAppeal reports whether the creator may still contest a temporary
// removal. Permanent removals never expose an appeal window.
func (c *Campaign) CanAppeal(now time.Time) bool {
	if c.Status != CampaignStatusRemovedTemporary {
		return false
	}
	return c.AppealDeadline != nil && now.Before(*c.AppealDeadline)
}

// Constraints
const (
	MaxCampaignTitleLength       = 120
	MaxCampaignDescriptionLength = 2000
	MaxSlugLength                = 64
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// IsValidSlug reports whether s is a URL-safe campaign slug
func IsValidSlug(s string) bool {
	return len(s) > 0 && len(s) <= MaxSlugLength && slugPattern.MatchString(s)
}

// CreateCampaignRequest represents a request to create a campaign
type CreateCampaignRequest struct {
	Slug        string  `json:"slug"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
}

// TrackDownloadRequest represents a download-tracking request
type TrackDownloadRequest struct {
	CampaignID string `json:"campaign_id"`
}

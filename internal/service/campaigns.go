package service

import (
	"context"
	"errors"
	"strings"

	"github.com/frameyourvoice/api/internal/database"
	"github.com/frameyourvoice/api/internal/model"
)

// CampaignService handles campaign creation, lookup and download
// tracking
type CampaignService struct {
	users     UserStore
	campaigns CampaignStore
}

// NewCampaignService creates a new campaign service
func NewCampaignService(users UserStore, campaigns CampaignStore) *CampaignService {
	return &CampaignService{
		users:     users,
		campaigns: campaigns,
	}
}

// CreateCampaign publishes a new campaign for a creator
func (s *CampaignService) CreateCampaign(ctx context.Context, creatorID string, req *model.CreateCampaignRequest) (*model.Campaign, error) {
	slug := strings.TrimSpace(req.Slug)
	if !model.IsValidSlug(slug) {
		return nil, ErrInvalidSlug
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if len(title) > model.MaxCampaignTitleLength {
		return nil, ErrTitleTooLong
	}
	if req.Description != nil && len(*req.Description) > model.MaxCampaignDescriptionLength {
		return nil, ErrDescriptionTooLong
	}

	existing, err := s.campaigns.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlugTaken
	}

	campaign := &model.Campaign{
		Slug:        slug,
		Title:       title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		CreatorID:   creatorID,
	}
	if err := s.campaigns.Create(ctx, campaign); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}
	return campaign, nil
}

// GetBySlug retrieves a campaign by its public slug. Removed campaigns
// are withheld from everyone except their creator.
func (s *CampaignService) GetBySlug(ctx context.Context, slug, viewerID string) (*model.Campaign, error) {
	campaign, err := s.campaigns.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}
	if campaign.IsRemoved() && campaign.CreatorID != viewerID {
		return nil, ErrCampaignUnavailable
	}
	return campaign, nil
}

// TrackDownload counts a frame download. The campaign counter always
// moves; the creator's own supporter counter moves only for
// authenticated callers other than the creator. Both are single
// commuting increments, so no transaction is needed.
func (s *CampaignService) TrackDownload(ctx context.Context, callerID string, req *model.TrackDownloadRequest) error {
	if req.CampaignID == "" {
		return ErrInvalidTarget
	}
	campaign, err := s.campaigns.GetByID(ctx, req.CampaignID)
	if err != nil {
		return err
	}
	if campaign == nil {
		return ErrCampaignNotFound
	}
	if campaign.IsRemoved() {
		return ErrCampaignUnavailable
	}

	if err := s.campaigns.IncrementDownloads(ctx, campaign.ID); err != nil {
		return err
	}

	if callerID != "" && callerID != campaign.CreatorID {
		if err := s.users.IncrementSupporters(ctx, campaign.CreatorID); err != nil {
			return err
		}
	}
	return nil
}

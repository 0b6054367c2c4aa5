package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/frameyourvoice/api/internal/database"
	"github.com/frameyourvoice/api/internal/model"
)

// CampaignRepository handles campaign data access
type CampaignRepository struct {
	db database.Database
}

// NewCampaignRepository creates a new campaign repository
func NewCampaignRepository(db database.Database) *CampaignRepository {
	return &CampaignRepository{db: db}
}

// Create stores a new campaign. Slug uniqueness is enforced by the
// database; violations surface as database.ErrDuplicate.
func (r *CampaignRepository) Create(ctx context.Context, campaign *model.Campaign) error {
	setClause := `slug = $slug, title = $title, creator_id = type::record($creator_id),
		moderation_status = $status, appeal_count = 0, reports_count = 0,
		supporters_count = 0, created_on = time::now(), updated_on = time::now()`
	vars := map[string]interface{}{
		"slug":       campaign.Slug,
		"title":      campaign.Title,
		"creator_id": campaign.CreatorID,
		"status":     model.CampaignStatusActive,
	}

	if campaign.Description != nil && *campaign.Description != "" {
		setClause += ", description = $description"
		vars["description"] = *campaign.Description
	}
	if campaign.ImageURL != nil && *campaign.ImageURL != "" {
		setClause += ", image_url = $image_url"
		vars["image_url"] = *campaign.ImageURL
	}

	query := "CREATE campaign SET " + setClause
	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return database.ErrDuplicate
		}
		return fmt.Errorf("failed to create campaign: %w", err)
	}

	created, err := r.extractCampaignFromResult(result)
	if err != nil {
		return fmt.Errorf("failed to extract campaign: %w", err)
	}

	campaign.ID = created.ID
	campaign.Status = created.Status
	campaign.CreatedOn = created.CreatedOn
	return nil
}

// GetByID retrieves a campaign by ID. Returns nil without error when
// the record does not exist.
func (r *CampaignRepository) GetByID(ctx context.Context, id string) (*model.Campaign, error) {
	query := `SELECT * FROM type::record($id)`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"id": id})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}

	m, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}
	return r.parseCampaignFromMap(m)
}

// GetBySlug retrieves a campaign by its public slug
func (r *CampaignRepository) GetBySlug(ctx context.Context, slug string) (*model.Campaign, error) {
	query := `SELECT * FROM campaign WHERE slug = $slug`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"slug": slug})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}

	m, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}
	return r.parseCampaignFromMap(m)
}

// AddUpdate contributes a campaign field update to an atomic batch.
// Nil values are UNSET, which is how a permanent removal deletes the
// appeal deadline.
func (r *CampaignRepository) AddUpdate(batch *database.AtomicBatch, id string, updates map[string]interface{}) {
	addRecordUpdate(batch, id, updates, map[string]bool{"removed_by": true})
}

// AddIncrementReports contributes the report counter bump to a batch
func (r *CampaignRepository) AddIncrementReports(batch *database.AtomicBatch, id string) {
	query := `UPDATE type::record($id) SET reports_count += 1, updated_on = time::now()`
	batch.Add(query, map[string]interface{}{"id": id})
}

// IncrementDownloads bumps the campaign download counter. A single
// increment commutes, so no transaction is needed.
func (r *CampaignRepository) IncrementDownloads(ctx context.Context, id string) error {
	query := `UPDATE type::record($id) SET supporters_count += 1`
	if err := r.db.Execute(ctx, query, map[string]interface{}{"id": id}); err != nil {
		return fmt.Errorf("failed to increment downloads: %w", err)
	}
	return nil
}

// Parsing helpers

func (r *CampaignRepository) extractCampaignFromResult(result interface{}) (*model.Campaign, error) {
	rows, ok := extractQueryResults(result)
	if !ok || len(rows) == 0 {
		return nil, errors.New("no campaign returned")
	}
	m, ok := rows[0].(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}
	return r.parseCampaignFromMap(m)
}

func (r *CampaignRepository) parseCampaignFromMap(m map[string]interface{}) (*model.Campaign, error) {
	c := &model.Campaign{}

	if id, ok := m["id"]; ok {
		c.ID = extractRecordID(id)
	}
	c.Slug = getString(m, "slug")
	c.Title = getString(m, "title")
	c.Description = getStringPtr(m, "description")
	c.ImageURL = getStringPtr(m, "image_url")
	c.CreatorID = getRecordID(m, "creator_id")
	if v, ok := m["moderation_status"].(string); ok {
		c.Status = model.CampaignStatus(v)
	} else {
		c.Status = model.CampaignStatusActive
	}
	c.RemovedOn = getTime(m, "removed_on")
	c.RemovalReason = getStringPtr(m, "removal_reason")
	c.AppealDeadline = getTime(m, "appeal_deadline")
	c.AppealCount = getInt(m, "appeal_count")
	c.ReportsCount = getInt(m, "reports_count")
	c.SupportersCount = getInt(m, "supporters_count")
	if v, ok := m["created_on"]; ok {
		c.CreatedOn = parseTime(v)
	}
	if v, ok := m["updated_on"]; ok {
		c.UpdatedOn = parseTime(v)
	}

	return c, nil
}

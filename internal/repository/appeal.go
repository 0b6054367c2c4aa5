package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/frameyourvoice/api/internal/database"
	"github.com/frameyourvoice/api/internal/model"
)

// AppealRepository handles appeal data access
type AppealRepository struct {
	db database.Database
}

// NewAppealRepository creates a new appeal repository
func NewAppealRepository(db database.Database) *AppealRepository {
	return &AppealRepository{db: db}
}

// Create stores a new appeal
func (r *AppealRepository) Create(ctx context.Context, appeal *model.Appeal) error {
	query := `
		CREATE appeal SET
			target_kind = $target_kind,
			target_id = type::record($target_id),
			submitted_by = type::record($submitted_by),
			message = $message,
			status = $status,
			created_on = time::now()
	`
	result, err := r.db.Query(ctx, query, map[string]interface{}{
		"target_kind":  appeal.Target.Kind,
		"target_id":    appeal.Target.ID,
		"submitted_by": appeal.SubmittedBy,
		"message":      appeal.Message,
		"status":       appeal.Status,
	})
	if err != nil {
		return fmt.Errorf("failed to create appeal: %w", err)
	}

	rows, ok := extractQueryResults(result)
	if !ok || len(rows) == 0 {
		return errors.New("no appeal returned")
	}
	m, ok := rows[0].(map[string]interface{})
	if !ok {
		return errors.New("unexpected result format")
	}
	created := r.parseAppealFromMap(m)
	appeal.ID = created.ID
	appeal.CreatedOn = created.CreatedOn
	return nil
}

// GetByID retrieves an appeal by ID. Returns nil without error when the
// record does not exist.
func (r *AppealRepository) GetByID(ctx context.Context, id string) (*model.Appeal, error) {
	query := `SELECT * FROM type::record($id)`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"id": id})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get appeal: %w", err)
	}

	m, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}
	return r.parseAppealFromMap(m), nil
}

// ListPending retrieves appeals awaiting a verdict, oldest first
func (r *AppealRepository) ListPending(ctx context.Context, limit int) ([]*model.Appeal, error) {
	query := `
		SELECT * FROM appeal
		WHERE status = $status
		ORDER BY created_on ASC
		LIMIT $limit
	`
	result, err := r.db.Query(ctx, query, map[string]interface{}{
		"status": model.AppealStatusPending,
		"limit":  limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list appeals: %w", err)
	}

	rows, ok := extractQueryResults(result)
	if !ok {
		return []*model.Appeal{}, nil
	}

	appeals := make([]*model.Appeal, 0, len(rows))
	for _, row := range rows {
		if m, ok := row.(map[string]interface{}); ok {
			appeals = append(appeals, r.parseAppealFromMap(m))
		}
	}
	return appeals, nil
}

// HasPendingForTarget reports whether the user already has an open
// appeal against this target
func (r *AppealRepository) HasPendingForTarget(ctx context.Context, target model.ReportTarget, userID string) (bool, error) {
	query := `
		SELECT count() FROM appeal
		WHERE target_kind = $target_kind
		AND target_id = type::record($target_id)
		AND submitted_by = type::record($user_id)
		AND status = $status
		GROUP ALL
	`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{
		"target_kind": target.Kind,
		"target_id":   target.ID,
		"user_id":     userID,
		"status":      model.AppealStatusPending,
	})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check pending appeals: %w", err)
	}
	if m, ok := result.(map[string]interface{}); ok {
		return getInt(m, "count") > 0, nil
	}
	return false, nil
}

// AddResolve contributes the appeal verdict to an atomic batch
func (r *AppealRepository) AddResolve(batch *database.AtomicBatch, id string, status model.AppealStatus, adminID string) {
	query := `
		UPDATE type::record($id) SET
			status = $status,
			resolved_by = type::record($admin_id),
			resolved_on = time::now()
	`
	batch.Add(query, map[string]interface{}{
		"id":       id,
		"status":   status,
		"admin_id": adminID,
	})
}

func (r *AppealRepository) parseAppealFromMap(m map[string]interface{}) *model.Appeal {
	a := &model.Appeal{}

	if id, ok := m["id"]; ok {
		a.ID = extractRecordID(id)
	}
	kind, targetID := parseTarget(m)
	a.Target = model.ReportTarget{Kind: model.TargetKind(kind), ID: targetID}
	a.SubmittedBy = getRecordID(m, "submitted_by")
	a.Message = getString(m, "message")
	if v, ok := m["status"].(string); ok {
		a.Status = model.AppealStatus(v)
	}
	if v, ok := m["created_on"]; ok {
		a.CreatedOn = parseTime(v)
	}
	if v := getRecordID(m, "resolved_by"); v != "" {
		a.ResolvedBy = &v
	}
	a.ResolvedOn = getTime(m, "resolved_on")

	return a
}

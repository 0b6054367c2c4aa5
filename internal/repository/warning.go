package repository

import (
	"context"
	"fmt"

	"github.com/frameyourvoice/api/internal/database"
	"github.com/frameyourvoice/api/internal/model"
)

// WarningRepository handles warning data access
type WarningRepository struct {
	db database.Database
}

// NewWarningRepository creates a new warning repository
func NewWarningRepository(db database.Database) *WarningRepository {
	return &WarningRepository{db: db}
}

// AddCreate contributes the warning insert to an atomic batch, using a
// caller-generated record ID so it can commit alongside the report
// update that produced it
func (r *WarningRepository) AddCreate(batch *database.AtomicBatch, warning *model.Warning) {
	vars := map[string]interface{}{
		"id":          warning.ID,
		"user_id":     warning.UserID,
		"target_kind": warning.Target.Kind,
		"target_id":   warning.Target.ID,
		"report_id":   warning.ReportID,
		"reason":      warning.Reason,
		"issued_by":   warning.IssuedBy,
	}
	setClause := `user_id = type::record($user_id), target_kind = $target_kind,
		target_id = type::record($target_id), report_id = type::record($report_id),
		reason = $reason, issued_by = type::record($issued_by),
		issued_on = time::now(), acknowledged = false`

	if warning.Details != nil && *warning.Details != "" {
		setClause += ", details = $details"
		vars["details"] = *warning.Details
	}

	batch.Add("CREATE type::record($id) SET "+setClause, vars)
}

// ListByUser retrieves all warnings issued to a user, newest first
func (r *WarningRepository) ListByUser(ctx context.Context, userID string) ([]*model.Warning, error) {
	query := `
		SELECT * FROM warning
		WHERE user_id = type::record($user_id)
		ORDER BY issued_on DESC
	`
	result, err := r.db.Query(ctx, query, map[string]interface{}{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to list warnings: %w", err)
	}

	rows, ok := extractQueryResults(result)
	if !ok {
		return []*model.Warning{}, nil
	}

	warnings := make([]*model.Warning, 0, len(rows))
	for _, row := range rows {
		if m, ok := row.(map[string]interface{}); ok {
			warnings = append(warnings, r.parseWarningFromMap(m))
		}
	}
	return warnings, nil
}

// Acknowledge marks a warning as seen by its recipient
func (r *WarningRepository) Acknowledge(ctx context.Context, id string) error {
	query := `UPDATE type::record($id) SET acknowledged = true`
	if err := r.db.Execute(ctx, query, map[string]interface{}{"id": id}); err != nil {
		return fmt.Errorf("failed to acknowledge warning: %w", err)
	}
	return nil
}

func (r *WarningRepository) parseWarningFromMap(m map[string]interface{}) *model.Warning {
	w := &model.Warning{}

	if id, ok := m["id"]; ok {
		w.ID = extractRecordID(id)
	}
	w.UserID = getRecordID(m, "user_id")
	kind, targetID := parseTarget(m)
	w.Target = model.ReportTarget{Kind: model.TargetKind(kind), ID: targetID}
	w.ReportID = getRecordID(m, "report_id")
	if v, ok := m["reason"].(string); ok {
		w.Reason = model.ReportReason(v)
	}
	w.Details = getStringPtr(m, "details")
	w.IssuedBy = getRecordID(m, "issued_by")
	if v, ok := m["issued_on"]; ok {
		w.IssuedOn = parseTime(v)
	}
	w.Acknowledged = getBool(m, "acknowledged")

	return w
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/frameyourvoice/api/internal/database"
	"github.com/frameyourvoice/api/internal/model"
)

// ReportRepository handles report data access
type ReportRepository struct {
	db database.Database
}

// NewReportRepository creates a new report repository
func NewReportRepository(db database.Database) *ReportRepository {
	return &ReportRepository{db: db}
}

// Create stores a new report. The created ID and timestamp are written
// back into the passed report.
func (r *ReportRepository) Create(ctx context.Context, report *model.Report) error {
	// Build query dynamically to avoid NULL vs NONE issues for optional fields
	setClause := `target_kind = $target_kind, target_id = type::record($target_id), reason = $reason, reported_by = $reported_by, status = $status, created_on = time::now()`
	vars := map[string]interface{}{
		"target_kind": report.Target.Kind,
		"target_id":   report.Target.ID,
		"reason":      report.Reason,
		"reported_by": report.ReportedBy,
		"status":      report.Status,
	}

	if report.Details != nil && *report.Details != "" {
		setClause += ", details = $details"
		vars["details"] = *report.Details
	}

	query := "CREATE report SET " + setClause
	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}

	created, err := r.extractReportFromResult(result)
	if err != nil {
		return fmt.Errorf("failed to extract report: %w", err)
	}

	report.ID = created.ID
	report.CreatedOn = created.CreatedOn
	return nil
}

// AddCreate contributes the report insert to an atomic batch, using a
// caller-generated record ID so the statement needs no read-back.
func (r *ReportRepository) AddCreate(batch *database.AtomicBatch, report *model.Report) {
	vars := map[string]interface{}{
		"id":          report.ID,
		"target_kind": report.Target.Kind,
		"target_id":   report.Target.ID,
		"reason":      report.Reason,
		"reported_by": report.ReportedBy,
		"status":      report.Status,
	}
	setClause := `target_kind = $target_kind, target_id = type::record($target_id), reason = $reason, reported_by = $reported_by, status = $status, created_on = time::now()`
	if report.Details != nil && *report.Details != "" {
		setClause += ", details = $details"
		vars["details"] = *report.Details
	}
	batch.Add("CREATE type::record($id) SET "+setClause, vars)
}

// GetByID retrieves a report by ID. Returns nil without error when the
// record does not exist.
func (r *ReportRepository) GetByID(ctx context.Context, id string) (*model.Report, error) {
	query := `SELECT * FROM type::record($id)`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"id": id})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	m, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}
	return r.parseReportFromMap(m)
}

// ListPending retrieves reports awaiting review, newest first
func (r *ReportRepository) ListPending(ctx context.Context, limit int) ([]*model.Report, error) {
	query := `
		SELECT * FROM report
		WHERE status = $status
		ORDER BY created_on DESC
		LIMIT $limit
	`
	result, err := r.db.Query(ctx, query, map[string]interface{}{
		"status": model.ReportStatusPending,
		"limit":  limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list pending reports: %w", err)
	}

	return r.parseReportsFromQuery(result)
}

// ListOpenByTarget retrieves all non-terminal reports against a target.
// These are the reports a dismissal cascades over.
func (r *ReportRepository) ListOpenByTarget(ctx context.Context, target model.ReportTarget) ([]*model.Report, error) {
	query := `
		SELECT * FROM report
		WHERE target_kind = $target_kind
		AND target_id = type::record($target_id)
		AND status IN [$pending, $reviewed]
		ORDER BY created_on ASC
	`
	result, err := r.db.Query(ctx, query, map[string]interface{}{
		"target_kind": target.Kind,
		"target_id":   target.ID,
		"pending":     model.ReportStatusPending,
		"reviewed":    model.ReportStatusReviewed,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list open reports: %w", err)
	}

	return r.parseReportsFromQuery(result)
}

// CountOpenByTarget counts non-terminal reports against a target
func (r *ReportRepository) CountOpenByTarget(ctx context.Context, target model.ReportTarget) (int, error) {
	query := `
		SELECT count() FROM report
		WHERE target_kind = $target_kind
		AND target_id = type::record($target_id)
		AND status IN [$pending, $reviewed]
		GROUP ALL
	`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{
		"target_kind": target.Kind,
		"target_id":   target.ID,
		"pending":     model.ReportStatusPending,
		"reviewed":    model.ReportStatusReviewed,
	})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to count open reports: %w", err)
	}
	if m, ok := result.(map[string]interface{}); ok {
		return getInt(m, "count"), nil
	}
	return 0, nil
}

// AddUpdate contributes a report field update to an atomic batch
func (r *ReportRepository) AddUpdate(batch *database.AtomicBatch, id string, updates map[string]interface{}) {
	query := "UPDATE type::record($id) SET "
	vars := map[string]interface{}{"id": id}

	// Record fields need casting to record references
	recordFields := map[string]bool{
		"reviewed_by": true,
	}

	first := true
	for key, value := range updates {
		if !first {
			query += ", "
		}
		if recordFields[key] {
			query += fmt.Sprintf("%s = type::record($%s)", key, key)
		} else {
			query += fmt.Sprintf("%s = $%s", key, key)
		}
		vars[key] = value
		first = false
	}

	batch.Add(query, vars)
}

// AddCloseOpenByTarget contributes the verdict cascade to an atomic
// batch: every non-terminal report against the target is closed with
// the given status, action and review metadata. Terminal reports are
// untouched, so re-running the cascade is a no-op.
func (r *ReportRepository) AddCloseOpenByTarget(batch *database.AtomicBatch, target model.ReportTarget, status model.ReportStatus, action model.ReportAction, adminID string) {
	query := `
		UPDATE report SET
			status = $new_status,
			action = $new_action,
			reviewed_by = type::record($admin_id),
			reviewed_on = time::now()
		WHERE target_kind = $target_kind
		AND target_id = type::record($target_id)
		AND status IN [$pending, $reviewed]
	`
	batch.Add(query, map[string]interface{}{
		"new_status":  status,
		"new_action":  action,
		"admin_id":    adminID,
		"target_kind": target.Kind,
		"target_id":   target.ID,
		"pending":     model.ReportStatusPending,
		"reviewed":    model.ReportStatusReviewed,
	})
}

// Parsing helpers

func (r *ReportRepository) extractReportFromResult(result interface{}) (*model.Report, error) {
	rows, ok := extractQueryResults(result)
	if !ok || len(rows) == 0 {
		return nil, errors.New("no report returned")
	}
	m, ok := rows[0].(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}
	return r.parseReportFromMap(m)
}

func (r *ReportRepository) parseReportFromMap(m map[string]interface{}) (*model.Report, error) {
	rep := &model.Report{}

	if id, ok := m["id"]; ok {
		rep.ID = extractRecordID(id)
	}
	kind, targetID := parseTarget(m)
	rep.Target = model.ReportTarget{Kind: model.TargetKind(kind), ID: targetID}
	if v, ok := m["reason"].(string); ok {
		rep.Reason = model.ReportReason(v)
	}
	rep.Details = getStringPtr(m, "details")
	rep.ReportedBy = getRecordID(m, "reported_by")
	if rep.ReportedBy == "" {
		rep.ReportedBy = getString(m, "reported_by")
	}
	if v, ok := m["status"].(string); ok {
		rep.Status = model.ReportStatus(v)
	}
	if v, ok := m["action"].(string); ok && v != "" {
		action := model.ReportAction(v)
		rep.Action = &action
	}
	if v := getRecordID(m, "reviewed_by"); v != "" {
		rep.ReviewedBy = &v
	}
	rep.ReviewedOn = getTime(m, "reviewed_on")
	if v, ok := m["created_on"]; ok {
		rep.CreatedOn = parseTime(v)
	}

	return rep, nil
}

func (r *ReportRepository) parseReportsFromQuery(result interface{}) ([]*model.Report, error) {
	rows, ok := extractQueryResults(result)
	if !ok {
		return []*model.Report{}, nil
	}

	reports := make([]*model.Report, 0, len(rows))
	for _, row := range rows {
		if m, ok := row.(map[string]interface{}); ok {
			rep, err := r.parseReportFromMap(m)
			if err == nil {
				reports = append(reports, rep)
			}
		}
	}
	return reports, nil
}

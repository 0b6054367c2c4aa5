package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/frameyourvoice/api/internal/database"
	"github.com/frameyourvoice/api/internal/model"
)

// SummaryRepository handles report summary data access. Summaries are a
// derived view over the report table, one row per reported target.
type SummaryRepository struct {
	db database.Database
}

// NewSummaryRepository creates a new summary repository
func NewSummaryRepository(db database.Database) *SummaryRepository {
	return &SummaryRepository{db: db}
}

// GetByID retrieves a summary by ID. Returns nil without error when the
// record does not exist.
func (r *SummaryRepository) GetByID(ctx context.Context, id string) (*model.ReportSummary, error) {
	query := `SELECT * FROM type::record($id)`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"id": id})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get summary: %w", err)
	}

	m, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}
	return r.parseSummaryFromMap(m)
}

// GetByTarget retrieves the summary for a target, or nil if no reports
// have ever been filed against it
func (r *SummaryRepository) GetByTarget(ctx context.Context, target model.ReportTarget) (*model.ReportSummary, error) {
	query := `
		SELECT * FROM report_summary
		WHERE target_kind = $target_kind
		AND target_id = type::record($target_id)
	`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{
		"target_kind": target.Kind,
		"target_id":   target.ID,
	})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get summary: %w", err)
	}

	m, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}
	return r.parseSummaryFromMap(m)
}

// ListPending retrieves summaries with open reports, most recently
// reported first
func (r *SummaryRepository) ListPending(ctx context.Context, limit int) ([]*model.ReportSummary, error) {
	query := `
		SELECT * FROM report_summary
		WHERE status = $status
		ORDER BY last_reported_on DESC
		LIMIT $limit
	`
	result, err := r.db.Query(ctx, query, map[string]interface{}{
		"status": model.SummaryStatusPending,
		"limit":  limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list summaries: %w", err)
	}

	return r.parseSummariesFromQuery(result)
}

// ListAll retrieves every summary, for reconciliation
func (r *SummaryRepository) ListAll(ctx context.Context) ([]*model.ReportSummary, error) {
	query := `SELECT * FROM report_summary ORDER BY last_reported_on DESC`
	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list summaries: %w", err)
	}

	return r.parseSummariesFromQuery(result)
}

// AddCreate contributes the first-report summary insert to a batch,
// using a caller-generated record ID
func (r *SummaryRepository) AddCreate(batch *database.AtomicBatch, summary *model.ReportSummary) {
	vars := map[string]interface{}{
		"id":            summary.ID,
		"target_kind":   summary.Target.Kind,
		"target_id":     summary.Target.ID,
		"pending_count": summary.PendingReportCount,
		"report_count":  summary.ReportCount,
		"status":        summary.Status,
	}
	setClause := `target_kind = $target_kind, target_id = type::record($target_id),
		pending_report_count = $pending_count, report_count = $report_count,
		first_reported_on = time::now(), last_reported_on = time::now(), status = $status`

	for key, value := range snapshotVars(summary) {
		setClause += fmt.Sprintf(", %s = $%s", key, key)
		vars[key] = value
	}

	batch.Add("CREATE type::record($id) SET "+setClause, vars)
}

// AddIncrement contributes the repeat-report summary update to a batch:
// both counters go up, the last-reported timestamp moves, the summary
// reopens if it was previously closed, and the display snapshot is
// refreshed from the current target.
func (r *SummaryRepository) AddIncrement(batch *database.AtomicBatch, summary *model.ReportSummary) {
	vars := map[string]interface{}{
		"id":     summary.ID,
		"status": model.SummaryStatusPending,
	}
	setClause := `pending_report_count += 1, report_count += 1,
		last_reported_on = time::now(), status = $status`

	for key, value := range snapshotVars(summary) {
		setClause += fmt.Sprintf(", %s = $%s", key, key)
		vars[key] = value
	}

	batch.Add("UPDATE type::record($id) SET "+setClause, vars)
}

// AddClose contributes the admin-decision summary update to a batch:
// the open count drops to zero and the summary takes its terminal
// status
func (r *SummaryRepository) AddClose(batch *database.AtomicBatch, id string, status model.SummaryStatus) {
	query := `UPDATE type::record($id) SET pending_report_count = 0, status = $status`
	batch.Add(query, map[string]interface{}{
		"id":     id,
		"status": status,
	})
}

// Update applies field updates directly, outside any batch. Used by the
// reconciler to repair drift.
func (r *SummaryRepository) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	query := "UPDATE type::record($id) SET "
	vars := map[string]interface{}{"id": id}

	first := true
	for key, value := range updates {
		if !first {
			query += ", "
		}
		query += fmt.Sprintf("%s = $%s", key, key)
		vars[key] = value
		first = false
	}

	if err := r.db.Execute(ctx, query, vars); err != nil {
		return fmt.Errorf("failed to update summary: %w", err)
	}
	return nil
}

// snapshotVars collects the non-nil display snapshot fields
func snapshotVars(summary *model.ReportSummary) map[string]interface{} {
	vars := make(map[string]interface{})
	if summary.CampaignTitle != nil {
		vars["campaign_title"] = *summary.CampaignTitle
	}
	if summary.CampaignImage != nil {
		vars["campaign_image"] = *summary.CampaignImage
	}
	if summary.CreatorName != nil {
		vars["creator_name"] = *summary.CreatorName
	}
	if summary.DisplayName != nil {
		vars["display_name"] = *summary.DisplayName
	}
	if summary.Username != nil {
		vars["username"] = *summary.Username
	}
	if summary.ProfileImage != nil {
		vars["profile_image"] = *summary.ProfileImage
	}
	return vars
}

// Parsing helpers

func (r *SummaryRepository) parseSummaryFromMap(m map[string]interface{}) (*model.ReportSummary, error) {
	s := &model.ReportSummary{}

	if id, ok := m["id"]; ok {
		s.ID = extractRecordID(id)
	}
	kind, targetID := parseTarget(m)
	s.Target = model.ReportTarget{Kind: model.TargetKind(kind), ID: targetID}
	s.PendingReportCount = getInt(m, "pending_report_count")
	s.ReportCount = getInt(m, "report_count")
	if v, ok := m["first_reported_on"]; ok {
		s.FirstReportedOn = parseTime(v)
	}
	if v, ok := m["last_reported_on"]; ok {
		s.LastReportedOn = parseTime(v)
	}
	if v, ok := m["status"].(string); ok {
		s.Status = model.SummaryStatus(v)
	}
	s.CampaignTitle = getStringPtr(m, "campaign_title")
	s.CampaignImage = getStringPtr(m, "campaign_image")
	s.CreatorName = getStringPtr(m, "creator_name")
	s.DisplayName = getStringPtr(m, "display_name")
	s.Username = getStringPtr(m, "username")
	s.ProfileImage = getStringPtr(m, "profile_image")

	return s, nil
}

func (r *SummaryRepository) parseSummariesFromQuery(result interface{}) ([]*model.ReportSummary, error) {
	rows, ok := extractQueryResults(result)
	if !ok {
		return []*model.ReportSummary{}, nil
	}

	summaries := make([]*model.ReportSummary, 0, len(rows))
	for _, row := range rows {
		if m, ok := row.(map[string]interface{}); ok {
			s, err := r.parseSummaryFromMap(m)
			if err == nil {
				summaries = append(summaries, s)
			}
		}
	}
	return summaries, nil
}

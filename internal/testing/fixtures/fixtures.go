// Package fixtures provides test data factories for e2e testing.
//
// Each factory method creates entities with sensible defaults while allowing
// customization via option functions. Factories handle database insertion
// and return fully populated models.
//
// Usage:
//
//	f := fixtures.New(tdb.DB)
//	creator := f.CreateUser(t)
//	campaign := f.CreateCampaign(t, creator)
//	report := f.CreateReport(t, fixtures.CampaignTarget(campaign), creator.ID)
package fixtures

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/frameyourvoice/api/internal/database"
	"github.com/frameyourvoice/api/internal/model"

	"golang.org/x/crypto/bcrypt"
)

// Factory creates test entities in the database
type Factory struct {
	db database.Database
}

// New creates a new fixture factory
func New(db database.Database) *Factory {
	return &Factory{db: db}
}

// randomID generates a random hex ID
func randomID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// ctx returns a context with timeout
func ctx() context.Context {
	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	// Store cancel to prevent leak warning
	_ = cancel
	return c
}

// CampaignTarget builds a report target pointing at a campaign
func CampaignTarget(c *model.Campaign) model.ReportTarget {
	return model.ReportTarget{Kind: model.TargetKindCampaign, ID: c.ID}
}

// ProfileTarget builds a report target pointing at a user profile
func ProfileTarget(u *model.User) model.ReportTarget {
	return model.ReportTarget{Kind: model.TargetKindProfile, ID: u.ID}
}

// ============================================================================
// User Fixtures
// ============================================================================

// UserOpts customizes user creation
type UserOpts struct {
	Email       string
	Username    string
	DisplayName string
	Password    string
	Role        model.UserRole
}

// CreateUser creates a user with optional customizations
func (f *Factory) CreateUser(t *testing.T, opts ...func(*UserOpts)) *model.User {
	t.Helper()

	o := &UserOpts{
		Email:       fmt.Sprintf("user_%s@test.local", randomID()),
		Username:    fmt.Sprintf("user_%s", randomID()),
		DisplayName: "Test User",
		Password:    "testpass123",
		Role:        model.UserRoleUser,
	}
	for _, fn := range opts {
		fn(o)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(o.Password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("fixtures: failed to hash password: %v", err)
	}

	query := `
		CREATE user CONTENT {
			email: $email,
			username: $username,
			display_name: $display_name,
			hash: $hash,
			role: $role,
			account_status: "active",
			banned: false,
			moderation_status: "active",
			reports_count: 0,
			supporters_count: 0,
			created_on: time::now(),
			updated_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"email":        o.Email,
		"username":     o.Username,
		"display_name": o.DisplayName,
		"hash":         string(hash),
		"role":         string(o.Role),
	}

	results, err := f.db.Query(ctx(), query, vars)
	if err != nil {
		t.Fatalf("fixtures: failed to create user: %v", err)
	}

	user := parseUserResult(t, results)
	user.Hash = nil // Don't expose hash in fixture
	return user
}

// CreateAdmin creates an admin user
func (f *Factory) CreateAdmin(t *testing.T) *model.User {
	return f.CreateUser(t, func(o *UserOpts) {
		o.Role = model.UserRoleAdmin
	})
}

// BanUser puts an existing user into the given ban state directly
func (f *Factory) BanUser(t *testing.T, user *model.User, status model.AccountStatus, deadline *time.Time) {
	t.Helper()

	query := `
		UPDATE type::record($id) SET
			account_status = $status,
			banned = $banned,
			appeal_deadline = $deadline,
			banned_on = time::now(),
			updated_on = time::now()
	`
	if err := f.db.Execute(ctx(), query, map[string]interface{}{
		"id":       user.ID,
		"status":   string(status),
		"banned":   status != model.AccountStatusActive,
		"deadline": deadline,
	}); err != nil {
		t.Fatalf("fixtures: failed to ban user: %v", err)
	}
	user.AccountStatus = status
	user.Banned = status != model.AccountStatusActive
	user.AppealDeadline = deadline
}

// ============================================================================
// Campaign Fixtures
// ============================================================================

// CampaignOpts customizes campaign creation
type CampaignOpts struct {
	Slug        string
	Title       string
	Description string
	Status      model.CampaignStatus
}

// CreateCampaign creates a campaign owned by the given creator
func (f *Factory) CreateCampaign(t *testing.T, creator *model.User, opts ...func(*CampaignOpts)) *model.Campaign {
	t.Helper()

	o := &CampaignOpts{
		Slug:        fmt.Sprintf("campaign-%s", randomID()),
		Title:       fmt.Sprintf("Campaign %s", randomID()),
		Description: "Test campaign description",
		Status:      model.CampaignStatusActive,
	}
	for _, fn := range opts {
		fn(o)
	}

	query := `
		CREATE campaign CONTENT {
			slug: $slug,
			title: $title,
			description: $description,
			creator_id: type::record($creator_id),
			moderation_status: $status,
			appeal_count: 0,
			reports_count: 0,
			supporters_count: 0,
			created_on: time::now(),
			updated_on: time::now()
		}
	`
	results, err := f.db.Query(ctx(), query, map[string]interface{}{
		"slug":        o.Slug,
		"title":       o.Title,
		"description": o.Description,
		"creator_id":  creator.ID,
		"status":      string(o.Status),
	})
	if err != nil {
		t.Fatalf("fixtures: failed to create campaign: %v", err)
	}

	return parseCampaignResult(t, results)
}

// RemoveCampaign puts an existing campaign into the given removed state
// directly, bypassing the moderation flow
func (f *Factory) RemoveCampaign(t *testing.T, campaign *model.Campaign, status model.CampaignStatus, deadline *time.Time) {
	t.Helper()

	query := `
		UPDATE type::record($id) SET
			moderation_status = $status,
			removed_on = time::now(),
			appeal_deadline = $deadline,
			updated_on = time::now()
	`
	if err := f.db.Execute(ctx(), query, map[string]interface{}{
		"id":       campaign.ID,
		"status":   string(status),
		"deadline": deadline,
	}); err != nil {
		t.Fatalf("fixtures: failed to remove campaign: %v", err)
	}
	campaign.Status = status
	campaign.AppealDeadline = deadline
}

// ============================================================================
// Report Fixtures
// ============================================================================

// ReportOpts customizes report creation
type ReportOpts struct {
	Reason  model.ReportReason
	Details string
	Status  model.ReportStatus
}

// CreateReport files a report against a target directly in the database
func (f *Factory) CreateReport(t *testing.T, target model.ReportTarget, reportedBy string, opts ...func(*ReportOpts)) *model.Report {
	t.Helper()

	o := &ReportOpts{
		Reason: model.ReportReasonSpam,
		Status: model.ReportStatusPending,
	}
	for _, fn := range opts {
		fn(o)
	}

	query := `
		CREATE report CONTENT {
			target_kind: $target_kind,
			target_id: type::record($target_id),
			reason: $reason,
			details: $details,
			reported_by: $reported_by,
			status: $status,
			created_on: time::now()
		}
	`
	results, err := f.db.Query(ctx(), query, map[string]interface{}{
		"target_kind": string(target.Kind),
		"target_id":   target.ID,
		"reason":      string(o.Reason),
		"details":     o.Details,
		"reported_by": reportedBy,
		"status":      string(o.Status),
	})
	if err != nil {
		t.Fatalf("fixtures: failed to create report: %v", err)
	}

	return parseReportResult(t, results)
}

// ============================================================================
// Appeal Fixtures
// ============================================================================

// AppealOpts customizes appeal creation
type AppealOpts struct {
	Message string
	Status  model.AppealStatus
}

// CreateAppeal files an appeal for a target directly in the database
func (f *Factory) CreateAppeal(t *testing.T, target model.ReportTarget, userID string, opts ...func(*AppealOpts)) *model.Appeal {
	t.Helper()

	o := &AppealOpts{
		Message: "Please take another look at this decision.",
		Status:  model.AppealStatusPending,
	}
	for _, fn := range opts {
		fn(o)
	}

	query := `
		CREATE appeal CONTENT {
			target_kind: $target_kind,
			target_id: type::record($target_id),
			submitted_by: type::record($submitted_by),
			message: $message,
			status: $status,
			created_on: time::now()
		}
	`
	results, err := f.db.Query(ctx(), query, map[string]interface{}{
		"target_kind":  string(target.Kind),
		"target_id":    target.ID,
		"submitted_by": userID,
		"message":      o.Message,
		"status":       string(o.Status),
	})
	if err != nil {
		t.Fatalf("fixtures: failed to create appeal: %v", err)
	}

	return parseAppealResult(t, results)
}

// ============================================================================
// Result Parsing Helpers
// ============================================================================

func parseUserResult(t *testing.T, results []interface{}) *model.User {
	t.Helper()
	data := extractFirstResult(t, results)
	return &model.User{
		ID:            getString(data, "id"),
		Email:         getString(data, "email"),
		Username:      getStringPtr(data, "username"),
		DisplayName:   getStringPtr(data, "display_name"),
		Role:          model.UserRole(getString(data, "role")),
		AccountStatus: model.AccountStatus(getString(data, "account_status")),
		Banned:        getBool(data, "banned"),
	}
}

func parseCampaignResult(t *testing.T, results []interface{}) *model.Campaign {
	t.Helper()
	data := extractFirstResult(t, results)
	return &model.Campaign{
		ID:        getString(data, "id"),
		Slug:      getString(data, "slug"),
		Title:     getString(data, "title"),
		CreatorID: getString(data, "creator_id"),
		Status:    model.CampaignStatus(getString(data, "moderation_status")),
	}
}

func parseReportResult(t *testing.T, results []interface{}) *model.Report {
	t.Helper()
	data := extractFirstResult(t, results)
	return &model.Report{
		ID: getString(data, "id"),
		Target: model.ReportTarget{
			Kind: model.TargetKind(getString(data, "target_kind")),
			ID:   getString(data, "target_id"),
		},
		Reason:     model.ReportReason(getString(data, "reason")),
		ReportedBy: getString(data, "reported_by"),
		Status:     model.ReportStatus(getString(data, "status")),
	}
}

func parseAppealResult(t *testing.T, results []interface{}) *model.Appeal {
	t.Helper()
	data := extractFirstResult(t, results)
	return &model.Appeal{
		ID: getString(data, "id"),
		Target: model.ReportTarget{
			Kind: model.TargetKind(getString(data, "target_kind")),
			ID:   getString(data, "target_id"),
		},
		SubmittedBy: getString(data, "submitted_by"),
		Message:     getString(data, "message"),
		Status:      model.AppealStatus(getString(data, "status")),
	}
}

// ============================================================================
// Data Extraction Helpers
// ============================================================================

func extractFirstResult(t *testing.T, results []interface{}) map[string]interface{} {
	t.Helper()
	if len(results) == 0 {
		t.Fatal("fixtures: no results returned")
	}

	// Handle SurrealDB response wrapper
	resp, ok := results[0].(map[string]interface{})
	if !ok {
		t.Fatalf("fixtures: unexpected result type: %T", results[0])
	}

	result, ok := resp["result"]
	if !ok {
		// Row returned directly without a wrapper
		return resp
	}

	// Handle array result
	if arr, ok := result.([]interface{}); ok {
		if len(arr) == 0 {
			t.Fatal("fixtures: empty result array")
		}
		data, ok := arr[0].(map[string]interface{})
		if !ok {
			t.Fatalf("fixtures: unexpected array item type: %T", arr[0])
		}
		return data
	}

	// Handle single result
	data, ok := result.(map[string]interface{})
	if !ok {
		t.Fatalf("fixtures: unexpected result type: %T", result)
	}
	return data
}

func getString(data map[string]interface{}, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}
	// Handle SurrealDB record ID type - could be a struct or map
	if v := data[key]; v != nil {
		if m, ok := v.(map[string]interface{}); ok {
			if tb, ok := m["tb"].(string); ok {
				if id := m["id"]; id != nil {
					return fmt.Sprintf("%s:%v", tb, id)
				}
			}
		}
		// Fallback: use string conversion but fix the format if needed
		s := fmt.Sprintf("%v", v)
		// Convert "{table id}" to "table:id"
		if len(s) > 2 && s[0] == '{' && s[len(s)-1] == '}' {
			inner := s[1 : len(s)-1]
			for i, c := range inner {
				if c == ' ' {
					return inner[:i] + ":" + inner[i+1:]
				}
			}
		}
		return s
	}
	return ""
}

func getStringPtr(data map[string]interface{}, key string) *string {
	if v, ok := data[key].(string); ok {
		return &v
	}
	return nil
}

func getBool(data map[string]interface{}, key string) bool {
	if v, ok := data[key].(bool); ok {
		return v
	}
	return false
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/frameyourvoice/api/internal/database"
	"github.com/frameyourvoice/api/internal/model"
)

// UserRepository handles user data access
type UserRepository struct {
	db database.Database
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{db: db}
}

// Create stores a new user
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	setClause := `email = $email, role = $role, account_status = $account_status,
		banned = $banned, reports_count = 0, moderation_status = $moderation_status,
		supporters_count = 0, created_on = time::now(), updated_on = time::now()`
	vars := map[string]interface{}{
		"email":             user.Email,
		"role":              user.Role,
		"account_status":    model.AccountStatusActive,
		"banned":            false,
		"moderation_status": model.UserModerationActive,
	}

	if user.Username != nil && *user.Username != "" {
		setClause += ", username = $username"
		vars["username"] = *user.Username
	}
	if user.DisplayName != nil && *user.DisplayName != "" {
		setClause += ", display_name = $display_name"
		vars["display_name"] = *user.DisplayName
	}
	if user.ProfileImage != nil && *user.ProfileImage != "" {
		setClause += ", profile_image = $profile_image"
		vars["profile_image"] = *user.ProfileImage
	}
	if user.Hash != nil && *user.Hash != "" {
		setClause += ", hash = $hash"
		vars["hash"] = *user.Hash
	}

	query := "CREATE user SET " + setClause
	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return database.ErrDuplicate
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	created, err := r.extractUserFromResult(result)
	if err != nil {
		return fmt.Errorf("failed to extract user: %w", err)
	}

	user.ID = created.ID
	user.AccountStatus = created.AccountStatus
	user.CreatedOn = created.CreatedOn
	return nil
}

// GetByID retrieves a user by ID. Returns nil without error when the
// record does not exist.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT * FROM type::record($id)`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"id": id})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	m, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}
	return r.parseUserFromMap(m)
}

// GetByEmail retrieves a user by email. Returns nil without error when
// no user matches.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT * FROM user WHERE email = $email`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"email": email})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	m, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}
	return r.parseUserFromMap(m)
}

// AddUpdate contributes a user field update to an atomic batch.
// Fields holding record references are cast; fields set to nil are
// UNSET so SurrealDB drops them instead of storing null.
func (r *UserRepository) AddUpdate(batch *database.AtomicBatch, id string, updates map[string]interface{}) {
	addRecordUpdate(batch, id, updates, map[string]bool{"banned_by": true})
}

// AddIncrementReports contributes the report counter bump to a batch
func (r *UserRepository) AddIncrementReports(batch *database.AtomicBatch, id string) {
	query := `UPDATE type::record($id) SET reports_count += 1, moderation_status = $under_review, updated_on = time::now()`
	batch.Add(query, map[string]interface{}{
		"id":           id,
		"under_review": model.UserModerationUnderReview,
	})
}

// IncrementSupporters bumps the creator-side download counter. A single
// increment commutes, so no transaction is needed.
func (r *UserRepository) IncrementSupporters(ctx context.Context, id string) error {
	query := `UPDATE type::record($id) SET supporters_count += 1`
	if err := r.db.Execute(ctx, query, map[string]interface{}{"id": id}); err != nil {
		return fmt.Errorf("failed to increment supporters: %w", err)
	}
	return nil
}

// addRecordUpdate builds an UPDATE statement shared by the user and
// campaign repositories
func addRecordUpdate(batch *database.AtomicBatch, id string, updates map[string]interface{}, recordFields map[string]bool) {
	query := "UPDATE type::record($id) SET "
	vars := map[string]interface{}{"id": id}

	first := true
	for key, value := range updates {
		if !first {
			query += ", "
		}
		switch {
		case value == nil:
			query += fmt.Sprintf("%s = NONE", key)
		case recordFields[key]:
			query += fmt.Sprintf("%s = type::record($%s)", key, key)
			vars[key] = value
		default:
			query += fmt.Sprintf("%s = $%s", key, key)
			vars[key] = value
		}
		first = false
	}
	query += ", updated_on = time::now()"

	batch.Add(query, vars)
}

// Parsing helpers

func (r *UserRepository) extractUserFromResult(result interface{}) (*model.User, error) {
	rows, ok := extractQueryResults(result)
	if !ok || len(rows) == 0 {
		return nil, errors.New("no user returned")
	}
	m, ok := rows[0].(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}
	return r.parseUserFromMap(m)
}

func (r *UserRepository) parseUserFromMap(m map[string]interface{}) (*model.User, error) {
	u := &model.User{}

	if id, ok := m["id"]; ok {
		u.ID = extractRecordID(id)
	}
	u.Email = getString(m, "email")
	u.Username = getStringPtr(m, "username")
	u.DisplayName = getStringPtr(m, "display_name")
	u.ProfileImage = getStringPtr(m, "profile_image")
	u.Hash = getStringPtr(m, "hash")
	if v, ok := m["role"].(string); ok {
		u.Role = model.UserRole(v)
	}
	if v, ok := m["account_status"].(string); ok {
		u.AccountStatus = model.AccountStatus(v)
	} else {
		u.AccountStatus = model.AccountStatusActive
	}
	u.Banned = getBool(m, "banned")
	u.BanReason = getStringPtr(m, "ban_reason")
	if v := getRecordID(m, "banned_by"); v != "" {
		u.BannedBy = &v
	}
	u.BannedOn = getTime(m, "banned_on")
	u.AppealDeadline = getTime(m, "appeal_deadline")
	u.ReportsCount = getInt(m, "reports_count")
	if v, ok := m["moderation_status"].(string); ok {
		u.ModerationState = model.UserModerationStatus(v)
	} else {
		u.ModerationState = model.UserModerationActive
	}
	u.HiddenOn = getTime(m, "hidden_on")
	u.SupportersCount = getInt(m, "supporters_count")
	if v, ok := m["created_on"]; ok {
		u.CreatedOn = parseTime(v)
	}
	if v, ok := m["updated_on"]; ok {
		u.UpdatedOn = parseTime(v)
	}

	return u, nil
}

package model

import "time"

// UserRole represents the role of a user in the system
type UserRole string

const (
	UserRoleUser  UserRole = "user"  // Default role
	UserRoleAdmin UserRole = "admin" // Staff: moderation queue, bans, appeals
)

// AccountStatus represents the ban state of a user account
type AccountStatus string

const (
	AccountStatusActive          AccountStatus = "active"
	AccountStatusBannedTemporary AccountStatus = "banned_temporary"
	AccountStatusBannedPermanent AccountStatus = "banned_permanent"
)

// UserModerationStatus mirrors the report state of a profile for display
// purposes. It is report-driven and independent of the ban state.
type UserModerationStatus string

const (
	UserModerationActive      UserModerationStatus = "active"
	UserModerationUnderReview UserModerationStatus = "under_review"
	UserModerationHidden      UserModerationStatus = "hidden"
)

// User represents a user account.
//
// AccountStatus is the source of truth for the ban state. The legacy
// Banned boolean is a derived view kept in sync by the moderation core
// for older clients; the two are never updated independently.
// AppealDeadline is present only while the account is banned_temporary.
type User struct {
	ID              string               `json:"id"`
	Email           string               `json:"email"`
	Username        *string              `json:"username,omitempty"`
	DisplayName     *string              `json:"display_name,omitempty"`
	ProfileImage    *string              `json:"profile_image,omitempty"`
	Hash            *string              `json:"-"` // Never expose password hash
	Role            UserRole             `json:"role"`
	AccountStatus   AccountStatus        `json:"account_status"`
	Banned          bool                 `json:"banned"` // Legacy mirror of AccountStatus
	BanReason       *string              `json:"ban_reason,omitempty"`
	BannedBy        *string              `json:"banned_by,omitempty"`
	BannedOn        *time.Time           `json:"banned_on,omitempty"`
	AppealDeadline  *time.Time           `json:"appeal_deadline,omitempty"`
	ReportsCount    int                  `json:"reports_count"`
	ModerationState UserModerationStatus `json:"moderation_status"`
	HiddenOn        *time.Time           `json:"hidden_on,omitempty"`
	SupportersCount int                  `json:"supporters_count"`
	CreatedOn       time.Time            `json:"created_on"`
	UpdatedOn       time.Time            `json:"updated_on"`
}

// IsAdmin returns true if the user has admin role
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// IsBanned returns true if the account is under any ban
func (u *User) IsBanned() bool {
	return u.AccountStatus != AccountStatusActive
}

// CanAppeal reports whether the user may still contest a temporary ban.
// Permanent bans never expose an appeal window.
func (u *User) CanAppeal(now time.Time) bool {
	if u.AccountStatus != AccountStatusBannedTemporary {
		return false
	}
	return u.AppealDeadline != nil && now.Before(*u.AppealDeadline)
}

// BanUserRequest is the body of the admin ban/unban endpoint. It accepts
// either the current shape (AccountStatus set explicitly) or the legacy
// shape (Banned boolean plus Permanent flag). Legacy input is normalized
// into the enum before any rule runs.
type BanUserRequest struct {
	AccountStatus *string `json:"account_status,omitempty"`
	Banned        *bool   `json:"banned,omitempty"`
	Permanent     bool    `json:"permanent"`
	BanReason     *string `json:"ban_reason,omitempty"`
}

// Normalize collapses the two accepted request shapes into a single
// AccountStatus. Returns false if neither shape is present.
func (r *BanUserRequest) Normalize() (AccountStatus, bool) {
	if r.AccountStatus != nil {
		return AccountStatus(*r.AccountStatus), true
	}
	if r.Banned == nil {
		return "", false
	}
	if !*r.Banned {
		return AccountStatusActive, true
	}
	if r.Permanent {
		return AccountStatusBannedPermanent, true
	}
	return AccountStatusBannedTemporary, true
}

// IsValidAccountStatus reports whether s is an enumerated account status
func IsValidAccountStatus(s string) bool {
	switch AccountStatus(s) {
	case AccountStatusActive,
		AccountStatusBannedTemporary,
		AccountStatusBannedPermanent:
		return true
	}
	return false
}

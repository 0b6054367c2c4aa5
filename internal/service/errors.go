package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Report Errors =====
var (
	ErrReportNotFound      = errors.New("report not found")
	ErrReportAlreadyClosed = errors.New("report already resolved or dismissed")
	ErrCannotReportSelf    = errors.New("cannot report yourself")
	ErrInvalidTarget       = errors.New("invalid report target")
	ErrInvalidReason       = errors.New("invalid report reason")
	ErrDetailsTooLong      = errors.New("details too long")
)

// ===== Moderation Decision Errors =====
var (
	ErrInvalidStatus         = errors.New("invalid report status")
	ErrInvalidAction         = errors.New("invalid report action")
	ErrActionStatusMismatch  = errors.New("action does not match status")
	ErrReasonRequired        = errors.New("reason is required")
	ErrSummaryNotFound       = errors.New("report summary not found")
	ErrSummaryAlreadyClosed  = errors.New("report summary already closed")
	ErrTargetNotFound        = errors.New("report target not found")
	ErrInvalidAccountStatus  = errors.New("invalid account status")
	ErrBanReasonRequired     = errors.New("ban reason is required")
	ErrBanRequestEmpty       = errors.New("no ban state supplied")
)

// ===== Appeal Errors =====
var (
	ErrAppealNotFound        = errors.New("appeal not found")
	ErrAppealAlreadyResolved = errors.New("appeal already resolved")
	ErrAppealAlreadyPending  = errors.New("an appeal is already pending for this target")
	ErrAppealDeadlinePassed  = errors.New("appeal deadline has passed")
	ErrNothingToAppeal       = errors.New("target is not under a temporary removal or ban")
	ErrAppealMessageRequired = errors.New("appeal message is required")
	ErrAppealMessageTooLong  = errors.New("appeal message too long")
	ErrNotAppealOwner        = errors.New("only the owner may appeal")
)

// ===== User Errors =====
var (
	ErrUserNotFound = errors.New("user not found")
)

// ===== Campaign Errors =====
var (
	ErrCampaignNotFound    = errors.New("campaign not found")
	ErrSlugTaken           = errors.New("slug already in use")
	ErrInvalidSlug         = errors.New("invalid slug")
	ErrTitleRequired       = errors.New("title is required")
	ErrTitleTooLong        = errors.New("title exceeds maximum length")
	ErrDescriptionTooLong  = errors.New("description exceeds maximum length")
	ErrCampaignUnavailable = errors.New("campaign is not available")
)

// ===== Notification Errors =====
var (
	ErrNotificationsDisabled = errors.New("notifications are disabled")
)

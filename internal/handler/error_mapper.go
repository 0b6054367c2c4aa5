package handler

import (
	"errors"

	"github.com/frameyourvoice/api/internal/model"
	"github.com/frameyourvoice/api/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails
// response. This centralizes error handling logic for all handlers,
// ensuring consistent HTTP status codes and error messages across the
// API.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	// ===== Authorization Errors → 403 =====
	switch {
	case errors.Is(err, service.ErrNotAppealOwner):
		return model.NewForbiddenError(err.Error())

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrReportNotFound):
		return model.NewNotFoundError("report")
	case errors.Is(err, service.ErrSummaryNotFound):
		return model.NewNotFoundError("report summary")
	case errors.Is(err, service.ErrTargetNotFound):
		return model.NewNotFoundError("reported target")
	case errors.Is(err, service.ErrAppealNotFound):
		return model.NewNotFoundError("appeal")
	case errors.Is(err, service.ErrUserNotFound):
		return model.NewNotFoundError("user")
	case errors.Is(err, service.ErrCampaignNotFound),
		errors.Is(err, service.ErrCampaignUnavailable):
		// Removed campaigns look identical to missing ones from outside
		return model.NewNotFoundError("campaign")

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrReportAlreadyClosed),
		errors.Is(err, service.ErrSummaryAlreadyClosed),
		errors.Is(err, service.ErrAppealAlreadyResolved),
		errors.Is(err, service.ErrAppealAlreadyPending),
		errors.Is(err, service.ErrSlugTaken):
		return model.NewConflictError(err.Error())

	// ===== Validation Errors → 422 =====
	case errors.Is(err, service.ErrCannotReportSelf),
		errors.Is(err, service.ErrInvalidTarget):
		return model.NewValidationError([]model.FieldError{{Field: "target", Message: err.Error()}})

	case errors.Is(err, service.ErrInvalidReason),
		errors.Is(err, service.ErrDetailsTooLong):
		return model.NewValidationError([]model.FieldError{{Field: "report", Message: err.Error()}})

	case errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidAction),
		errors.Is(err, service.ErrActionStatusMismatch),
		errors.Is(err, service.ErrReasonRequired):
		return model.NewValidationError([]model.FieldError{{Field: "moderation", Message: err.Error()}})

	case errors.Is(err, service.ErrInvalidAccountStatus),
		errors.Is(err, service.ErrBanReasonRequired),
		errors.Is(err, service.ErrBanRequestEmpty):
		return model.NewValidationError([]model.FieldError{{Field: "ban", Message: err.Error()}})

	case errors.Is(err, service.ErrAppealMessageRequired),
		errors.Is(err, service.ErrAppealMessageTooLong),
		errors.Is(err, service.ErrAppealDeadlinePassed),
		errors.Is(err, service.ErrNothingToAppeal):
		return model.NewValidationError([]model.FieldError{{Field: "appeal", Message: err.Error()}})

	case errors.Is(err, service.ErrInvalidSlug),
		errors.Is(err, service.ErrTitleRequired),
		errors.Is(err, service.ErrTitleTooLong),
		errors.Is(err, service.ErrDescriptionTooLong):
		return model.NewValidationError([]model.FieldError{{Field: "campaign", Message: err.Error()}})

	// ===== Default → 500 =====
	default:
		return model.NewInternalError("")
	}
}

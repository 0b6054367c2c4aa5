package service

import (
	"fmt"
	"time"

	"github.com/frameyourvoice/api/internal/model"
)

// The moderation rules engine. Decide is a pure function from a
// snapshot of the situation to a plan of record mutations and side
// effects; it performs no I/O. The transition executor in
// moderation.go turns the plan into one atomic batch.

// DecisionInput is everything a moderation verdict depends on
type DecisionInput struct {
	Status    model.ReportStatus // requested terminal status
	Action    model.ReportAction // admin's verdict
	Reason    model.ReportReason // from the originating report
	Permanent bool               // removals only

	Target  model.ReportTarget
	OwnerID string // campaign creator or the reported user
	AdminID string
	Now     time.Time
}

// Decision is the plan produced by the rules engine
type Decision struct {
	// Status and Action applied to the acted-on report(s)
	Status model.ReportStatus
	Action model.ReportAction

	// TargetUpdates are field mutations on the reported campaign or
	// user. A nil value means the field is deleted, not set to null.
	TargetUpdates map[string]interface{}

	// CascadeClose closes every non-terminal sibling report against
	// the target with Status/Action, not just the acted-on one
	CascadeClose bool

	// IssueWarning records a formal warning for the owner
	IssueWarning bool

	// Notice is the post-commit notification, nil when no owner is
	// known to notify
	Notice *Notice
}

// Notice is a planned owner notification
type Notice struct {
	UserID string
	Type   model.NotificationType
	Title  string
	Body   string
}

// Decide validates the requested verdict and produces the transition
// plan. Exactly three verdicts are legal:
//
//	dismissed + no_action  -> restore target, cascade-dismiss siblings
//	resolved  + warned     -> warn owner, target untouched
//	resolved  + removed    -> remove/ban target, close this report only
func Decide(in DecisionInput) (*Decision, error) {
	if !model.IsValidReportStatus(string(in.Status)) {
		return nil, ErrInvalidStatus
	}
	if !model.IsValidReportAction(string(in.Action)) {
		return nil, ErrInvalidAction
	}
	if !in.Status.IsTerminal() {
		return nil, ErrInvalidStatus
	}

	switch {
	case in.Status == model.ReportStatusDismissed && in.Action == model.ReportActionNoAction:
		return decideDismiss(in), nil
	case in.Status == model.ReportStatusResolved && in.Action == model.ReportActionWarned:
		return decideWarn(in), nil
	case in.Status == model.ReportStatusResolved && in.Action == model.ReportActionRemoved:
		return decideRemove(in)
	}
	return nil, ErrActionStatusMismatch
}

// decideDismiss restores the target to good standing. Report counters
// reset, any removal or ban is lifted, and every open sibling report is
// dismissed alongside, so nothing is left half-open.
func decideDismiss(in DecisionInput) *Decision {
	d := &Decision{
		Status:       model.ReportStatusDismissed,
		Action:       model.ReportActionNoAction,
		CascadeClose: true,
	}

	switch in.Target.Kind {
	case model.TargetKindCampaign:
		d.TargetUpdates = map[string]interface{}{
			"reports_count":     0,
			"moderation_status": model.CampaignStatusActive,
			"removed_on":        nil,
			"removal_reason":    nil,
			"appeal_deadline":   nil,
		}
		d.Notice = &Notice{
			UserID: in.OwnerID,
			Type:   model.NotificationTypeContentRestored,
			Title:  "Your campaign has been restored",
			Body:   "Our team reviewed the reports against your campaign and found no violation. It is visible again.",
		}
	case model.TargetKindProfile:
		d.TargetUpdates = map[string]interface{}{
			"reports_count":     0,
			"moderation_status": model.UserModerationActive,
			"hidden_on":         nil,
			"account_status":    model.AccountStatusActive,
			"banned":            false,
			"ban_reason":        nil,
			"banned_by":         nil,
			"banned_on":         nil,
			"appeal_deadline":   nil,
		}
		d.Notice = &Notice{
			UserID: in.OwnerID,
			Type:   model.NotificationTypeAccountRestored,
			Title:  "Your account is in good standing",
			Body:   "Our team reviewed the reports against your profile and found no violation.",
		}
	}

	if in.OwnerID == "" {
		d.Notice = nil
	}
	return d
}

// decideWarn resolves the report with a formal warning. The target's
// state is untouched; the warning and the notification carry the
// humanized reason.
func decideWarn(in DecisionInput) *Decision {
	d := &Decision{
		Status:       model.ReportStatusResolved,
		Action:       model.ReportActionWarned,
		IssueWarning: true,
	}

	if in.OwnerID != "" {
		subject := "profile"
		if in.Target.Kind == model.TargetKindCampaign {
			subject = "campaign"
		}
		d.Notice = &Notice{
			UserID: in.OwnerID,
			Type:   model.NotificationTypeWarning,
			Title:  "You've received a warning",
			Body: fmt.Sprintf("Your %s was reported for %s. It remains visible, but further violations may lead to removal.",
				subject, in.Reason.Humanize()),
		}
	}
	return d
}

// decideRemove takes the target down. Only the acted-on report closes;
// sibling reports stay open for individual review. Temporary removals
// get a fresh appeal deadline counted from now; a permanent removal
// deletes the deadline outright. The legacy banned flag moves together
// with the account status, and campaign appeal counters restart.
func decideRemove(in DecisionInput) (*Decision, error) {
	if in.Reason == "" {
		return nil, ErrReasonRequired
	}

	d := &Decision{
		Status: model.ReportStatusResolved,
		Action: model.ReportActionRemoved,
	}

	deadline := in.Now.AddDate(0, 0, model.AppealWindowDays)

	switch in.Target.Kind {
	case model.TargetKindCampaign:
		status := model.CampaignStatusRemovedTemporary
		if in.Permanent {
			status = model.CampaignStatusRemovedPermanent
		}
		d.TargetUpdates = map[string]interface{}{
			"moderation_status": status,
			"removed_on":        in.Now,
			"removal_reason":    string(in.Reason),
			"appeal_count":      0,
		}
		if in.Permanent {
			d.TargetUpdates["appeal_deadline"] = nil
		} else {
			d.TargetUpdates["appeal_deadline"] = deadline
		}
		if in.OwnerID != "" {
			body := fmt.Sprintf("Your campaign was removed for %s.", in.Reason.Humanize())
			if !in.Permanent {
				body += fmt.Sprintf(" You may appeal this decision until %s.", deadline.Format("January 2, 2006"))
			}
			d.Notice = &Notice{
				UserID: in.OwnerID,
				Type:   model.NotificationTypeContentRemoved,
				Title:  "Your campaign has been removed",
				Body:   body,
			}
		}
	case model.TargetKindProfile:
		status := model.AccountStatusBannedTemporary
		if in.Permanent {
			status = model.AccountStatusBannedPermanent
		}
		d.TargetUpdates = map[string]interface{}{
			"account_status":    status,
			"banned":            true,
			"ban_reason":        string(in.Reason),
			"banned_by":         in.AdminID,
			"banned_on":         in.Now,
			"moderation_status": model.UserModerationHidden,
			"hidden_on":         in.Now,
		}
		if in.Permanent {
			d.TargetUpdates["appeal_deadline"] = nil
		} else {
			d.TargetUpdates["appeal_deadline"] = deadline
		}
		if in.OwnerID != "" {
			body := fmt.Sprintf("Your account was banned for %s.", in.Reason.Humanize())
			if !in.Permanent {
				body += fmt.Sprintf(" You may appeal this decision until %s.", deadline.Format("January 2, 2006"))
			}
			d.Notice = &Notice{
				UserID: in.OwnerID,
				Type:   model.NotificationTypeAccountBanned,
				Title:  "Your account has been banned",
				Body:   body,
			}
		}
	}

	return d, nil
}

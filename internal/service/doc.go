// Package service implements the business rules of the Frame Your
// Voice API.
//
// The moderation core is split into a pure rules engine (rules.go),
// which maps an admin verdict and a target snapshot to a transition
// plan, and the executors (moderation.go, appeals.go, users.go), which
// read the pre-transaction state, commit the plan as one atomic batch
// and fire best-effort notifications after commit. Report intake and
// summary aggregation live in reports.go; campaign lifecycle and
// download tracking in campaigns.go.
//
// Services depend on the store interfaces in stores.go and return the
// sentinel errors in errors.go; handlers translate those into RFC 9457
// problem responses.
package service

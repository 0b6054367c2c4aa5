// Package jobs contains background processors that run alongside the
// HTTP server.
//
// The summary reconciler repairs drift in the derived report-summary
// view; the report table stays the source of truth. No job transitions
// temporary bans or removals when their appeal deadline lapses, that
// state is evaluated lazily at appeal submission.
package jobs

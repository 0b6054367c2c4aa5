// Package model defines the domain types for the Frame Your Voice API:
// users, campaigns, reports, report summaries, warnings, appeals and
// notifications, together with the request/response shapes exchanged at
// the HTTP boundary and the RFC 9457 problem-details error types.
//
// Types here are plain data with validation helpers; persistence lives
// in the repository package and business rules in the service package.
package model

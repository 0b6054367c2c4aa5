// Package handler exposes the HTTP surface of the Frame Your Voice
// API.
//
// Handlers decode and sanity-check the request, delegate to the
// service layer, and translate sentinel service errors into RFC 9457
// problem responses through MapServiceError. Successful responses use
// the {data} envelope from response.go. Admin routes sit behind the
// middleware.AdminAuth chain; handlers themselves never re-check the
// role.
package handler

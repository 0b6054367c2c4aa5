// Package middleware provides the HTTP middleware chain for the Frame
// Your Voice API: request IDs, structured request logging, panic
// recovery, CORS, gzip compression, bearer-token authentication and
// rate limiting.
//
// Auth populates the request context with the caller's identity;
// handlers read it back through GetUserID and GetClaims. AdminAuth
// additionally requires the admin role and fronts the moderation
// surface.
package middleware

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/frameyourvoice/api/internal/model"
	"github.com/frameyourvoice/api/pkg/jwt"
)

// TokenValidator defines the interface for token validation
type TokenValidator interface {
	Validate(token string) (*jwt.Claims, error)
}

// ClaimsKey is the context key for JWT claims
const ClaimsKey contextKey = "claims"

// Auth returns a middleware that requires a valid bearer token
func Auth(validator TokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, problem := authenticate(r, validator)
			if problem != nil {
				problem.WriteJSON(w)
				return
			}
			next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
		})
	}
}

// AdminAuth returns a middleware that requires a valid bearer token
// carrying the admin role. It fronts the moderation surface.
func AdminAuth(validator TokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, problem := authenticate(r, validator)
			if problem != nil {
				problem.WriteJSON(w)
				return
			}
			if !claims.IsAdmin() {
				model.NewForbiddenError("admin access required").WriteJSON(w)
				return
			}
			next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
		})
	}
}

// OptionalAuth is like Auth but doesn't require authentication. It sets
// user info in context if a valid token is present; anonymous requests
// pass through untouched.
func OptionalAuth(validator TokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			claims, err := validator.Validate(token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
		})
	}
}

// GetUserID extracts the user ID from context
func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(UserIDKey).(string); ok {
		return id
	}
	return ""
}

// GetClaims extracts the JWT claims from context
func GetClaims(ctx context.Context) *jwt.Claims {
	if claims, ok := ctx.Value(ClaimsKey).(*jwt.Claims); ok {
		return claims
	}
	return nil
}

func authenticate(r *http.Request, validator TokenValidator) (*jwt.Claims, *model.ProblemDetails) {
	token, ok := bearerToken(r)
	if !ok {
		return nil, model.NewUnauthorizedError("missing or malformed authorization header")
	}

	claims, err := validator.Validate(token)
	if err != nil {
		switch err {
		case jwt.ErrTokenExpired:
			return nil, model.NewUnauthorizedError("token expired")
		case jwt.ErrInvalidSignature:
			return nil, model.NewUnauthorizedError("invalid token signature")
		default:
			return nil, model.NewUnauthorizedError("invalid token")
		}
	}
	return claims, nil
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func withClaims(ctx context.Context, claims *jwt.Claims) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, claims.UserID)
	return context.WithValue(ctx, ClaimsKey, claims)
}

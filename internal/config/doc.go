// Package config manages application configuration for the Frame Your
// Voice API.
//
// The config package loads and validates configuration from environment
// variables. All configuration is centralized here to provide a single
// source of truth.
//
// # Configuration Loading
//
// Configuration is loaded from environment variables:
//
//	cfg, _ := config.Load()
//	if err := cfg.Validate(); err != nil { ... }
//
// # Configuration Groups
//
// Configuration is organized into logical groups:
//
//   - ServerConfig: HTTP server settings (port, timeouts, CORS)
//   - DatabaseConfig: SurrealDB connection settings
//   - JWTConfig: JWT signing and validation settings
//   - RateLimitConfig: per-caller request throttling
//   - JobsConfig: background job intervals
//   - NotificationsConfig: in-app notification toggle
//
// # Environment Variables
//
// Key environment variables:
//
//	SERVER_PORT                - HTTP server port (default: 8080)
//	DB_HOST, DB_PORT           - SurrealDB endpoint
//	DB_NAMESPACE, DB_DATABASE  - SurrealDB namespace and database
//	DB_USER, DB_PASSWORD       - Database credentials
//	JWT_PRIVATE_KEY_PATH       - RS256 private key (PEM)
//	JWT_PUBLIC_KEY_PATH        - RS256 public key (PEM)
//	JWT_EXPIRATION_MINS        - Token lifetime in minutes
//	RATE_LIMIT_PER_MINUTE      - Sustained requests per caller
//	SUMMARY_RECONCILE_INTERVAL - Report summary repair cadence
//	NOTIFICATIONS_ENABLED      - In-app notification dispatch toggle
//
// Sensible defaults are provided for development.
package config

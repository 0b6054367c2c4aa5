// Package database provides the database abstraction layer for the
// Frame Your Voice API.
//
// The Database interface abstracts SurrealDB so repositories never
// touch the driver directly:
//   - Query: multiple results (SELECT lists)
//   - QueryOne: single result (SELECT by ID)
//   - Execute: no results (CREATE/UPDATE/DELETE)
//
// # Transactions
//
// Transactions here are BATCH-BASED, not connection-level. Statements
// accumulate in memory and are wrapped in BEGIN TRANSACTION / COMMIT
// TRANSACTION at commit time, executing atomically as one request.
// There is no isolation between Add() calls, which is why every
// moderation workflow performs its reads BEFORE opening a batch and
// derives all writes from that pre-transaction snapshot. Rollback()
// merely discards accumulated statements.
//
// Prefer AtomicBatch (transaction.go) over BeginTx for new code.
//
// # Errors
//
// Check the sentinel errors with errors.Is():
//
//	if errors.Is(err, database.ErrNotFound) {
//	    // missing record
//	}
package database

import (
	"context"
	"errors"
)

// Standard errors for database operations.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate indicates a unique constraint violation (e.g., duplicate slug).
	ErrDuplicate = errors.New("duplicate record")

	// ErrConnection indicates a failure to connect to or communicate with the database.
	ErrConnection = errors.New("database connection error")

	// ErrQuery indicates a query execution failure.
	ErrQuery = errors.New("query error")
)

// Database defines the interface for database operations
type Database interface {
	// Connection management
	Connect(ctx context.Context) error
	Close() error
	Ping(ctx context.Context) error

	// Query executes a query and returns results
	Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error)

	// QueryOne executes a query and returns a single result
	QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error)

	// Execute runs a query without returning results (for mutations)
	Execute(ctx context.Context, query string, vars map[string]interface{}) error

	// Transaction support
	BeginTx(ctx context.Context) (Transaction, error)
}

// Transaction represents an accumulated batch committed atomically
type Transaction interface {
	Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error)
	QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error)
	Execute(ctx context.Context, query string, vars map[string]interface{}) error
	Commit() error
	Rollback() error
}

// Config holds database configuration
type Config struct {
	Host      string
	Port      string
	User      string
	Password  string
	Namespace string
	Database  string
}

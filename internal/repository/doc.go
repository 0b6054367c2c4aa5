// Package repository implements data access for the Frame Your Voice
// API on top of the database abstraction.
//
// Repositories own all SurrealQL. Single-entity reads and writes go
// through the Database interface directly; multi-entity moderation
// writes are contributed as statements to a database.AtomicBatch via
// the Add* methods, so the service layer can commit a decision's
// report, target, warning and summary mutations as one transaction.
package repository

// Package store defines the persistence contracts for the application:
// the TaskStore interface, the shared error taxonomy, and transaction
// helpers. Implementations live under internal/platform.
package store

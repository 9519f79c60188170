// Package storage defines how the checker persists URL checks and schedules
// their jobs. Check rows and check jobs live in the same database, so a pending
// check and its job are created atomically through WithTx.
//
//go:generate mockgen -package mockstorage -source=interface.go -destination=mock/mockstorage.go *
package storage

import "context"

// AllStorage is what both plain and transactional handles offer: check
// persistence and job enqueueing.
type AllStorage interface {
	CheckStorage
	JobStorage
}

// TxStorage is a handle bound to one transaction. Checks stored and jobs added
// through it become visible together on Commit. The handle must not be used
// after Commit or Rollback.
type TxStorage interface {
	AllStorage

	// Commit finalizes the transaction, persisting all changes.
	Commit() error
	// Rollback aborts the transaction, discarding all uncommitted changes.
	Rollback() error
}

// Storage is the process-wide handle held by the checker and the worker.
type Storage interface {
	AllStorage

	// Close releases the connection pool.
	Close() error

	// Begin starts a transaction.
	Begin(ctx context.Context) (TxStorage, error)
	// WithTx runs cb in a transaction, committing when cb returns nil and
	// rolling back otherwise. Enqueue uses it to store pending checks and add
	// their job as one unit.
	WithTx(ctx context.Context, cb func(storage AllStorage) error) error
}

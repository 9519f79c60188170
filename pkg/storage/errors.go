package storage

import "errors"

// Transaction state errors returned by TxStorage implementations. The checker
// stores pending checks and their job in one transaction, so these only show
// up when that flow is nested or finished twice.
var (
	// ErrAlreadyInTx is returned by Begin on a handle that is already
	// transactional.
	ErrAlreadyInTx = errors.New("already in tx")
	// ErrNotInTx is returned by Commit or Rollback on a handle that is not
	// transactional.
	ErrNotInTx = errors.New("not in tx")
)

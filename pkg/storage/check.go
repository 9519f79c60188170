package storage

import (
	"context"
	"linkguard/pkg/domain"
	"time"
)

// CheckUpdates describes a set of optional fields that can be applied to an
// existing check during an update. Only non-nil fields will be updated.
type CheckUpdates struct {
	// Status is the new status to set for the check.
	Status domain.CheckStatus
	// Verdict, when provided, replaces the stored verdict.
	Verdict *domain.Verdict
	// LastError, when provided, sets the last error text. An empty string value
	// indicates the error should be cleared (set to NULL).
	LastError *string
	// MaxAttempts, when provided alongside a Failed status, ensures that status
	// is only updated to Failed if the current attempts after increment would
	// reach this threshold. A value <= 0 disables this guard.
	MaxAttempts int
}

// UserChecks groups a page of checks returned for a user together with an
// optional NextCursor used for pagination.
type UserChecks struct {
	// Checks contains the current page of check records.
	Checks []domain.Check
	// NextCursor points to the timestamp to be used as the cursor for fetching
	// the next page. It is nil when there is no next page.
	NextCursor *time.Time
}

// CheckStorage defines CRUD and query operations related to checks. Deleted
// checks are soft-deleted and invisible to every query.
type CheckStorage interface {
	// StoreChecks inserts one or more checks and returns the stored rows as they
	// exist in the database (including generated fields).
	StoreChecks(ctx context.Context, checks ...domain.Check) ([]domain.Check, error)
	// UpdatePendingChecksByURL updates all pending checks for the given URL using
	// the provided field set.
	// Notes:
	// - Attempts is incremented by 1 and updated_at is set automatically.
	// - If Status is Failed and MaxAttempts > 0, status is only set to Failed
	//   when the attempts after increment reach MaxAttempts; otherwise
	//   status remains unchanged (i.e., stays Pending).
	UpdatePendingChecksByURL(ctx context.Context, URL string, updates CheckUpdates) error
	// PendingCheckCountByURL returns the total number of pending checks for the given URL
	// across all users.
	PendingCheckCountByURL(ctx context.Context, URL string) (int64, error)
	// UpdateCheckByID updates a single check identified by its ID and returns the updated row,
	// or nil when it does not exist. Attempts are not changed.
	UpdateCheckByID(ctx context.Context, ID domain.CheckID, updates CheckUpdates) (*domain.Check, error)
	// DeleteCheck performs a soft delete for the given check ID and user ID and
	// returns the deleted check, or nil if it was not found.
	DeleteCheck(ctx context.Context, userID domain.UserID, ID domain.CheckID) (*domain.Check, error)
	// UserChecks returns a page of checks for a user created before the optional
	// cursor time, limited by the given limit. If status is non-empty, results are
	// filtered to records with the given status.
	UserChecks(ctx context.Context,
		userID domain.UserID,
		status domain.CheckStatus,
		cursor time.Time,
		limit uint) (UserChecks, error)
	// CheckByID fetches a check by its ID for the given user. Returns nil when not found.
	CheckByID(ctx context.Context, userID domain.UserID, ID domain.CheckID) (*domain.Check, error)
	// LastCompletedCheckByURL returns the most recent completed check for a given URL across all users.
	// Returns nil when no completed check exists for the URL.
	LastCompletedCheckByURL(ctx context.Context, URL string) (*domain.Check, error)
}

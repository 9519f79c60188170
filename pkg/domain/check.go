package domain

import (
	"time"

	"github.com/google/uuid"
)

// CheckID uniquely identifies an asynchronous URL check.
// It wraps uuid.UUID to provide type safety at the domain layer.
type CheckID uuid.UUID

// CheckStatus represents the lifecycle state of a check.
type CheckStatus string

const (
	// CheckStatusPending indicates the check has been enqueued but not processed yet.
	CheckStatusPending CheckStatus = "PENDING"
	// CheckStatusCompleted indicates the decision policy ran and a verdict is available.
	CheckStatusCompleted CheckStatus = "COMPLETED"
	// CheckStatusFailed indicates the check ended with an error; see LastError and Attempts for details.
	CheckStatusFailed CheckStatus = "FAILED"
)

// Check represents a single asynchronous URL check requested by a user.
type Check struct {
	// ID is the unique identifier of the check.
	ID CheckID `json:"id"`
	// UserID is the identifier of the user who requested the check.
	UserID UserID `json:"userId"`

	// URL is the normalized URL, used to deduplicate work across users.
	URL string `json:"url"`
	// RawURL is the URL as it was submitted; features are extracted from it.
	RawURL string `json:"rawUrl"`
	// Status is the current lifecycle state of the check.
	Status CheckStatus `json:"status"`
	// Verdict is set once the check is completed.
	Verdict *Verdict `json:"verdict,omitempty"`

	// Attempts is the number of times the system has tried to process this check.
	Attempts uint `json:"attempts"`
	// LastError stores the most recent processing error, if any.
	LastError string `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	// DeletedAt marks when the check was soft-deleted; zero value means not deleted.
	DeletedAt time.Time `json:"-"`
}

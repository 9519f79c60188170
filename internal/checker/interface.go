package checker

import (
	"context"
	"linkguard/pkg/domain"
)

//go:generate mockgen -package mockchecker -source=interface.go -destination=mock/mockchecker.go *
type Checker interface {
	Enqueue(ctx context.Context, userID domain.UserID, rawURL string) (*domain.Check, error)
	UserChecks(ctx context.Context,
		userID domain.UserID,
		status domain.CheckStatus,
		cursor string,
		limit uint) ([]domain.Check, string, error)
	Result(ctx context.Context, userID domain.UserID, checkID domain.CheckID) (*domain.Check, error)
	Delete(ctx context.Context, userID domain.UserID, checkID domain.CheckID) error
	// Process runs the decision policy for a normalized URL and settles every
	// pending check waiting on it.
	Process(ctx context.Context, URL string, rawURL string) error
}

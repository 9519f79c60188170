package checker

import (
	"context"
	"errors"
	"fmt"
	"linkguard/internal/config"
	"linkguard/internal/phishing"
	"linkguard/pkg/domain"
	"linkguard/pkg/logger"
	"linkguard/pkg/serrors"
	"linkguard/pkg/storage"
	"time"

	"go.uber.org/zap"
)

// Options configure how check jobs are enqueued and how verdicts are reused.
type Options struct {
	// MaxAttempts is the maximum number of attempts the background worker makes
	// for a URL before its pending checks are marked failed.
	MaxAttempts int
	// ResultCacheTTL is the duration during which a completed verdict makes new
	// checks of the same URL reuse it instead of enqueueing a duplicate job.
	ResultCacheTTL time.Duration
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		MaxAttempts:    cfg.Checker.MaxAttempts,
		ResultCacheTTL: cfg.Checker.ResultCacheTTL,
	}
}

// checker is the concrete implementation of the Checker interface.
// It coordinates persistence, job enqueueing and the decision policy.
type checker struct {
	options Options
	storage storage.Storage
	decider phishing.Decider
}

// Enqueue stores a new check for the given URL and user, and attempts to
// enqueue a background job to process it. If a completed check exists for the
// same URL while its job is still deduplicated, the new check is immediately
// completed with that verdict.
func (c checker) Enqueue(ctx context.Context, userID domain.UserID, rawURL string) (*domain.Check, error) {
	var check *domain.Check
	URL, err := NormalizeURL(rawURL)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrBadRequest, err, "invalid URL")
	}

	if err := c.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		res, err := tx.StoreChecks(ctx, domain.Check{
			UserID: userID,
			URL:    URL,
			RawURL: rawURL,
			Status: domain.CheckStatusPending,
		})
		if err != nil {
			return fmt.Errorf("could not store check: %w", err)
		}
		check = &res[0]

		jobAdded, err := tx.AddJob(ctx, JobArgs{
			URL:             URL,
			RawURL:          rawURL,
			maxAttempts:     c.options.MaxAttempts,
			uniqueJobPeriod: c.options.ResultCacheTTL,
		}, nil)
		if err != nil {
			return fmt.Errorf("could not add job: %w", err)
		}

		// river unique jobs prevent having duplicate jobs for the same URL.
		if !jobAdded {
			last, err := tx.LastCompletedCheckByURL(ctx, URL)
			if err != nil {
				return fmt.Errorf("could not get last completed check: %w", err)
			}

			if last != nil && last.Verdict != nil {
				updated, err := tx.UpdateCheckByID(ctx, check.ID, storage.CheckUpdates{
					Status:  domain.CheckStatusCompleted,
					Verdict: last.Verdict,
				})
				if err != nil {
					return fmt.Errorf("could not update check: %w", err)
				}
				if updated != nil {
					check = updated
				}
			} // else: the queued job settles every pending check of the URL.
		}

		return nil
	}); err != nil {
		return nil, fmt.Errorf("could not enqueue URL: %w", err)
	}

	return check, nil
}

// Process runs the decision policy for URL. It returns a conflict error when no
// pending check waits on the URL anymore, so the job can be dropped. An
// unavailable model leaves the pending checks untouched.
func (c checker) Process(ctx context.Context, URL string, rawURL string) error {
	pending, err := c.storage.PendingCheckCountByURL(ctx, URL)
	if err != nil {
		return fmt.Errorf("could not count pending checks: %w", err)
	}
	if pending == 0 {
		return serrors.With(serrors.ErrConflict, "no pending checks for URL")
	}

	verdict, err := c.decider.Decide(ctx, rawURL)
	if errors.Is(err, serrors.ErrUnavailable) {
		return fmt.Errorf("could not decide URL: %w", err)
	}
	if err != nil {
		msg := err.Error()
		if uErr := c.storage.UpdatePendingChecksByURL(ctx, URL, storage.CheckUpdates{
			Status:      domain.CheckStatusFailed,
			LastError:   &msg,
			MaxAttempts: c.options.MaxAttempts,
		}); uErr != nil {
			logger.Error(ctx, "could not record check failure", zap.Error(uErr))
		}

		return fmt.Errorf("could not decide URL: %w", err)
	}

	empty := ""
	if err := c.storage.UpdatePendingChecksByURL(ctx, URL, storage.CheckUpdates{
		Status:    domain.CheckStatusCompleted,
		Verdict:   &verdict,
		LastError: &empty,
	}); err != nil {
		return fmt.Errorf("could not complete pending checks: %w", err)
	}

	logger.Debug(ctx, "URL checked",
		zap.Int64("pending", pending),
		zap.String("label", string(verdict.Label)),
		zap.String("source", string(verdict.Source)))

	return nil
}

// UserChecks returns a page of checks for the given user filtered by status.
// It supports cursor-based pagination using an RFC3339 timestamp string and
// returns the next cursor when more results are available.
func (c checker) UserChecks(ctx context.Context,
	userID domain.UserID,
	status domain.CheckStatus,
	cursor string,
	limit uint) ([]domain.Check, string, error) {
	var cursorTime time.Time
	if cursor != "" {
		t, err := time.Parse(time.RFC3339Nano, cursor)
		if err != nil {
			return nil, "", serrors.Wrap(serrors.ErrBadRequest, err, "invalid cursor")
		}
		cursorTime = t
	}

	page, err := c.storage.UserChecks(ctx, userID, status, cursorTime, limit)
	if err != nil {
		return nil, "", fmt.Errorf("could not get user checks: %w", err)
	}

	var next string
	if page.NextCursor != nil {
		next = page.NextCursor.Format(time.RFC3339Nano)
	}

	return page.Checks, next, nil
}

// Result fetches a single check by ID for the given user.
func (c checker) Result(ctx context.Context, userID domain.UserID, checkID domain.CheckID) (*domain.Check, error) {
	res, err := c.storage.CheckByID(ctx, userID, checkID)
	if err != nil {
		return nil, fmt.Errorf("could not get check: %w", err)
	}
	if res == nil {
		return nil, serrors.With(serrors.ErrNotFound, "check not found")
	}

	return res, nil
}

// Delete soft-deletes a check belonging to the given user. Jobs are left in
// the queue since other checks may depend on the same URL.
func (c checker) Delete(ctx context.Context, userID domain.UserID, checkID domain.CheckID) error {
	res, err := c.storage.DeleteCheck(ctx, userID, checkID)
	if err != nil {
		return fmt.Errorf("could not delete check: %w", err)
	}
	if res == nil {
		return serrors.With(serrors.ErrNotFound, "check not found")
	}

	return nil
}

// New creates a new Checker backed by the provided storage and decider.
func New(storage storage.Storage, decider phishing.Decider, options Options) Checker {
	return &checker{
		options: options,
		storage: storage,
		decider: decider,
	}
}

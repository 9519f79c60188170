package worker

import (
	"context"
	"errors"
	"fmt"
	"linkguard/internal/checker"
	"linkguard/pkg/logger"
	"linkguard/pkg/serrors"
	"time"

	"github.com/riverqueue/river"
	"go.uber.org/zap"
)

// DefaultUnavailableBackoff is how long a job waits when the classifier
// cannot be loaded.
const DefaultUnavailableBackoff = 30 * time.Second

// CheckURLWorker is a River worker that settles pending checks of a URL using
// checker.Checker.
//
// A conflict from the checker means nobody waits on the URL anymore and the
// job is cancelled. An unavailable classifier snoozes the job for Backoff.
// Other errors are returned so River retries them.
type CheckURLWorker struct {
	river.WorkerDefaults[checker.JobArgs]

	checker checker.Checker
	// Backoff is the snooze duration used while the classifier is unavailable.
	Backoff time.Duration
}

// NewCheckURLWorker constructs a CheckURLWorker using the provided checker.
func NewCheckURLWorker(checker checker.Checker) *CheckURLWorker {
	return &CheckURLWorker{
		checker: checker,
		Backoff: DefaultUnavailableBackoff,
	}
}

// Work processes a single check job and maps errors to River actions.
func (w *CheckURLWorker) Work(ctx context.Context, job *river.Job[checker.JobArgs]) error {
	ctx = logger.WithFields(ctx, zap.Int64("jobID", job.ID), zap.String("URL", job.Args.URL))

	err := w.checker.Process(ctx, job.Args.URL, job.Args.RawURL)
	if err != nil {
		if errors.Is(err, serrors.ErrConflict) {
			logger.Debug(ctx, "no pending checks left for URL", zap.Error(err))

			return river.JobCancel(err) //nolint: wrapcheck
		}

		logger.Error(ctx, "error in checking URL", zap.Error(err))

		if errors.Is(err, serrors.ErrUnavailable) {
			return river.JobSnooze(w.Backoff) //nolint: wrapcheck
		}

		return fmt.Errorf("could not check URL: %w", err)
	}

	logger.Info(ctx, "URL checked successfully")

	return nil
}

package worker

import (
	"context"
	"fmt"
	"linkguard/internal/checker"
	"linkguard/pkg/logger"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"go.uber.org/zap/exp/zapslog"
)

// Options configure the River client started by Start.
type Options struct {
	// Workers is the maximum number of check jobs processed concurrently.
	Workers int
}

// Start registers the check worker and starts a River client on dbPool.
func Start(ctx context.Context,
	dbPool *pgxpool.Pool,
	checker checker.Checker,
	options Options) (*river.Client[pgx.Tx], error) {
	maxWorkers := options.Workers
	if maxWorkers <= 0 {
		maxWorkers = 1
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewCheckURLWorker(checker))

	riverClient, err := river.NewClient(riverpgxv5.New(dbPool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: maxWorkers},
		},
		Workers: workers,
		Logger:  slog.New(zapslog.NewHandler(logger.Get(ctx).Core())),
	})
	if err != nil {
		return nil, fmt.Errorf("could not create river queue client: %w", err)
	}

	if err := riverClient.Start(ctx); err != nil {
		return nil, fmt.Errorf("could not start river queue client: %w", err)
	}

	return riverClient, nil
}

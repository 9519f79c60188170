package storage

import (
	"context"

	"github.com/riverqueue/river"
)

// JobStorage enqueues background jobs in the same database as the checks.
// The checker uses it to schedule one checker.JobArgs job per normalized URL
// right after storing the pending checks:
//
//	added, err := tx.AddJob(ctx, checker.JobArgs{URL: url, RawURL: raw}, nil)
//
// A nil opts uses the job's own InsertOpts, which carry its uniqueness rules.
type JobStorage interface {
	// AddJob enqueues a job and reports whether a new job was inserted. It
	// returns false without error when an equivalent unique job already
	// exists. Within a TxStorage the insert joins the transaction.
	AddJob(ctx context.Context, args river.JobArgs, opts *river.InsertOpts) (bool, error)
}

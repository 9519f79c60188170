package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"linkguard/pkg/logger"

	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverdatabasesql"
	"github.com/riverqueue/river/rivertype"
	"go.uber.org/zap"
)

// AddJob enqueues a check job. Inside a transaction the job is inserted with
// InsertTx, so it only becomes visible to the worker once the pending checks
// stored in the same transaction are committed. Outside a transaction it is
// inserted directly on the pool.
//
// The returned bool is false when River skipped the insert because a job with
// the same unique arguments (the normalized URL for check jobs) is already
// queued or was completed within the uniqueness period.
func (p *PgSQL) AddJob(ctx context.Context, args river.JobArgs, opts *river.InsertOpts) (bool, error) {
	var (
		res *rivertype.JobInsertResult
		err error
	)
	switch db := p.DB.(type) {
	case *sql.Tx:
		res, err = insertJobTx(ctx, db, args, opts)
	case *sql.DB:
		res, err = insertJob(ctx, db, args, opts)
	default:
		return false, fmt.Errorf("unsupported database handle %T", p.DB)
	}
	if err != nil {
		return false, err
	}

	if res.UniqueSkippedAsDuplicate {
		logger.Debug(ctx, "job already queued",
			zap.String("kind", args.Kind()),
			zap.Int64("jobId", res.Job.ID))

		return false, nil
	}

	return true, nil
}

func insertJobTx(ctx context.Context, tx *sql.Tx, args river.JobArgs, opts *river.InsertOpts) (*rivertype.JobInsertResult, error) {
	client, err := river.NewClient[*sql.Tx](riverdatabasesql.New(nil), &river.Config{})
	if err != nil {
		return nil, fmt.Errorf("could not create river queue client: %w", err)
	}

	res, err := client.InsertTx(ctx, tx, args, opts)
	if err != nil {
		return nil, fmt.Errorf("could not insert %s job: %w", args.Kind(), err)
	}

	return res, nil
}

func insertJob(ctx context.Context, db *sql.DB, args river.JobArgs, opts *river.InsertOpts) (*rivertype.JobInsertResult, error) {
	client, err := river.NewClient(riverdatabasesql.New(db), &river.Config{})
	if err != nil {
		return nil, fmt.Errorf("could not create river queue client: %w", err)
	}

	res, err := client.Insert(ctx, args, opts)
	if err != nil {
		return nil, fmt.Errorf("could not insert %s job: %w", args.Kind(), err)
	}

	return res, nil
}

package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"linkguard/pkg/domain"
	"linkguard/pkg/storage"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const (
	checksTable = "checks"
)

func (p *PgSQL) StoreChecks(ctx context.Context, checks ...domain.Check) ([]domain.Check, error) {
	if len(checks) == 0 {
		return nil, nil
	}

	pgChecks, err := domainChecksToPg(checks)
	if err != nil {
		return nil, err
	}

	var result []PgCheck
	if err := p.Builder.Insert(checksTable).
		Rows(pgChecks).
		Returning(&PgCheck{}).
		Executor().ScanStructsContext(ctx, &result); err != nil {
		return nil, fmt.Errorf("could not store checks into pg: %w", err)
	}

	return pgChecksToDomain(result)
}

func updateRecord(updates storage.CheckUpdates) (goqu.Record, error) {
	rec := goqu.Record{
		"updated_at": goqu.L("CURRENT_TIMESTAMP"),
	}
	if updates.Status != "" {
		rec["status"] = string(updates.Status)
	}
	if updates.Verdict != nil {
		b, err := json.Marshal(updates.Verdict)
		if err != nil {
			return nil, fmt.Errorf("could not marshal verdict: %w", err)
		}

		rec["verdict"] = b
	}
	if updates.LastError != nil {
		if *updates.LastError == "" {
			// set to NULL when empty string provided
			rec["last_error"] = goqu.L("NULL")
		} else {
			rec["last_error"] = *updates.LastError
		}
	}

	return rec, nil
}

// UpdatePendingChecksByURL updates all pending checks for the given URL with provided fields.
// Only non-nil fields from updates are set. Attempts is incremented by 1 and updated_at is set.
func (p *PgSQL) UpdatePendingChecksByURL(ctx context.Context, URL string, updates storage.CheckUpdates) error {
	rec, err := updateRecord(updates)
	if err != nil {
		return err
	}
	rec["attempts"] = goqu.L("attempts + 1")
	if updates.Status == domain.CheckStatusFailed && updates.MaxAttempts > 0 {
		// stay pending until the retry budget is spent
		rec["status"] = goqu.Case().
			When(goqu.L("attempts + 1 >= ?", updates.MaxAttempts), string(domain.CheckStatusFailed)).
			Else(goqu.I("status"))
	}

	_, err = p.Builder.Update(checksTable).
		Set(rec).Where(
		goqu.I("url").Eq(URL),
		goqu.I("status").Eq(string(domain.CheckStatusPending)),
		goqu.I("deleted_at").IsNull(),
	).Executor().ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("could not update pending checks by url in pg: %w", err)
	}

	return nil
}

// PendingCheckCountByURL counts pending checks for a URL across all users.
func (p *PgSQL) PendingCheckCountByURL(ctx context.Context, URL string) (int64, error) {
	count, err := p.Builder.From(checksTable).
		Where(
			goqu.I("url").Eq(URL),
			goqu.I("status").Eq(string(domain.CheckStatusPending)),
			goqu.I("deleted_at").IsNull(),
		).CountContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not count pending checks in pg: %w", err)
	}

	return count, nil
}

// UpdateCheckByID updates a single check. Attempts are left untouched.
func (p *PgSQL) UpdateCheckByID(ctx context.Context,
	id domain.CheckID,
	updates storage.CheckUpdates) (*domain.Check, error) {
	rec, err := updateRecord(updates)
	if err != nil {
		return nil, err
	}

	var row PgCheck
	found, err := p.Builder.Update(checksTable).
		Set(rec).Where(
		goqu.I("id").Eq(uuid.UUID(id)),
		goqu.I("deleted_at").IsNull(),
	).Returning(&PgCheck{}).Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not update check by id in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}

// DeleteCheck performs a soft delete by setting deleted_at timestamp
// for a given check id and user, returning the deleted record.
func (p *PgSQL) DeleteCheck(ctx context.Context, userID domain.UserID, id domain.CheckID) (*domain.Check, error) {
	var row PgCheck
	found, err := p.Builder.Update(checksTable).
		Set(goqu.Record{
			"deleted_at": goqu.L("CURRENT_TIMESTAMP"),
		}).Where(
		goqu.I("id").Eq(uuid.UUID(id)),
		goqu.I("user_id").Eq(uuid.UUID(userID)),
		goqu.I("deleted_at").IsNull(),
	).Returning(&PgCheck{}).Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not delete check in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}

// UserChecks returns a list of checks for a user filtered by optional status and cursor and limited by limit.
// Results are ordered by created_at DESC, id DESC.
func (p *PgSQL) UserChecks(ctx context.Context,
	userID domain.UserID,
	status domain.CheckStatus,
	cursor time.Time,
	limit uint) (storage.UserChecks, error) {
	w := []goqu.Expression{
		goqu.I("user_id").Eq(uuid.UUID(userID)),
		goqu.I("deleted_at").IsNull(),
	}
	if status != "" {
		w = append(w, goqu.I("status").Eq(string(status)))
	}
	if !cursor.IsZero() {
		w = append(w, goqu.I("created_at").Lt(cursor))
	}

	// fetch one extra to determine if there is a next page
	fetch := limit + 1
	ds := p.Builder.From(checksTable).
		Where(w...).
		Order(goqu.I("created_at").Desc(), goqu.I("id").Desc()).
		Limit(fetch)

	var rows []PgCheck
	if err := ds.Executor().ScanStructsContext(ctx, &rows); err != nil {
		return storage.UserChecks{}, fmt.Errorf("could not fetch user checks from pg: %w", err)
	}

	var nextCursor *time.Time
	if uint(len(rows)) > limit {
		trimmed := rows[:limit]
		nextCursor = &trimmed[len(trimmed)-1].CreatedAt
		rows = trimmed
	}

	domainRows, err := pgChecksToDomain(rows)
	if err != nil {
		return storage.UserChecks{}, err
	}

	return storage.UserChecks{
		Checks:     domainRows,
		NextCursor: nextCursor,
	}, nil
}

// CheckByID returns a check by its ID, excluding soft-deleted rows.
func (p *PgSQL) CheckByID(ctx context.Context, userID domain.UserID, id domain.CheckID) (*domain.Check, error) {
	var row PgCheck
	found, err := p.Builder.From(checksTable).
		Where(
			goqu.I("id").Eq(uuid.UUID(id)),
			goqu.I("user_id").Eq(uuid.UUID(userID)),
			goqu.I("deleted_at").IsNull(),
		).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch check by id: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}

// LastCompletedCheckByURL returns the newest completed check for a URL across all users.
func (p *PgSQL) LastCompletedCheckByURL(ctx context.Context, URL string) (*domain.Check, error) {
	var row PgCheck
	found, err := p.Builder.From(checksTable).
		Where(
			goqu.I("url").Eq(URL),
			goqu.I("status").Eq(string(domain.CheckStatusCompleted)),
			goqu.I("deleted_at").IsNull(),
		).
		Order(goqu.I("updated_at").Desc().NullsLast(), goqu.I("created_at").Desc()).
		Limit(1).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch last completed check by url: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}

package postgres_test

import (
	"context"
	"linkguard/pkg/domain"
	"linkguard/pkg/storage"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func pendingCheck(userID domain.UserID, url string) domain.Check {
	return domain.Check{UserID: userID, URL: url, RawURL: url, Status: domain.CheckStatusPending}
}

func TestPgSQL_StoreChecks(t *testing.T) {
	t.Parallel()

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)

	ctx := context.Background()
	userID := domain.UserID(uuid.New())
	URL1 := "https://google.com"
	URL2 := "https://yahoo.com"

	t.Run("store single check", func(t *testing.T) {
		t.Parallel()

		c := domain.Check{
			UserID: userID,
			URL:    URL1,
			RawURL: "https://Google.com",
			Status: domain.CheckStatusPending,
		}

		res, err := pgSQL.StoreChecks(ctx, c)
		require.NoError(t, err)
		require.Len(t, res, 1)
		require.Equal(t, URL1, res[0].URL)
		require.Equal(t, "https://Google.com", res[0].RawURL)
		require.Nil(t, res[0].Verdict)
		require.NotEqual(t, uuid.Nil, uuid.UUID(res[0].ID))
		require.False(t, res[0].CreatedAt.IsZero())
	})

	t.Run("store multiple checks", func(t *testing.T) {
		t.Parallel()

		res, err := pgSQL.StoreChecks(ctx, pendingCheck(userID, URL1), pendingCheck(userID, URL2))
		require.NoError(t, err)
		require.Len(t, res, 2)
	})

	t.Run("store empty checks", func(t *testing.T) {
		t.Parallel()

		res, err := pgSQL.StoreChecks(ctx)
		require.NoError(t, err)
		require.Empty(t, res)
	})
}

func TestPgSQL_UpdatePendingChecksByURL(t *testing.T) {
	t.Parallel()

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	userID := domain.UserID(uuid.New())
	urlA := "https://example.com/a"
	urlB := "https://example.com/b"

	c3 := pendingCheck(userID, urlA)
	c3.Status = domain.CheckStatusCompleted
	ins, err := pgSQL.StoreChecks(ctx, pendingCheck(userID, urlA), pendingCheck(userID, urlA), c3, pendingCheck(userID, urlB))
	require.NoError(t, err)
	require.Len(t, ins, 4)

	count, err := pgSQL.PendingCheckCountByURL(ctx, urlA)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)

	// update only pending checks for urlA
	empty := ""
	verdict := &domain.Verdict{
		URL:    urlA,
		Domain: "example.com",
		Label:  domain.LabelLegitimate,
		Source: domain.VerdictSourceAllowList,
	}
	require.NoError(t, pgSQL.UpdatePendingChecksByURL(ctx, urlA, storage.CheckUpdates{
		Status:    domain.CheckStatusCompleted,
		Verdict:   verdict,
		LastError: &empty, // clear last_error to NULL
	}))

	page, err := pgSQL.UserChecks(ctx, userID, "", time.Time{}, 50)
	require.NoError(t, err)

	byID := map[uuid.UUID]domain.Check{}
	for _, c := range page.Checks {
		byID[uuid.UUID(c.ID)] = c
	}

	for i := range 2 {
		c := byID[uuid.UUID(ins[i].ID)]
		require.Equal(t, domain.CheckStatusCompleted, c.Status)
		require.EqualValues(t, 1, c.Attempts)
		require.False(t, c.UpdatedAt.IsZero())
		require.Empty(t, c.LastError)
		require.Equal(t, verdict, c.Verdict)
	}
	// completed check keeps attempts 0
	require.EqualValues(t, 0, byID[uuid.UUID(ins[2].ID)].Attempts)
	// check for urlB stays pending
	require.Equal(t, domain.CheckStatusPending, byID[uuid.UUID(ins[3].ID)].Status)

	count, err = pgSQL.PendingCheckCountByURL(ctx, urlA)
	require.NoError(t, err)
	require.Zero(t, count)

	last, err := pgSQL.LastCompletedCheckByURL(ctx, urlA)
	require.NoError(t, err)
	require.NotNil(t, last)
	require.Equal(t, verdict, last.Verdict)

	none, err := pgSQL.LastCompletedCheckByURL(ctx, urlB)
	require.NoError(t, err)
	require.Nil(t, none)
}

func TestPgSQL_UpdatePendingChecksByURL_MaxAttempts(t *testing.T) {
	t.Parallel()

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	userID := domain.UserID(uuid.New())
	url := "https://retry.example/"
	stored, err := pgSQL.StoreChecks(ctx, pendingCheck(userID, url))
	require.NoError(t, err)
	id := stored[0].ID

	msg := "model unavailable"
	updates := storage.CheckUpdates{
		Status:      domain.CheckStatusFailed,
		LastError:   &msg,
		MaxAttempts: 2,
	}

	// first failure keeps the check pending
	require.NoError(t, pgSQL.UpdatePendingChecksByURL(ctx, url, updates))
	got, err := pgSQL.CheckByID(ctx, userID, id)
	require.NoError(t, err)
	require.Equal(t, domain.CheckStatusPending, got.Status)
	require.EqualValues(t, 1, got.Attempts)
	require.Equal(t, msg, got.LastError)

	// second failure reaches the threshold
	require.NoError(t, pgSQL.UpdatePendingChecksByURL(ctx, url, updates))
	got, err = pgSQL.CheckByID(ctx, userID, id)
	require.NoError(t, err)
	require.Equal(t, domain.CheckStatusFailed, got.Status)
	require.EqualValues(t, 2, got.Attempts)
}

func TestPgSQL_UpdateCheckByID(t *testing.T) {
	t.Parallel()

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	userID := domain.UserID(uuid.New())
	stored, err := pgSQL.StoreChecks(ctx, pendingCheck(userID, "https://byid.example/"))
	require.NoError(t, err)

	verdict := &domain.Verdict{URL: "https://byid.example/", Label: domain.LabelPhishing, Source: domain.VerdictSourceModel}
	updated, err := pgSQL.UpdateCheckByID(ctx, stored[0].ID, storage.CheckUpdates{
		Status:  domain.CheckStatusCompleted,
		Verdict: verdict,
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	require.Equal(t, domain.CheckStatusCompleted, updated.Status)
	require.Equal(t, verdict, updated.Verdict)
	require.EqualValues(t, 0, updated.Attempts)

	missing, err := pgSQL.UpdateCheckByID(ctx, domain.CheckID(uuid.New()), storage.CheckUpdates{
		Status: domain.CheckStatusCompleted,
	})
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestPgSQL_DeleteCheck(t *testing.T) {
	t.Parallel()

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	userID := domain.UserID(uuid.New())
	stored, err := pgSQL.StoreChecks(ctx, pendingCheck(userID, "https://delete.me"))
	require.NoError(t, err)
	require.Len(t, stored, 1)
	id := stored[0].ID

	deleted, err := pgSQL.DeleteCheck(ctx, userID, id)
	require.NoError(t, err)
	require.NotNil(t, deleted)
	require.Equal(t, id, deleted.ID)
	// fetching by id should return nil
	got, err := pgSQL.CheckByID(ctx, userID, id)
	require.NoError(t, err)
	require.Nil(t, got)
	// listing should not include it
	page, err := pgSQL.UserChecks(ctx, userID, "", time.Time{}, 10)
	require.NoError(t, err)
	for _, c := range page.Checks {
		require.NotEqual(t, id, c.ID)
	}
	// deleted checks are not counted as pending
	count, err := pgSQL.PendingCheckCountByURL(ctx, "https://delete.me")
	require.NoError(t, err)
	require.Zero(t, count)
	// deleting again should not error
	deleted2, err := pgSQL.DeleteCheck(ctx, userID, id)
	require.NoError(t, err)
	require.Nil(t, deleted2)
}

func TestPgSQL_UserChecks_Pagination(t *testing.T) {
	t.Parallel()

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	userID := domain.UserID(uuid.New())
	checks := make([]domain.Check, 0, 5)
	for range 5 {
		checks = append(checks, pendingCheck(userID, "https://page.example/"+uuid.NewString()))
	}
	stored, err := pgSQL.StoreChecks(ctx, checks...)
	require.NoError(t, err)
	require.Len(t, stored, 5)

	// make created_at deterministic, the last inserted is the newest
	now := time.Now().UTC()
	for i, c := range stored {
		created := now.Add(-time.Duration(4-i) * time.Minute)
		_, err := pgSQL.DB.ExecContext(ctx, "UPDATE checks SET created_at = $1 WHERE id = $2", created, uuid.UUID(c.ID))
		require.NoError(t, err)
	}

	p1, err := pgSQL.UserChecks(ctx, userID, "", time.Time{}, 2)
	require.NoError(t, err)
	require.Len(t, p1.Checks, 2)
	require.Equal(t, stored[4].ID, p1.Checks[0].ID)
	require.NotNil(t, p1.NextCursor)

	p2, err := pgSQL.UserChecks(ctx, userID, "", *p1.NextCursor, 2)
	require.NoError(t, err)
	require.Len(t, p2.Checks, 2)
	require.NotNil(t, p2.NextCursor)

	p3, err := pgSQL.UserChecks(ctx, userID, "", *p2.NextCursor, 2)
	require.NoError(t, err)
	require.Len(t, p3.Checks, 1)
	require.Nil(t, p3.NextCursor)
}

func TestPgSQL_UserChecks_StatusFilter(t *testing.T) {
	t.Parallel()

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	userID := domain.UserID(uuid.New())
	done := pendingCheck(userID, "https://done.example/")
	done.Status = domain.CheckStatusCompleted
	_, err := pgSQL.StoreChecks(ctx, pendingCheck(userID, "https://wait.example/"), done)
	require.NoError(t, err)

	page, err := pgSQL.UserChecks(ctx, userID, domain.CheckStatusCompleted, time.Time{}, 10)
	require.NoError(t, err)
	require.Len(t, page.Checks, 1)
	require.Equal(t, "https://done.example/", page.Checks[0].URL)

	page, err = pgSQL.UserChecks(ctx, userID, domain.CheckStatusFailed, time.Time{}, 10)
	require.NoError(t, err)
	require.Empty(t, page.Checks)
}

func TestPgSQL_CheckByID(t *testing.T) {
	t.Parallel()

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	userA := domain.UserID(uuid.New())
	userB := domain.UserID(uuid.New())
	storedA, err := pgSQL.StoreChecks(ctx, pendingCheck(userA, "https://id.test/a"))
	require.NoError(t, err)
	storedB, err := pgSQL.StoreChecks(ctx, pendingCheck(userB, "https://id.test/b"))
	require.NoError(t, err)
	idA := storedA[0].ID
	idB := storedB[0].ID

	got, err := pgSQL.CheckByID(ctx, userA, idA)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, idA, got.ID)

	// wrong user should not see other's check
	got2, err := pgSQL.CheckByID(ctx, userA, idB)
	require.NoError(t, err)
	require.Nil(t, got2)

	_, err = pgSQL.DeleteCheck(ctx, userA, idA)
	require.NoError(t, err)
	got3, err := pgSQL.CheckByID(ctx, userA, idA)
	require.NoError(t, err)
	require.Nil(t, got3)
}

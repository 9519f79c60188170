package v1handler

import (
	"context"
	"linkguard/pkg/domain"
	"linkguard/pkg/serrors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ListChecksParams are the query parameters of GET /v1/checks.
type ListChecksParams struct {
	Status domain.CheckStatus
	Cursor string
	Limit  uint
}

// CheckIDParams are the path parameters of the single check routes.
type CheckIDParams struct {
	ID domain.CheckID
}

func decodeCreateCheckRequest(r *http.Request) (*CreateCheckRequest, error) {
	d, err := readBody(r)
	if err != nil {
		return nil, err
	}

	var req CreateCheckRequest
	if err := req.Decode(d); err != nil {
		return nil, serrors.Wrap(serrors.ErrBadRequest, err, "invalid request body")
	}
	if req.URL == "" {
		return nil, serrors.With(serrors.ErrBadRequest, "url is required")
	}

	return &req, nil
}

func decodeListChecksParams(r *http.Request) (ListChecksParams, error) {
	q := r.URL.Query()
	params := ListChecksParams{
		Cursor: q.Get("cursor"),
		Limit:  DefaultLimit,
	}

	switch status := domain.CheckStatus(q.Get("status")); status {
	case "", domain.CheckStatusPending, domain.CheckStatusCompleted, domain.CheckStatusFailed:
		params.Status = status
	default:
		return params, serrors.With(serrors.ErrBadRequest, "invalid status %q", status)
	}

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > MaxLimit {
			return params, serrors.With(serrors.ErrBadRequest, "limit must be between 1 and %d", MaxLimit)
		}
		params.Limit = uint(limit)
	}

	return params, nil
}

func decodeCheckIDParams(r *http.Request) (CheckIDParams, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return CheckIDParams{}, serrors.Wrap(serrors.ErrBadRequest, err, "invalid check id")
	}

	return CheckIDParams{ID: domain.CheckID(id)}, nil
}

func (h Handler) requireChecker() error {
	if h.deps.Checker == nil {
		return serrors.With(serrors.ErrUnavailable, "checks are not configured")
	}

	return nil
}

// CreateCheck schedules an asynchronous check of the requested URL.
func (h Handler) CreateCheck(ctx context.Context, req *CreateCheckRequest) (*Check, error) {
	if err := h.requireChecker(); err != nil {
		return nil, err
	}

	c, err := h.deps.Checker.Enqueue(ctx, GetUserIDFromContext(ctx), req.URL)
	if err != nil {
		return nil, err //nolint: wrapcheck
	}

	return &Check{Check: *c}, nil
}

// DeleteCheck deletes a check by ID.
func (h Handler) DeleteCheck(ctx context.Context, params CheckIDParams) (*NoContent, error) {
	if err := h.requireChecker(); err != nil {
		return nil, err
	}

	if err := h.deps.Checker.Delete(ctx, GetUserIDFromContext(ctx), params.ID); err != nil {
		return nil, err //nolint: wrapcheck
	}

	return &NoContent{}, nil
}

// GetCheck returns a check by ID.
func (h Handler) GetCheck(ctx context.Context, params CheckIDParams) (*Check, error) {
	if err := h.requireChecker(); err != nil {
		return nil, err
	}

	c, err := h.deps.Checker.Result(ctx, GetUserIDFromContext(ctx), params.ID)
	if err != nil {
		return nil, err //nolint: wrapcheck
	}

	return &Check{Check: *c}, nil
}

// ListChecks returns a paginated list of checks.
func (h Handler) ListChecks(ctx context.Context, params ListChecksParams) (*CheckList, error) {
	if err := h.requireChecker(); err != nil {
		return nil, err
	}

	checks, nextCursor, err := h.deps.Checker.UserChecks(ctx,
		GetUserIDFromContext(ctx),
		params.Status,
		params.Cursor,
		params.Limit)
	if err != nil {
		return nil, err //nolint: wrapcheck
	}

	items := make([]Check, 0, len(checks))
	for i := range checks {
		items = append(items, Check{Check: checks[i]})
	}

	return &CheckList{
		Items:      items,
		NextCursor: nextCursor,
	}, nil
}

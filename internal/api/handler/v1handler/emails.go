package v1handler

import (
	"context"
	"fmt"
	"linkguard/pkg/domain"
	"linkguard/pkg/serrors"
	"net/http"
)

func decodeClassifyEmailsRequest(r *http.Request) (*ClassifyEmailsRequest, error) {
	d, err := readBody(r)
	if err != nil {
		return nil, err
	}

	var req ClassifyEmailsRequest
	if err := req.Decode(d); err != nil {
		return nil, serrors.Wrap(serrors.ErrBadRequest, err, "invalid request body")
	}

	return &req, nil
}

// ClassifyEmails predicts one category per email, in request order.
func (h Handler) ClassifyEmails(ctx context.Context, req *ClassifyEmailsRequest) (*EmailPredictions, error) {
	if len(req.Emails) == 0 {
		return &EmailPredictions{Predictions: []domain.EmailCategory{}}, nil
	}
	if h.deps.Categorizer == nil {
		return nil, serrors.With(serrors.ErrUnavailable, "email categorizer is not configured")
	}

	predictions, err := h.deps.Categorizer.Classify(ctx, req.Emails)
	if err != nil {
		return nil, fmt.Errorf("could not classify emails: %w", err)
	}

	return &EmailPredictions{Predictions: predictions}, nil
}

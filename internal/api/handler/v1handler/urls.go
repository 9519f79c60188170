package v1handler

import (
	"context"
	"linkguard/internal/links"
	"linkguard/internal/phishing"
	"linkguard/pkg/serrors"
	"net/http"
	"strings"
)

// MaxBatchURLs caps the number of URLs decided by a single request.
const MaxBatchURLs = 1000

func decodeDecideURLsRequest(r *http.Request) (*DecideURLsRequest, error) {
	d, err := readBody(r)
	if err != nil {
		return nil, err
	}

	var req DecideURLsRequest
	if err := req.Decode(d); err != nil {
		return nil, serrors.Wrap(serrors.ErrBadRequest, err, "invalid request body")
	}

	return &req, nil
}

func decodeClassifyLinksRequest(r *http.Request) (*ClassifyLinksRequest, error) {
	d, err := readBody(r)
	if err != nil {
		return nil, err
	}

	var req ClassifyLinksRequest
	if err := req.Decode(d); err != nil {
		return nil, serrors.Wrap(serrors.ErrBadRequest, err, "invalid request body")
	}

	return &req, nil
}

// DecideURLs runs the decision policy on every URL of the request. Failures
// are reported per URL and never fail the batch.
func (h Handler) DecideURLs(ctx context.Context, req *DecideURLsRequest) (*URLResults, error) {
	if len(req.URLs) == 0 {
		return nil, serrors.With(serrors.ErrBadRequest, "urls must not be empty")
	}

	return h.decideAll(ctx, req.URLs)
}

// ClassifyLinks extracts the anchors of an HTML document and decides each link.
func (h Handler) ClassifyLinks(ctx context.Context, req *ClassifyLinksRequest) (*URLResults, error) {
	if strings.TrimSpace(req.HTML) == "" {
		return nil, serrors.With(serrors.ErrBadRequest, "html must not be empty")
	}

	urls, err := links.Extract(req.HTML)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrBadRequest, err, "invalid html")
	}
	if len(urls) == 0 {
		return &URLResults{Results: []URLResult{}}, nil
	}

	return h.decideAll(ctx, urls)
}

func (h Handler) decideAll(ctx context.Context, urls []string) (*URLResults, error) {
	if len(urls) > MaxBatchURLs {
		return nil, serrors.With(serrors.ErrBadRequest, "at most %d urls are allowed", MaxBatchURLs)
	}
	if h.deps.Decider == nil {
		return nil, serrors.With(serrors.ErrUnavailable, "url classifier is not configured")
	}

	return toURLResults(urls, h.deps.Decider.DecideAll(ctx, urls)), nil
}

func toURLResults(urls []string, results []phishing.Result) *URLResults {
	out := make([]URLResult, len(urls))
	for i, u := range urls {
		out[i].URL = u
		if i >= len(results) {
			out[i].Error = kindMessage[serrors.ErrInternal]

			continue
		}
		if err := results[i].Err; err != nil {
			_, out[i].Error = publicError(err)

			continue
		}
		v := results[i].Verdict
		out[i].Verdict = &v
	}

	return &URLResults{Results: out}
}

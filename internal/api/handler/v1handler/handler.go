// Package v1handler implements the v1 HTTP API: URL decisions, link and email
// classification and the authenticated asynchronous checks.
package v1handler

import (
	"context"
	"errors"
	"linkguard/internal/checker"
	"linkguard/internal/email"
	"linkguard/internal/phishing"
	"linkguard/pkg/logger"
	"linkguard/pkg/serrors"
	"net/http"

	"go.uber.org/zap"
)

// Deps groups the services the v1 handlers call into.
type Deps struct {
	Decider     phishing.Decider
	Categorizer email.Categorizer
	Checker     checker.Checker
}

type Handler struct {
	deps Deps
}

func New(deps Deps) *Handler {
	return &Handler{deps: deps}
}

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Code    string
	Message string
}

// ErrorStatusCode pairs an ErrorResponse with its HTTP status.
type ErrorStatusCode struct {
	StatusCode int
	Response   ErrorResponse
}

func (e *ErrorStatusCode) Error() string {
	return e.Response.Code + ": " + e.Response.Message
}

var kindStatus = map[serrors.Kind]int{ //nolint: gochecknoglobals
	serrors.ErrNotFound:     http.StatusNotFound,
	serrors.ErrUnauthorized: http.StatusUnauthorized,
	serrors.ErrForbidden:    http.StatusForbidden,
	serrors.ErrBadRequest:   http.StatusBadRequest,
	serrors.ErrConflict:     http.StatusConflict,
	serrors.ErrInternal:     http.StatusInternalServerError,
	serrors.ErrTimeout:      http.StatusGatewayTimeout,
	serrors.ErrUnavailable:  http.StatusServiceUnavailable,
	serrors.ErrRateLimited:  http.StatusTooManyRequests,
}

var kindMessage = map[serrors.Kind]string{ //nolint: gochecknoglobals
	serrors.ErrNotFound:     "resource not found",
	serrors.ErrUnauthorized: "unauthorized",
	serrors.ErrForbidden:    "forbidden",
	serrors.ErrBadRequest:   "bad request",
	serrors.ErrConflict:     "conflict",
	serrors.ErrInternal:     "internal error",
	serrors.ErrTimeout:      "request timed out",
	serrors.ErrUnavailable:  "service unavailable",
	serrors.ErrRateLimited:  "too many requests",
}

// publicError returns the kind and client safe message of err. Causes are
// never exposed and internal errors always read "internal error".
func publicError(err error) (serrors.Kind, string) {
	kind := serrors.KindOf(err)
	if _, ok := kindStatus[kind]; !ok {
		kind = serrors.ErrInternal
	}
	if kind == serrors.ErrInternal {
		return kind, kindMessage[kind]
	}

	var sErr *serrors.Error
	if errors.As(err, &sErr) && sErr.Message() != "" {
		return kind, sErr.Message()
	}

	return kind, kindMessage[kind]
}

// NewError maps err to a status code and response body.
func (h Handler) NewError(ctx context.Context, err error) *ErrorStatusCode {
	kind, msg := publicError(err)
	status := kindStatus[kind]
	if status >= http.StatusInternalServerError {
		logger.Error(ctx, "request failed", zap.Error(err))
	} else {
		logger.Debug(ctx, "request rejected", zap.Error(err))
	}

	return &ErrorStatusCode{
		StatusCode: status,
		Response: ErrorResponse{
			Code:    kind.Error(),
			Message: msg,
		},
	}
}

// Register mounts the v1 routes on mux. Check routes are wrapped with sec.
func (h *Handler) Register(mux *http.ServeMux, sec *SecHandler) {
	mux.Handle("GET /{$}", handle(h, decodeEmpty, h.Root))
	mux.Handle("GET /favicon.ico", handle(h, decodeEmpty, h.Favicon))

	mux.Handle("POST /v1/urls/decide", handle(h, decodeDecideURLsRequest, h.DecideURLs))
	mux.Handle("POST /v1/links/classify", handle(h, decodeClassifyLinksRequest, h.ClassifyLinks))
	mux.Handle("POST /v1/emails/classify", handle(h, decodeClassifyEmailsRequest, h.ClassifyEmails))

	mux.Handle("POST /v1/checks", sec.Middleware(handle(h, decodeCreateCheckRequest, h.CreateCheck)))
	mux.Handle("GET /v1/checks", sec.Middleware(handle(h, decodeListChecksParams, h.ListChecks)))
	mux.Handle("GET /v1/checks/{id}", sec.Middleware(handle(h, decodeCheckIDParams, h.GetCheck)))
	mux.Handle("DELETE /v1/checks/{id}", sec.Middleware(handle(h, decodeCheckIDParams, h.DeleteCheck)))
}

// Root answers liveness checks.
func (h Handler) Root(context.Context, struct{}) (*RootResponse, error) {
	return &RootResponse{Message: "linkguard is up", Status: "ok"}, nil
}

func (h Handler) Favicon(context.Context, struct{}) (*NoContent, error) {
	return &NoContent{}, nil
}

func decodeEmpty(*http.Request) (struct{}, error) {
	return struct{}{}, nil
}

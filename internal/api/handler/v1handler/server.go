package v1handler

import (
	"context"
	"io"
	"linkguard/pkg/serrors"
	"net/http"

	"github.com/go-faster/jx"
)

// maxBodyBytes bounds every request body.
const maxBodyBytes = 4 << 20

// Encoder is implemented by every response type.
type Encoder interface {
	Encode(e *jx.Encoder)
}

// statusCoder lets a response override the default 200 status.
type statusCoder interface {
	StatusCode() int
}

// handle adapts a typed operation to net/http: decode the request, run op,
// then encode either the response or the mapped error.
func handle[Req any, Res Encoder](
	h *Handler,
	decode func(r *http.Request) (Req, error),
	op func(ctx context.Context, req Req) (Res, error)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		req, err := decode(r)
		if err != nil {
			h.writeError(ctx, w, err)

			return
		}

		res, err := op(ctx, req)
		if err != nil {
			h.writeError(ctx, w, err)

			return
		}

		status := http.StatusOK
		if sc, ok := any(res).(statusCoder); ok {
			status = sc.StatusCode()
		}
		if status == http.StatusNoContent {
			w.WriteHeader(status)

			return
		}

		e := jx.GetEncoder()
		defer jx.PutEncoder(e)
		res.Encode(e)
		writeJSON(w, status, e.Bytes())
	})
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	res := h.NewError(ctx, err)
	WriteError(w, res)
}

// WriteError writes res as a JSON error body.
func WriteError(w http.ResponseWriter, res *ErrorStatusCode) {
	e := jx.GetEncoder()
	defer jx.PutEncoder(e)
	res.Response.Encode(e)
	writeJSON(w, res.StatusCode, e.Bytes())
}

func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// readBody returns a decoder over the request body. An empty body is a bad request.
func readBody(r *http.Request) (*jx.Decoder, error) {
	body, err := io.ReadAll(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrBadRequest, err, "could not read request body")
	}
	if len(body) == 0 {
		return nil, serrors.With(serrors.ErrBadRequest, "request body is empty")
	}

	return jx.DecodeBytes(body), nil
}

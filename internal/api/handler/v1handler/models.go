package v1handler

import (
	"linkguard/pkg/domain"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/google/uuid"
)

// Encode implements Encoder.
func (s ErrorResponse) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("code")
	e.Str(s.Code)
	e.FieldStart("message")
	e.Str(s.Message)
	e.ObjEnd()
}

// RootResponse is the body of GET /.
type RootResponse struct {
	Message string
	Status  string
}

// Encode implements Encoder.
func (s RootResponse) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("message")
	e.Str(s.Message)
	e.FieldStart("status")
	e.Str(s.Status)
	e.ObjEnd()
}

// DecideURLsRequest is the body of POST /v1/urls/decide.
type DecideURLsRequest struct {
	URLs []string
}

// Decode decodes DecideURLsRequest from json.
func (s *DecideURLsRequest) Decode(d *jx.Decoder) error {
	if s == nil {
		return errors.New("invalid: unable to decode DecideURLsRequest to nil")
	}

	return d.ObjBytes(func(d *jx.Decoder, k []byte) error {
		switch string(k) {
		case "urls":
			urls, err := decodeStrings(d)
			if err != nil {
				return errors.Wrap(err, "decode field \"urls\"")
			}
			s.URLs = urls
		default:
			return d.Skip()
		}

		return nil
	})
}

// ClassifyLinksRequest is the body of POST /v1/links/classify.
type ClassifyLinksRequest struct {
	HTML string
}

// Decode decodes ClassifyLinksRequest from json.
func (s *ClassifyLinksRequest) Decode(d *jx.Decoder) error {
	if s == nil {
		return errors.New("invalid: unable to decode ClassifyLinksRequest to nil")
	}

	return d.ObjBytes(func(d *jx.Decoder, k []byte) error {
		switch string(k) {
		case "html":
			v, err := decodeOptString(d)
			if err != nil {
				return errors.Wrap(err, "decode field \"html\"")
			}
			s.HTML = v
		default:
			return d.Skip()
		}

		return nil
	})
}

// URLResult is the outcome for one URL of a batch.
type URLResult struct {
	URL     string
	Verdict *domain.Verdict
	Error   string
}

// Encode implements Encoder.
func (s URLResult) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("url")
	e.Str(s.URL)
	if s.Verdict != nil {
		e.FieldStart("domain")
		e.Str(s.Verdict.Domain)
		e.FieldStart("label")
		e.Str(string(s.Verdict.Label))
		e.FieldStart("source")
		e.Str(string(s.Verdict.Source))
	}
	if s.Error != "" {
		e.FieldStart("error")
		e.Str(s.Error)
	}
	e.ObjEnd()
}

// URLResults is the response of the URL and link endpoints.
type URLResults struct {
	Results []URLResult
}

// Encode implements Encoder.
func (s URLResults) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("results")
	e.ArrStart()
	for _, r := range s.Results {
		r.Encode(e)
	}
	e.ArrEnd()
	e.ObjEnd()
}

// ClassifyEmailsRequest is the body of POST /v1/emails/classify.
type ClassifyEmailsRequest struct {
	Emails []string
}

// Decode decodes ClassifyEmailsRequest from json.
func (s *ClassifyEmailsRequest) Decode(d *jx.Decoder) error {
	if s == nil {
		return errors.New("invalid: unable to decode ClassifyEmailsRequest to nil")
	}

	return d.ObjBytes(func(d *jx.Decoder, k []byte) error {
		switch string(k) {
		case "emails":
			emails, err := decodeStrings(d)
			if err != nil {
				return errors.Wrap(err, "decode field \"emails\"")
			}
			s.Emails = emails
		default:
			return d.Skip()
		}

		return nil
	})
}

// EmailPredictions is the response of POST /v1/emails/classify.
type EmailPredictions struct {
	Predictions []domain.EmailCategory
}

// Encode implements Encoder.
func (s EmailPredictions) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("predictions")
	e.ArrStart()
	for _, p := range s.Predictions {
		e.Str(string(p))
	}
	e.ArrEnd()
	e.ObjEnd()
}

// CreateCheckRequest is the body of POST /v1/checks.
type CreateCheckRequest struct {
	URL string
}

// Decode decodes CreateCheckRequest from json.
func (s *CreateCheckRequest) Decode(d *jx.Decoder) error {
	if s == nil {
		return errors.New("invalid: unable to decode CreateCheckRequest to nil")
	}

	return d.ObjBytes(func(d *jx.Decoder, k []byte) error {
		switch string(k) {
		case "url":
			v, err := decodeOptString(d)
			if err != nil {
				return errors.Wrap(err, "decode field \"url\"")
			}
			s.URL = v
		default:
			return d.Skip()
		}

		return nil
	})
}

// Check is the API representation of domain.Check.
type Check struct {
	domain.Check
}

// Encode implements Encoder.
func (s Check) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("id")
	e.Str(uuid.UUID(s.ID).String())
	e.FieldStart("url")
	e.Str(s.URL)
	e.FieldStart("rawUrl")
	e.Str(s.RawURL)
	e.FieldStart("status")
	e.Str(string(s.Status))
	if s.Verdict != nil {
		e.FieldStart("verdict")
		e.ObjStart()
		e.FieldStart("url")
		e.Str(s.Verdict.URL)
		e.FieldStart("domain")
		e.Str(s.Verdict.Domain)
		e.FieldStart("label")
		e.Str(string(s.Verdict.Label))
		e.FieldStart("source")
		e.Str(string(s.Verdict.Source))
		e.ObjEnd()
	}
	e.FieldStart("attempts")
	e.UInt(s.Attempts)
	e.FieldStart("createdAt")
	e.Str(s.CreatedAt.UTC().Format(time.RFC3339Nano))
	if !s.UpdatedAt.IsZero() {
		e.FieldStart("updatedAt")
		e.Str(s.UpdatedAt.UTC().Format(time.RFC3339Nano))
	}
	e.ObjEnd()
}

// CheckList is a page of checks.
type CheckList struct {
	Items      []Check
	NextCursor string
}

// Encode implements Encoder.
func (s CheckList) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("items")
	e.ArrStart()
	for _, c := range s.Items {
		c.Encode(e)
	}
	e.ArrEnd()
	e.FieldStart("nextCursor")
	if s.NextCursor == "" {
		e.Null()
	} else {
		e.Str(s.NextCursor)
	}
	e.ObjEnd()
}

// NoContent is returned by operations without a response body.
type NoContent struct{}

// Encode implements Encoder.
func (NoContent) Encode(*jx.Encoder) {}

// StatusCode implements statusCoder.
func (NoContent) StatusCode() int { return http.StatusNoContent }

// decodeStrings decodes an array of strings. null decodes to nil.
func decodeStrings(d *jx.Decoder) ([]string, error) {
	if d.Next() == jx.Null {
		return nil, d.Null()
	}

	out := make([]string, 0)
	if err := d.Arr(func(d *jx.Decoder) error {
		v, err := d.Str()
		if err != nil {
			return err
		}
		out = append(out, v)

		return nil
	}); err != nil {
		return nil, err
	}

	return out, nil
}

// decodeOptString decodes a string. null decodes to "".
func decodeOptString(d *jx.Decoder) (string, error) {
	if d.Next() == jx.Null {
		return "", d.Null()
	}

	return d.Str()
}

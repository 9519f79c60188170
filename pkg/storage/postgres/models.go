package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"linkguard/pkg/domain"
	"time"

	"github.com/google/uuid"
)

// PgCheck is the row shape of the checks table.
type PgCheck struct {
	ID     uuid.UUID `db:"id"      goqu:"skipinsert"`
	UserID uuid.UUID `db:"user_id"`

	URL     string `db:"url"`
	RawURL  string `db:"raw_url"`
	Status  string `db:"status"`
	Verdict []byte `db:"verdict" goqu:"skipinsert"`

	Attempts  uint           `db:"attempts"   goqu:"skipinsert"`
	LastError sql.NullString `db:"last_error" goqu:"skipinsert"`

	CreatedAt time.Time    `db:"created_at" goqu:"skipinsert"`
	UpdatedAt sql.NullTime `db:"updated_at" goqu:"skipinsert"`
	DeletedAt sql.NullTime `db:"deleted_at" goqu:"skipinsert"`
}

func (p *PgCheck) ToDomain() (*domain.Check, error) {
	var verdict *domain.Verdict
	if len(p.Verdict) > 0 && string(p.Verdict) != "null" {
		verdict = &domain.Verdict{}
		if err := json.Unmarshal(p.Verdict, verdict); err != nil {
			return nil, fmt.Errorf("could not unmarshal check verdict: %w", err)
		}
	}

	return &domain.Check{
		ID:        domain.CheckID(p.ID),
		UserID:    domain.UserID(p.UserID),
		URL:       p.URL,
		RawURL:    p.RawURL,
		Status:    domain.CheckStatus(p.Status),
		Verdict:   verdict,
		Attempts:  p.Attempts,
		LastError: p.LastError.String,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt.Time,
		DeletedAt: p.DeletedAt.Time,
	}, nil
}

func (p *PgCheck) FromDomain(check domain.Check) error {
	var verdict []byte
	if check.Verdict != nil {
		b, err := json.Marshal(check.Verdict)
		if err != nil {
			return fmt.Errorf("could not marshal check verdict: %w", err)
		}
		verdict = b
	}

	*p = PgCheck{
		ID:       uuid.UUID(check.ID),
		UserID:   uuid.UUID(check.UserID),
		URL:      check.URL,
		RawURL:   check.RawURL,
		Status:   string(check.Status),
		Verdict:  verdict,
		Attempts: check.Attempts,
		LastError: sql.NullString{
			String: check.LastError,
			Valid:  check.LastError != "",
		},
		CreatedAt: check.CreatedAt,
		UpdatedAt: sql.NullTime{
			Time:  check.UpdatedAt,
			Valid: !check.UpdatedAt.IsZero(),
		},
		DeletedAt: sql.NullTime{
			Time:  check.DeletedAt,
			Valid: !check.DeletedAt.IsZero(),
		},
	}

	return nil
}

func domainChecksToPg(checks []domain.Check) ([]PgCheck, error) {
	out := make([]PgCheck, len(checks))
	for i := range out {
		if err := out[i].FromDomain(checks[i]); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func pgChecksToDomain(checks []PgCheck) ([]domain.Check, error) {
	out := make([]domain.Check, 0, len(checks))
	for _, check := range checks {
		d, err := check.ToDomain()
		if err != nil {
			return nil, err
		}

		out = append(out, *d)
	}

	return out, nil
}

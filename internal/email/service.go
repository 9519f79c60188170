package email

import (
	"context"
	"linkguard/internal/config"
	"linkguard/pkg/domain"
	"linkguard/pkg/logger"
	"sync"

	"go.uber.org/zap"
)

//go:generate mockgen -package mockemail -source=service.go -destination=mock/mockemail.go Categorizer

// Categorizer assigns a category to each email body.
type Categorizer interface {
	Classify(ctx context.Context, emails []string) ([]domain.EmailCategory, error)
}

// Options configure the email Service.
type Options struct {
	// ModelPath is the email_model.json artifact.
	ModelPath string
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{ModelPath: cfg.Email.ModelPath}
}

// Service categorizes emails with a model loaded on first use. A failed load
// is retried by the next call.
type Service struct {
	opts Options

	mu    sync.Mutex
	model *Model
}

// NewService creates a Service reading its model from opts.ModelPath.
func NewService(opts Options) *Service {
	return &Service{opts: opts}
}

// Classify returns one category per email, in input order. It fails with an
// ErrUnavailable error when the model cannot be loaded; an empty input never
// loads the model.
func (s *Service) Classify(ctx context.Context, emails []string) ([]domain.EmailCategory, error) {
	if len(emails) == 0 {
		return []domain.EmailCategory{}, nil
	}

	m, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	return m.Classify(emails), nil
}

func (s *Service) load(ctx context.Context) (*Model, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.model != nil {
		return s.model, nil
	}

	m, err := Load(s.opts.ModelPath)
	if err != nil {
		logger.Error(ctx, "could not load email model", zap.String("path", s.opts.ModelPath), zap.Error(err))

		return nil, err
	}
	s.model = m

	return m, nil
}

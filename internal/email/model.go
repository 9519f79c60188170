// Package email categorizes email bodies (for example Important, Spam or
// Inbox) with a TF-IDF vectorizer and one-vs-rest linear SVMs.
package email

import (
	"encoding/json"
	"errors"
	"fmt"
	"linkguard/internal/svm"
	"linkguard/pkg/domain"
	"linkguard/pkg/serrors"
	"math"
	"os"
	"path/filepath"
)

// Model is a trained email categorizer. It is immutable after load.
type Model struct {
	Vectorizer Vectorizer             `json:"vectorizer"`
	Categories []domain.EmailCategory `json:"categories"`
	// Models holds one binary model per category, in Categories order.
	Models []svm.Model `json:"models"`
}

// Predict returns the category of a raw (possibly HTML) email.
func (m *Model) Predict(body string) domain.EmailCategory {
	x := m.Vectorizer.Transform(Preprocess(StripHTML(body)))

	best, bestScore := 0, math.Inf(-1)
	for i, cm := range m.Models {
		if score := cm.Decision(x); score > bestScore {
			best, bestScore = i, score
		}
	}

	return m.Categories[best]
}

// Classify predicts the category of every email, in input order.
func (m *Model) Classify(emails []string) []domain.EmailCategory {
	out := make([]domain.EmailCategory, len(emails))
	for i, e := range emails {
		out[i] = m.Predict(e)
	}

	return out
}

// Validate checks the internal consistency of the model.
func (m *Model) Validate() error {
	if len(m.Categories) < 2 {
		return fmt.Errorf("model needs at least 2 categories, got %d", len(m.Categories))
	}
	if len(m.Models) != len(m.Categories) {
		return fmt.Errorf("model has %d classifiers for %d categories", len(m.Models), len(m.Categories))
	}

	dim := m.Vectorizer.Dim()
	if dim == 0 {
		return errors.New("empty vocabulary")
	}
	if len(m.Vectorizer.Vocabulary) != dim {
		return fmt.Errorf("vocabulary has %d terms for %d idf values", len(m.Vectorizer.Vocabulary), dim)
	}
	for tok, i := range m.Vectorizer.Vocabulary {
		if i < 0 || i >= dim {
			return fmt.Errorf("term %q has invalid column %d", tok, i)
		}
	}
	for i, cm := range m.Models {
		if len(cm.Weights) != dim {
			return fmt.Errorf("classifier %q has %d weights for %d terms", m.Categories[i], len(cm.Weights), dim)
		}
	}

	return nil
}

// Load reads a model saved with Save. A missing or invalid file yields an
// ErrUnavailable error.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path) //nolint: gosec
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrUnavailable, err, "email model unavailable")
	}

	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, serrors.Wrap(serrors.ErrUnavailable, err, "email model unavailable")
	}
	if err := m.Validate(); err != nil {
		return nil, serrors.Wrap(serrors.ErrUnavailable, err, "email model unavailable")
	}

	return &m, nil
}

// Save writes the model to path, creating parent directories when needed.
func (m *Model) Save(path string) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("could not save invalid email model: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("could not create model directory: %w", err)
	}

	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("could not encode email model: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("could not write email model: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("could not write email model: %w", err)
	}

	return nil
}

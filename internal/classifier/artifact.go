// Package classifier wraps the trained phishing URL model: a linear SVM, the
// scaler fitted with it, the ordered training columns and the mapping from
// decision side to label. It loads, saves, trains and evaluates artifacts.
package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"linkguard/internal/features"
	"linkguard/internal/svm"
	"linkguard/pkg/domain"
	"linkguard/pkg/serrors"
	"os"
	"path/filepath"
	"slices"
)

// Artifact file names inside a model directory.
const (
	ModelFile   = "model.json"
	ScalerFile  = "scaler.json"
	ColumnsFile = "columns.json"
)

// Classes maps each side of the decision function to a label.
type Classes struct {
	// Negative is returned for decision <= 0 (class 0).
	Negative domain.Label `json:"negative"`
	// Positive is returned for decision > 0 (class 1).
	Positive domain.Label `json:"positive"`
}

// DefaultClasses is the mapping used by training: class 1 is phishing.
var DefaultClasses = Classes{Negative: domain.LabelLegitimate, Positive: domain.LabelPhishing} //nolint: gochecknoglobals

// Artifact is an immutable, loaded classifier.
type Artifact struct {
	Model   svm.Model
	Scaler  Scaler
	Columns []string
	Classes Classes
}

type modelFile struct {
	svm.Model
	Classes Classes `json:"classes"`
}

// Predict classifies a feature vector. The vector is aligned to the artifact
// columns, the scaler is applied to the non-binary columns and the sign of the
// decision function selects the class.
func (a *Artifact) Predict(vec features.Vector) (domain.Label, error) {
	if a == nil {
		return "", serrors.With(serrors.ErrUnavailable, "model unavailable")
	}

	values := a.Scaler.Transform(a.Columns, vec.Values(a.Columns))
	if a.Model.Predict(svm.Dense(values)) {
		return a.Classes.Positive, nil
	}

	return a.Classes.Negative, nil
}

// Decision returns the raw decision value for vec.
func (a *Artifact) Decision(vec features.Vector) float64 {
	values := a.Scaler.Transform(a.Columns, vec.Values(a.Columns))

	return a.Model.Decision(svm.Dense(values))
}

// Validate checks that the model, the scaler and the column list agree.
func (a *Artifact) Validate() error {
	if len(a.Columns) == 0 {
		return errors.New("empty column list")
	}

	known := features.Columns()
	for _, c := range a.Columns {
		if !slices.Contains(known, c) {
			return fmt.Errorf("unknown feature column %q", c)
		}
	}

	if len(a.Model.Weights) != len(a.Columns) {
		return fmt.Errorf("model has %d weights for %d columns", len(a.Model.Weights), len(a.Columns))
	}

	if err := a.Scaler.validate(); err != nil {
		return err
	}
	for _, c := range a.Scaler.Columns {
		if !slices.Contains(a.Columns, c) {
			return fmt.Errorf("scaler column %q is not a model column", c)
		}
		if features.IsBinary(c) {
			return fmt.Errorf("binary column %q must not be scaled", c)
		}
	}

	if !a.Classes.Negative.Valid() || !a.Classes.Positive.Valid() || a.Classes.Negative == a.Classes.Positive {
		return fmt.Errorf("invalid class mapping %q/%q", a.Classes.Negative, a.Classes.Positive)
	}

	return nil
}

// Load reads an artifact from dir. Any missing, unreadable or inconsistent
// file yields an ErrUnavailable error.
func Load(dir string) (*Artifact, error) {
	var (
		m    modelFile
		s    Scaler
		cols []string
	)

	for name, dst := range map[string]any{ModelFile: &m, ScalerFile: &s, ColumnsFile: &cols} {
		if err := readJSON(filepath.Join(dir, name), dst); err != nil {
			return nil, serrors.Wrap(serrors.ErrUnavailable, err, "model unavailable")
		}
	}

	a := &Artifact{Model: m.Model, Scaler: s, Columns: cols, Classes: m.Classes}
	if err := a.Validate(); err != nil {
		return nil, serrors.Wrap(serrors.ErrUnavailable, err, "model unavailable")
	}

	return a, nil
}

// Save writes the three artifact files into dir, creating it when needed.
func (a *Artifact) Save(dir string) error {
	if err := a.Validate(); err != nil {
		return fmt.Errorf("could not save invalid artifact: %w", err)
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("could not create model directory: %w", err)
	}

	files := map[string]any{
		ModelFile:   modelFile{Model: a.Model, Classes: a.Classes},
		ScalerFile:  a.Scaler,
		ColumnsFile: a.Columns,
	}
	for name, v := range files {
		if err := writeJSON(filepath.Join(dir, name), v); err != nil {
			return err
		}
	}

	return nil
}

// Exists reports whether every artifact file is present in dir.
func Exists(dir string) bool {
	for _, name := range []string{ModelFile, ScalerFile, ColumnsFile} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			return false
		}
	}

	return true
}

func readJSON(path string, dst any) error {
	data, err := os.ReadFile(path) //nolint: gosec
	if err != nil {
		return fmt.Errorf("could not read %s: %w", filepath.Base(path), err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("could not decode %s: %w", filepath.Base(path), err)
	}

	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode %s: %w", filepath.Base(path), err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("could not write %s: %w", filepath.Base(path), err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("could not write %s: %w", filepath.Base(path), err)
	}

	return nil
}

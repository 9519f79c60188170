package classifier_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"linkguard/internal/classifier"
	"linkguard/internal/features"
	"linkguard/internal/svm"
	"linkguard/pkg/domain"
	"linkguard/pkg/serrors"
)

// ipArtifact flags every IP-literal URL as phishing and nothing else.
func ipArtifact(t *testing.T) *classifier.Artifact {
	t.Helper()

	cols := features.Columns()
	weights := make([]float64, len(cols))
	var scaled []string
	for i, c := range cols {
		if c == features.IP {
			weights[i] = 1
		}
		if !features.IsBinary(c) {
			scaled = append(scaled, c)
		}
	}

	scaler := classifier.Scaler{
		Columns: scaled,
		Mean:    make([]float64, len(scaled)),
		Scale:   make([]float64, len(scaled)),
	}
	for i := range scaler.Scale {
		scaler.Scale[i] = 1
	}

	a := &classifier.Artifact{
		Model:   svm.Model{Weights: weights, Bias: -0.5},
		Scaler:  scaler,
		Columns: cols,
		Classes: classifier.DefaultClasses,
	}
	require.NoError(t, a.Validate())

	return a
}

func TestArtifact_Predict(t *testing.T) {
	a := ipArtifact(t)

	label, err := a.Predict(features.Extract("http://192.168.1.1/login"))
	require.NoError(t, err)
	require.Equal(t, domain.LabelPhishing, label)

	label, err = a.Predict(features.Extract("https://www.example.com/path?query=value&x=1"))
	require.NoError(t, err)
	require.Equal(t, domain.LabelLegitimate, label)

	label, err = a.Predict(features.Vector{})
	require.NoError(t, err)
	require.Equal(t, domain.LabelLegitimate, label)
}

func TestArtifact_PredictHonorsClassMapping(t *testing.T) {
	a := ipArtifact(t)
	a.Classes = classifier.Classes{Negative: domain.LabelPhishing, Positive: domain.LabelLegitimate}

	label, err := a.Predict(features.Extract("http://10.0.0.1/"))
	require.NoError(t, err)
	require.Equal(t, domain.LabelLegitimate, label)
}

func TestArtifact_PredictNil(t *testing.T) {
	var a *classifier.Artifact

	_, err := a.Predict(features.Vector{})
	require.ErrorIs(t, err, serrors.ErrUnavailable)
}

func TestArtifact_Validate(t *testing.T) {
	tests := map[string]func(a *classifier.Artifact){
		"no columns":         func(a *classifier.Artifact) { a.Columns = nil },
		"unknown column":     func(a *classifier.Artifact) { a.Columns[0] = "bogus" },
		"weights mismatch":   func(a *classifier.Artifact) { a.Model.Weights = a.Model.Weights[1:] },
		"scaler mismatch":    func(a *classifier.Artifact) { a.Scaler.Mean = a.Scaler.Mean[1:] },
		"zero scale":         func(a *classifier.Artifact) { a.Scaler.Scale[0] = 0 },
		"binary scaled":      func(a *classifier.Artifact) { a.Scaler.Columns[0] = features.IP },
		"same classes":       func(a *classifier.Artifact) { a.Classes.Positive = a.Classes.Negative },
		"unknown class name": func(a *classifier.Artifact) { a.Classes.Positive = "spam" },
	}

	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			a := ipArtifact(t)
			mutate(a)
			require.Error(t, a.Validate())
		})
	}
}

func TestSaveLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "model")
	a := ipArtifact(t)

	require.NoError(t, a.Save(dir))
	require.True(t, classifier.Exists(dir))

	loaded, err := classifier.Load(dir)
	require.NoError(t, err)
	require.Equal(t, a.Columns, loaded.Columns)
	require.Equal(t, a.Classes, loaded.Classes)
	require.Equal(t, a.Model, loaded.Model)
	require.Equal(t, a.Scaler, loaded.Scaler)

	for _, u := range []string{"http://1.2.3.4/x", "https://example.com"} {
		want, err := a.Predict(features.Extract(u))
		require.NoError(t, err)
		got, err := loaded.Predict(features.Extract(u))
		require.NoError(t, err)
		require.Equal(t, want, got, u)
	}
}

func TestLoad_Unavailable(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		_, err := classifier.Load(filepath.Join(t.TempDir(), "nope"))
		require.ErrorIs(t, err, serrors.ErrUnavailable)
	})

	for _, name := range []string{classifier.ModelFile, classifier.ScalerFile, classifier.ColumnsFile} {
		t.Run("missing "+name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, ipArtifact(t).Save(dir))
			require.NoError(t, os.Remove(filepath.Join(dir, name)))
			require.False(t, classifier.Exists(dir))

			_, err := classifier.Load(dir)
			require.ErrorIs(t, err, serrors.ErrUnavailable)
		})
	}

	t.Run("corrupt file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, ipArtifact(t).Save(dir))
		require.NoError(t, os.WriteFile(filepath.Join(dir, classifier.ColumnsFile), []byte("{"), 0o600))

		_, err := classifier.Load(dir)
		require.ErrorIs(t, err, serrors.ErrUnavailable)
	})

	t.Run("columns disagree with model", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, ipArtifact(t).Save(dir))
		require.NoError(t, os.WriteFile(filepath.Join(dir, classifier.ColumnsFile), []byte(`["url_length"]`), 0o600))

		_, err := classifier.Load(dir)
		require.ErrorIs(t, err, serrors.ErrUnavailable)
	})
}

func TestSave_RejectsInvalid(t *testing.T) {
	a := ipArtifact(t)
	a.Columns = nil

	require.Error(t, a.Save(t.TempDir()))
}

func TestScaler(t *testing.T) {
	cols := []string{"a", "b", "c"}
	rows := [][]float64{{1, 10, 0}, {3, 10, 1}}

	s, err := classifier.FitScaler(cols, rows, []string{"a", "b"})
	require.NoError(t, err)
	require.Equal(t, []float64{2, 10}, s.Mean)
	require.Equal(t, []float64{1, 1}, s.Scale)

	out := s.Transform(cols, []float64{4, 12, 1})
	require.Equal(t, []float64{2, 2, 1}, out)

	_, err = classifier.FitScaler(cols, nil, []string{"a"})
	require.Error(t, err)

	_, err = classifier.FitScaler(cols, rows, []string{"z"})
	require.Error(t, err)

	_, err = classifier.FitScaler(cols, [][]float64{{1, 2, 3}, {1, 2}}, []string{"a"})
	require.Error(t, err)
}

func TestScaler_PopulationStdDev(t *testing.T) {
	s, err := classifier.FitScaler([]string{"a"}, [][]float64{{2}, {4}, {4}, {4}, {5}, {5}, {7}, {9}}, []string{"a"})
	require.NoError(t, err)
	require.InDelta(t, 5, s.Mean[0], 1e-12)
	require.InDelta(t, 2, s.Scale[0], 1e-12)
}

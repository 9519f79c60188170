package svm_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"linkguard/internal/svm"
)

func TestVectors(t *testing.T) {
	w := []float64{1, 2, 3}

	require.InDelta(t, 14.0, svm.Dense{1, 2, 3}.Dot(w), 1e-9)
	require.InDelta(t, 3.0, svm.Dense{1, 1}.Dot(w), 1e-9)
	require.InDelta(t, 7.0, svm.Sparse{0: 1, 2: 2, 9: 100}.Dot(w), 1e-9)

	acc := make([]float64, 3)
	svm.Dense{1, 1, 1, 1}.AddTo(acc, 2)
	require.Equal(t, []float64{2, 2, 2}, acc)

	svm.Sparse{1: 1, -1: 5}.AddTo(acc, -1)
	require.Equal(t, []float64{2, 1, 2}, acc)
}

func TestModel_Decision(t *testing.T) {
	m := svm.Model{Weights: []float64{1, -1}, Bias: 0.5}

	require.InDelta(t, 1.5, m.Decision(svm.Dense{1, 0}), 1e-9)
	require.True(t, m.Predict(svm.Dense{1, 0}))
	require.False(t, m.Predict(svm.Dense{0, 1}))
}

func separable() ([]svm.Vector, []bool) {
	xs := []svm.Vector{
		svm.Dense{2, 1}, svm.Dense{3, -1}, svm.Dense{2.5, 0.5}, svm.Dense{4, 2},
		svm.Dense{-2, 1}, svm.Dense{-3, -1}, svm.Dense{-2.5, 0}, svm.Dense{-4, -2},
	}
	ys := []bool{true, true, true, true, false, false, false, false}

	return xs, ys
}

func TestTrain_Separable(t *testing.T) {
	xs, ys := separable()

	m, err := svm.Train(xs, ys, 2, svm.Options{Lambda: 1e-2, Epochs: 200, Seed: 7, Balanced: true})
	require.NoError(t, err)
	require.Len(t, m.Weights, 2)

	for i, x := range xs {
		require.Equal(t, ys[i], m.Predict(x), "sample %d", i)
	}
	require.True(t, m.Predict(svm.Dense{5, 0}))
	require.False(t, m.Predict(svm.Dense{-5, 0}))
}

func TestTrain_Deterministic(t *testing.T) {
	xs, ys := separable()
	opts := svm.Options{Lambda: 1e-2, Epochs: 10, Seed: 42}

	a, err := svm.Train(xs, ys, 2, opts)
	require.NoError(t, err)
	b, err := svm.Train(xs, ys, 2, opts)
	require.NoError(t, err)

	require.Equal(t, a, b)
}

func TestTrain_Sparse(t *testing.T) {
	xs := []svm.Vector{
		svm.Sparse{0: 1}, svm.Sparse{0: 1, 2: 0.5}, svm.Sparse{0: 2},
		svm.Sparse{1: 1}, svm.Sparse{1: 1, 2: 0.5}, svm.Sparse{1: 2},
	}
	ys := []bool{true, true, true, false, false, false}

	m, err := svm.Train(xs, ys, 3, svm.Options{Lambda: 1e-2, Epochs: 100, Seed: 1})
	require.NoError(t, err)
	require.True(t, m.Predict(svm.Sparse{0: 1}))
	require.False(t, m.Predict(svm.Sparse{1: 1}))
}

func TestTrain_InvalidInput(t *testing.T) {
	_, err := svm.Train(nil, nil, 2, svm.Options{})
	require.Error(t, err)

	_, err = svm.Train([]svm.Vector{svm.Dense{1}}, []bool{true, false}, 1, svm.Options{})
	require.Error(t, err)

	_, err = svm.Train([]svm.Vector{svm.Dense{1}}, []bool{true}, 0, svm.Options{})
	require.Error(t, err)

	_, err = svm.Train([]svm.Vector{svm.Dense{1}, svm.Dense{2}}, []bool{true, true}, 1, svm.Options{})
	require.ErrorIs(t, err, svm.ErrSingleClass)
}

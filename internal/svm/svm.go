// Package svm implements a binary linear support vector machine: the decision
// function used at prediction time and a Pegasos (primal sub-gradient)
// trainer used by the offline training commands.
package svm

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
)

// Vector is an input the linear model can score. Indices past the end of the
// weight vector are ignored.
type Vector interface {
	// Dot returns the inner product with w.
	Dot(w []float64) float64
	// AddTo performs w += scale * x.
	AddTo(w []float64, scale float64)
}

// Dense is a dense feature vector.
type Dense []float64

func (d Dense) Dot(w []float64) float64 {
	n := min(len(d), len(w))

	return floats.Dot(d[:n], w[:n])
}

func (d Dense) AddTo(w []float64, scale float64) {
	n := min(len(d), len(w))
	floats.AddScaled(w[:n], scale, d[:n])
}

// Sparse is a sparse feature vector keyed by column index.
type Sparse map[int]float64

func (s Sparse) Dot(w []float64) float64 {
	var sum float64
	for i, v := range s {
		if i >= 0 && i < len(w) {
			sum += v * w[i]
		}
	}

	return sum
}

func (s Sparse) AddTo(w []float64, scale float64) {
	for i, v := range s {
		if i >= 0 && i < len(w) {
			w[i] += scale * v
		}
	}
}

// Model is a trained linear decision function f(x) = w·x + b.
type Model struct {
	Weights []float64 `json:"weights"`
	Bias    float64   `json:"bias"`
}

// Decision returns the signed distance-like score of x. Positive scores
// belong to the positive class.
func (m Model) Decision(x Vector) float64 {
	return x.Dot(m.Weights) + m.Bias
}

// Predict reports whether x falls on the positive side of the hyperplane.
func (m Model) Predict(x Vector) bool {
	return m.Decision(x) > 0
}

// Options tune the Pegasos trainer.
type Options struct {
	// Lambda is the L2 regularization strength. Defaults to 1e-4.
	Lambda float64
	// Epochs is the number of passes over the shuffled training set. Defaults to 20.
	Epochs int
	// Seed makes training deterministic.
	Seed uint64
	// Balanced weights each class inversely to its frequency, n / (2 * n_class).
	Balanced bool
}

// ErrSingleClass is returned when the training labels contain one class only.
var ErrSingleClass = errors.New("training data must contain both classes")

const rescaleThreshold = 1e-9

// Train fits a linear SVM with hinge loss on xs with boolean labels ys
// (true is the positive class). dim is the width of the weight vector.
func Train(xs []Vector, ys []bool, dim int, opts Options) (Model, error) {
	if len(xs) == 0 || len(xs) != len(ys) {
		return Model{}, fmt.Errorf("invalid training set: %d samples, %d labels", len(xs), len(ys))
	}
	if dim <= 0 {
		return Model{}, fmt.Errorf("invalid dimension %d", dim)
	}
	if opts.Lambda <= 0 {
		opts.Lambda = 1e-4
	}
	if opts.Epochs <= 0 {
		opts.Epochs = 20
	}

	var positives int
	for _, y := range ys {
		if y {
			positives++
		}
	}
	negatives := len(ys) - positives
	if positives == 0 || negatives == 0 {
		return Model{}, ErrSingleClass
	}

	weightPos, weightNeg := 1.0, 1.0
	if opts.Balanced {
		weightPos = float64(len(ys)) / (2 * float64(positives))
		weightNeg = float64(len(ys)) / (2 * float64(negatives))
	}

	// w = scale * v, so the per-step shrink is O(1) instead of O(dim).
	v := make([]float64, dim)
	var vb float64
	scale := 1.0

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)) //nolint: gosec
	order := make([]int, len(xs))
	for i := range order {
		order[i] = i
	}

	t := 0
	for range opts.Epochs {
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
		for _, i := range order {
			t++
			eta := 1 / (opts.Lambda * float64(t+1))

			y, c := -1.0, weightNeg
			if ys[i] {
				y, c = 1.0, weightPos
			}
			margin := y * scale * (xs[i].Dot(v) + vb)

			scale *= 1 - eta*opts.Lambda
			if margin < 1 {
				step := eta * c * y / scale
				xs[i].AddTo(v, step)
				vb += step
			}

			if scale < rescaleThreshold {
				floats.Scale(scale, v)
				vb *= scale
				scale = 1
			}
		}
	}

	w := floats.ScaleTo(make([]float64, dim), scale, v)
	m := Model{Weights: w, Bias: vb * scale}
	if !finite(m) {
		return Model{}, errors.New("training diverged")
	}

	return m, nil
}

func finite(m Model) bool {
	if math.IsNaN(m.Bias) || math.IsInf(m.Bias, 0) {
		return false
	}
	if len(m.Weights) == 0 {
		return true
	}

	return !floats.HasNaN(m.Weights) && !math.IsInf(floats.Max(m.Weights), 0) && !math.IsInf(floats.Min(m.Weights), 0)
}

package email

import (
	"linkguard/internal/svm"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
)

// Vectorizer maps token lists to L2-normalized TF-IDF vectors.
type Vectorizer struct {
	// Vocabulary maps a token to its column.
	Vocabulary map[string]int `json:"vocabulary"`
	// IDF holds the inverse document frequency of each column.
	IDF []float64 `json:"idf"`
}

// FitVectorizer learns the vocabulary and the smoothed idf,
// ln((1 + n) / (1 + df)) + 1, of docs. Columns are assigned in token order.
func FitVectorizer(docs [][]string) Vectorizer {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{}, len(doc))
		for _, tok := range doc {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	terms := make([]string, 0, len(df))
	for tok := range df {
		terms = append(terms, tok)
	}
	slices.Sort(terms)

	v := Vectorizer{
		Vocabulary: make(map[string]int, len(terms)),
		IDF:        make([]float64, len(terms)),
	}
	n := float64(len(docs))
	for i, tok := range terms {
		v.Vocabulary[tok] = i
		v.IDF[i] = math.Log((1+n)/(1+float64(df[tok]))) + 1
	}

	return v
}

// Dim is the number of columns.
func (v Vectorizer) Dim() int { return len(v.IDF) }

// Transform returns the TF-IDF vector of tokens. Unknown tokens are ignored.
func (v Vectorizer) Transform(tokens []string) svm.Sparse {
	counts := make(map[int]float64)
	for _, tok := range tokens {
		if i, ok := v.Vocabulary[tok]; ok {
			counts[i]++
		}
	}

	cols := make([]int, 0, len(counts))
	for i := range counts {
		cols = append(cols, i)
	}
	slices.Sort(cols)

	weights := make([]float64, len(cols))
	for k, i := range cols {
		weights[k] = counts[i] * v.IDF[i]
	}
	if norm := floats.Norm(weights, 2); norm > 0 {
		floats.Scale(1/norm, weights)
	}

	out := make(svm.Sparse, len(cols))
	for k, i := range cols {
		out[i] = weights[k]
	}

	return out
}

package email_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"linkguard/internal/email"
)

func TestVectorizer(t *testing.T) {
	v := email.FitVectorizer([][]string{{"a", "b", "b"}, {"a", "c"}})

	require.Equal(t, map[string]int{"a": 0, "b": 1, "c": 2}, v.Vocabulary)
	require.Equal(t, 3, v.Dim())
	require.InDelta(t, 1.0, v.IDF[0], 1e-12)
	require.InDelta(t, math.Log(1.5)+1, v.IDF[1], 1e-12)
	require.InDelta(t, math.Log(1.5)+1, v.IDF[2], 1e-12)

	x := v.Transform([]string{"a", "a", "b", "unknown"})
	require.Len(t, x, 2)

	var norm float64
	for _, w := range x {
		norm += w * w
	}
	require.InDelta(t, 1.0, norm, 1e-12)
	require.InDelta(t, 2/(math.Log(1.5)+1), x[0]/x[1], 1e-12)

	require.Empty(t, v.Transform(nil))
	require.Empty(t, v.Transform([]string{"unknown"}))
}

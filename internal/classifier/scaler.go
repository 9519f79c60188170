package classifier

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Scaler standardizes a subset of columns to zero mean and unit variance,
// x' = (x - mean) / scale. Columns it does not list pass through unchanged.
type Scaler struct {
	Columns []string  `json:"columns"`
	Mean    []float64 `json:"mean"`
	Scale   []float64 `json:"scale"`
}

// FitScaler fits a scaler on the given columns of rows. rows are aligned to
// cols; only the columns listed in scaled are fitted. A column with zero
// variance gets scale 1.
func FitScaler(cols []string, rows [][]float64, scaled []string) (Scaler, error) {
	if len(rows) == 0 || len(cols) == 0 {
		return Scaler{}, errors.New("cannot fit scaler on an empty set")
	}

	index := columnIndex(cols)
	s := Scaler{
		Columns: append([]string(nil), scaled...),
		Mean:    make([]float64, len(scaled)),
		Scale:   make([]float64, len(scaled)),
	}

	data := mat.NewDense(len(rows), len(cols), nil)
	for r, row := range rows {
		if len(row) != len(cols) {
			return Scaler{}, fmt.Errorf("row %d has %d values, want %d", r, len(row), len(cols))
		}
		data.SetRow(r, row)
	}

	column := make([]float64, len(rows))
	for j, col := range scaled {
		i, ok := index[col]
		if !ok {
			return Scaler{}, fmt.Errorf("unknown scaled column %q", col)
		}

		// population standard deviation, as used by standard scalers
		mean, std := stat.PopMeanStdDev(mat.Col(column, i, data), nil)
		if std == 0 || math.IsNaN(std) {
			std = 1
		}

		s.Mean[j] = mean
		s.Scale[j] = std
	}

	return s, nil
}

// Transform returns a scaled copy of values, which are aligned to cols.
func (s Scaler) Transform(cols []string, values []float64) []float64 {
	out := append([]float64(nil), values...)
	index := columnIndex(cols)
	for j, col := range s.Columns {
		i, ok := index[col]
		if !ok || i >= len(out) {
			continue
		}
		out[i] = (out[i] - s.Mean[j]) / s.Scale[j]
	}

	return out
}

func (s Scaler) validate() error {
	if len(s.Mean) != len(s.Columns) || len(s.Scale) != len(s.Columns) {
		return fmt.Errorf("scaler has %d columns, %d means and %d scales", len(s.Columns), len(s.Mean), len(s.Scale))
	}
	for j, sc := range s.Scale {
		if sc == 0 || math.IsNaN(sc) || math.IsInf(sc, 0) {
			return fmt.Errorf("scaler column %q has invalid scale %v", s.Columns[j], sc)
		}
	}

	return nil
}

func columnIndex(cols []string) map[string]int {
	index := make(map[string]int, len(cols))
	for i, c := range cols {
		index[c] = i
	}

	return index
}

package analysis

import (
	"fmt"
	"math"

	"kids-screentime/internal/models"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/mat"
)

// CorrelationMatrix is a symmetric matrix of Pearson coefficients over the
// named columns.
type CorrelationMatrix struct {
	Columns []string
	Values  *mat.SymDense
}

// At returns the coefficient between columns i and j.
func (c *CorrelationMatrix) At(i, j int) float64 {
	return c.Values.At(i, j)
}

// Size returns the number of columns.
func (c *CorrelationMatrix) Size() int {
	return len(c.Columns)
}

// Correlate computes pairwise Pearson correlations between every numeric
// column. Each pair uses only the rows where both cells are present; pairs
// with fewer than two such rows, or a constant side, are NaN. The diagonal is always 1.
func Correlate(t *models.Table) (*CorrelationMatrix, error) {
	columns := t.NumericColumns()
	if len(columns) == 0 {
		return nil, ErrNoNumericColumns
	}

	data := make([][]float64, len(columns))
	for i, col := range columns {
		data[i] = t.Floats(col)
	}

	k := len(columns)
	values := mat.NewSymDense(k, nil)
	for i := 0; i < k; i++ {
		values.SetSym(i, i, 1)
		for j := i + 1; j < k; j++ {
			r, err := pearson(data[i], data[j])
			if err != nil {
				return nil, fmt.Errorf("correlating %s and %s: %w", columns[i], columns[j], err)
			}
			values.SetSym(i, j, r)
		}
	}

	return &CorrelationMatrix{Columns: columns, Values: values}, nil
}

func pearson(a, b []float64) (float64, error) {
	x := make([]float64, 0, len(a))
	y := make([]float64, 0, len(b))
	for i := range a {
		if math.IsNaN(a[i]) || math.IsNaN(b[i]) {
			continue
		}
		x = append(x, a[i])
		y = append(y, b[i])
	}
	if len(x) < 2 {
		return math.NaN(), nil
	}
	// constant series have no defined correlation
	for _, series := range [][]float64{x, y} {
		sd, err := stats.StandardDeviationPopulation(series)
		if err != nil {
			return 0, err
		}
		if sd == 0 {
			return math.NaN(), nil
		}
	}
	return stats.Pearson(x, y)
}

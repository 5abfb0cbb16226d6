package analysis

import (
	"fmt"
	"math"
	"sort"

	"kids-screentime/internal/models"

	"github.com/montanaflynn/stats"
)

// GroupMean is the mean of a value column for one key.
type GroupMean struct {
	Key  float64
	Mean float64
	N    int
}

// MeanBy groups rows by the distinct values of keyColumn and averages
// valueColumn within each group. Groups come back in ascending key order;
// rows missing either cell are skipped.
func MeanBy(t *models.Table, keyColumn, valueColumn string) ([]GroupMean, error) {
	if err := RequireColumns(t, keyColumn, valueColumn); err != nil {
		return nil, err
	}
	if !t.IsNumeric(keyColumn) {
		return nil, &NonNumericColumnError{Column: keyColumn}
	}
	if !t.IsNumeric(valueColumn) {
		return nil, &NonNumericColumnError{Column: valueColumn}
	}

	keys := t.Floats(keyColumn)
	values := t.Floats(valueColumn)

	groups := make(map[float64][]float64)
	for i, key := range keys {
		if math.IsNaN(key) || math.IsNaN(values[i]) {
			continue
		}
		groups[key] = append(groups[key], values[i])
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("%s by %s: %w", valueColumn, keyColumn, ErrNoValues)
	}

	result := make([]GroupMean, 0, len(groups))
	for key, vals := range groups {
		mean, err := stats.Mean(vals)
		if err != nil {
			return nil, fmt.Errorf("mean for %s=%v: %w", keyColumn, key, err)
		}
		result = append(result, GroupMean{Key: key, Mean: mean, N: len(vals)})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Key < result[j].Key
	})
	return result, nil
}

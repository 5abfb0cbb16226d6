package analysis

import (
	"fmt"

	"kids-screentime/internal/models"

	"github.com/montanaflynn/stats"
)

// Summary holds the headline figures of the dataset.
type Summary struct {
	Records       int
	MeanAge       float64
	MeanDailyTime float64
}

// Summarize counts records and averages Age and Avg_Daily_Screen_Time,
// skipping missing cells.
func Summarize(t *models.Table) (Summary, error) {
	if err := RequireColumns(t, ColumnAge, ColumnScreenTime); err != nil {
		return Summary{}, err
	}

	meanAge, err := Mean(t, ColumnAge)
	if err != nil {
		return Summary{}, err
	}
	meanTime, err := Mean(t, ColumnScreenTime)
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		Records:       t.Len(),
		MeanAge:       meanAge,
		MeanDailyTime: meanTime,
	}, nil
}

// Mean returns the arithmetic mean of a numeric column.
func Mean(t *models.Table, column string) (float64, error) {
	values, err := numericValues(t, column)
	if err != nil {
		return 0, err
	}
	if len(values) == 0 {
		return 0, fmt.Errorf("%s: %w", column, ErrNoValues)
	}
	mean, err := stats.Mean(values)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", column, err)
	}
	return mean, nil
}

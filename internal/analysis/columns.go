// Package analysis computes the aggregates behind each report: column
// checks, means, frequency counts, grouped means and correlations.
package analysis

import (
	"errors"
	"fmt"
	"math"

	"kids-screentime/internal/models"
)

const (
	ColumnAge        = "Age"
	ColumnScreenTime = "Avg_Daily_Screen_Time"
	ColumnDevice     = "Primary_Device"
	ColumnGender     = "Gender"
)

var (
	ErrNoNumericColumns = errors.New("no numeric columns for correlation analysis")
	ErrNoValues         = errors.New("no valid values")
)

// MissingColumnError reports a required column absent from the table.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("Missing column: %s", e.Column)
}

// NonNumericColumnError reports a column that must be numeric but is not.
type NonNumericColumnError struct {
	Column string
}

func (e *NonNumericColumnError) Error() string {
	return fmt.Sprintf("column %s is not numeric", e.Column)
}

// RequireColumns returns a MissingColumnError for the first absent column, in
// the order given.
func RequireColumns(t *models.Table, columns ...string) error {
	for _, col := range columns {
		if !t.HasColumn(col) {
			return &MissingColumnError{Column: col}
		}
	}
	return nil
}

// numericValues returns the non-missing values of a numeric column.
func numericValues(t *models.Table, column string) ([]float64, error) {
	if !t.IsNumeric(column) {
		return nil, &NonNumericColumnError{Column: column}
	}
	raw := t.Floats(column)
	values := make([]float64, 0, len(raw))
	for _, v := range raw {
		if !math.IsNaN(v) {
			values = append(values, v)
		}
	}
	return values, nil
}

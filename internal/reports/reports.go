// Package reports turns a loaded table into the five user-facing reports:
// one text summary and four charts.
package reports

import (
	"fmt"

	"kids-screentime/internal/charts"
	"kids-screentime/internal/models"
)

// ID identifies one of the fixed reports.
type ID int

const (
	BasicStats ID = iota
	DeviceDistribution
	GenderDistribution
	ScreenTimeByAge
	Correlation
)

// Result is either a message (Chart == nil) or a rendered chart.
type Result struct {
	Title   string
	Message string
	Chart   *charts.Chart
}

// IsChart reports whether the result should open a chart window.
func (r *Result) IsChart() bool {
	return r.Chart != nil
}

// Report binds a report's identity to its implementation.
type Report struct {
	ID   ID
	Name string
	// FailurePrefix heads the message shown when computation or rendering fails.
	FailurePrefix string
	run           func(t *models.Table) (*Result, error)
}

var registry = []Report{
	{ID: BasicStats, Name: "basic_stats", FailurePrefix: "Cannot calculate stats", run: runBasicStats},
	{ID: DeviceDistribution, Name: "device_distribution", FailurePrefix: "Cannot plot device distribution", run: runDeviceDistribution},
	{ID: GenderDistribution, Name: "gender_distribution", FailurePrefix: "Cannot plot gender distribution", run: runGenderDistribution},
	{ID: ScreenTimeByAge, Name: "screen_time_by_age", FailurePrefix: "Cannot plot screen time by age", run: runScreenTimeByAge},
	{ID: Correlation, Name: "correlation", FailurePrefix: "Cannot generate correlation heatmap", run: runCorrelation},
}

// All returns the reports in display order.
func All() []Report {
	out := make([]Report, len(registry))
	copy(out, registry)
	return out
}

// Get looks a report up by ID.
func Get(id ID) (Report, error) {
	for _, r := range registry {
		if r.ID == id {
			return r, nil
		}
	}
	return Report{}, fmt.Errorf("unknown report %d", id)
}

// Execute runs the report against t. Panics raised by the aggregation or
// plotting libraries come back as errors.
func (r Report) Execute(t *models.Table) (res *Result, err error) {
	if t == nil {
		return nil, fmt.Errorf("%s: no table", r.Name)
	}
	defer func() {
		if p := recover(); p != nil {
			res = nil
			err = fmt.Errorf("%v", p)
		}
	}()
	return r.run(t)
}

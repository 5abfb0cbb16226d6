package reports

import (
	"fmt"
	"image/color"

	"kids-screentime/internal/analysis"
	"kids-screentime/internal/charts"
	"kids-screentime/internal/models"
)

const (
	titleBasicStats  = "Basic Statistics"
	titleDevice      = "Primary Device Usage"
	titleGender      = "Gender Distribution"
	titleScreenByAge = "Average Screen Time by Age"
	titleCorrelation = "Correlation Heatmap"

	pieStartAngle = 140
	skyBlue       = "#87CEEB"
)

var genderPalette = []color.Color{charts.Hex("#66b3ff"), charts.Hex("#ff9999")}

func runBasicStats(t *models.Table) (*Result, error) {
	summary, err := analysis.Summarize(t)
	if err != nil {
		return nil, err
	}
	return &Result{
		Title:   titleBasicStats,
		Message: FormatSummary(summary),
	}, nil
}

// FormatSummary renders the basic statistics message.
func FormatSummary(s analysis.Summary) string {
	return fmt.Sprintf(
		"Total Records: %d\nAverage Age: %.2f\nAverage Daily Screen Time: %.2f hrs\n",
		s.Records, s.MeanAge, s.MeanDailyTime,
	)
}

func runDeviceDistribution(t *models.Table) (*Result, error) {
	counts, err := analysis.ValueCounts(t, analysis.ColumnDevice)
	if err != nil {
		return nil, err
	}
	labels, values := split(counts)
	chart, err := charts.Pie(titleDevice, labels, values, charts.PieOptions{StartAngle: pieStartAngle})
	if err != nil {
		return nil, err
	}
	return &Result{Title: titleDevice, Chart: chart}, nil
}

func runGenderDistribution(t *models.Table) (*Result, error) {
	counts, err := analysis.ValueCounts(t, analysis.ColumnGender)
	if err != nil {
		return nil, err
	}
	labels, values := split(counts)
	chart, err := charts.Bar(titleGender, labels, values, charts.BarOptions{
		XLabel: "Gender",
		YLabel: "Count",
		Colors: genderPalette,
	})
	if err != nil {
		return nil, err
	}
	return &Result{Title: titleGender, Chart: chart}, nil
}

func runScreenTimeByAge(t *models.Table) (*Result, error) {
	groups, err := analysis.MeanBy(t, analysis.ColumnAge, analysis.ColumnScreenTime)
	if err != nil {
		return nil, err
	}
	xs := make([]float64, len(groups))
	ys := make([]float64, len(groups))
	for i, g := range groups {
		xs[i] = g.Key
		ys[i] = g.Mean
	}
	chart, err := charts.Line(titleScreenByAge, xs, ys, charts.LineOptions{
		XLabel: "Age",
		YLabel: "Avg Daily Screen Time (hrs)",
		Color:  skyBlue,
		Grid:   true,
	})
	if err != nil {
		return nil, err
	}
	return &Result{Title: titleScreenByAge, Chart: chart}, nil
}

func runCorrelation(t *models.Table) (*Result, error) {
	matrix, err := analysis.Correlate(t)
	if err != nil {
		return nil, err
	}
	chart, err := charts.Heatmap(titleCorrelation, matrix.Columns, matrix.At, charts.HeatmapOptions{
		Min:      -1,
		Max:      1,
		Annotate: true,
	})
	if err != nil {
		return nil, err
	}
	return &Result{Title: titleCorrelation, Chart: chart}, nil
}

func split(counts []analysis.Count) ([]string, []float64) {
	labels := make([]string, len(counts))
	values := make([]float64, len(counts))
	for i, c := range counts {
		labels[i] = c.Category
		values[i] = float64(c.Count)
	}
	return labels, values
}

package charts

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// BarOptions describes axis labels and the bar palette, cycled by index.
type BarOptions struct {
	XLabel string
	YLabel string
	Colors []color.Color
}

// Bar draws one bar per category.
func Bar(title string, labels []string, values []float64, opts BarOptions) (*Chart, error) {
	if len(labels) != len(values) {
		return nil, ErrLengthMismatch
	}
	if len(values) == 0 {
		return nil, ErrNoData
	}
	colors := opts.Colors
	if len(colors) == 0 {
		colors = SliceColors
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = opts.XLabel
	p.Y.Label.Text = opts.YLabel
	p.Y.Min = 0

	// one chart per bar so each can carry its own color
	for i, v := range values {
		bars, err := plotter.NewBarChart(plotter.Values{v}, vg.Points(40))
		if err != nil {
			return nil, err
		}
		bars.XMin = float64(i)
		bars.Color = colors[i%len(colors)]
		bars.LineStyle.Width = 0
		p.Add(bars)
	}
	p.NominalX(labels...)
	p.Add(plotter.NewGrid())

	img := rasterize(DefaultWidth, DefaultHeight, p.Draw)
	return &Chart{Title: title, Image: img}, nil
}

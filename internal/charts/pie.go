package charts

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// SliceColors is the default slice palette.
var SliceColors = []color.Color{
	Hex("#1f77b4"), Hex("#ff7f0e"), Hex("#2ca02c"), Hex("#d62728"), Hex("#9467bd"),
	Hex("#8c564b"), Hex("#e377c2"), Hex("#7f7f7f"), Hex("#bcbd22"), Hex("#17becf"),
}

// PieOptions controls slice placement.
type PieOptions struct {
	// StartAngle is where the first slice begins, in degrees counter-clockwise from 3 o'clock.
	StartAngle float64
	Colors     []color.Color
}

// Pie draws one slice per value, labelled with its name outside the slice
// and its share of the total ("%.1f%%") inside.
func Pie(title string, labels []string, values []float64, opts PieOptions) (*Chart, error) {
	if len(labels) != len(values) {
		return nil, ErrLengthMismatch
	}
	total := 0.0
	for _, v := range values {
		if v < 0 || math.IsNaN(v) {
			return nil, fmt.Errorf("invalid slice value %v", v)
		}
		total += v
	}
	if len(values) == 0 || total == 0 {
		return nil, ErrNoData
	}

	colors := opts.Colors
	if len(colors) == 0 {
		colors = SliceColors
	}

	p := plot.New()
	p.Title.Text = title
	p.HideAxes()
	p.Add(&pieSlices{
		labels:     labels,
		values:     values,
		total:      total,
		startAngle: opts.StartAngle * math.Pi / 180,
		colors:     colors,
	})

	img := rasterize(DefaultWidth, DefaultHeight, p.Draw)
	return &Chart{Title: title, Image: img}, nil
}

// pieSlices is a plot.Plotter drawing a pie centred in the data area.
type pieSlices struct {
	labels     []string
	values     []float64
	total      float64
	startAngle float64
	colors     []color.Color
}

func (ps *pieSlices) Plot(c draw.Canvas, plt *plot.Plot) {
	size := c.Size()
	radius := size.X
	if size.Y < radius {
		radius = size.Y
	}
	radius = radius / 2 * 0.75
	center := vg.Point{
		X: (c.Min.X + c.Max.X) / 2,
		Y: (c.Min.Y + c.Max.Y) / 2,
	}

	labelStyle := plt.Title.TextStyle
	labelStyle.Font.Size = vg.Points(10)
	labelStyle.XAlign = text.XCenter
	labelStyle.YAlign = text.YCenter
	labelStyle.Color = color.Black

	edge := draw.LineStyle{Color: color.White, Width: vg.Points(1)}

	angle := ps.startAngle
	for i, v := range ps.values {
		if v == 0 {
			continue
		}
		share := v / ps.total
		sweep := share * 2 * math.Pi

		var path vg.Path
		path.Move(center)
		path.Arc(center, radius, angle, sweep)
		path.Close()

		c.SetColor(ps.colors[i%len(ps.colors)])
		c.Fill(path)
		c.SetLineStyle(edge)
		c.Stroke(path)

		mid := angle + sweep/2
		c.FillText(labelStyle, polar(center, radius*0.6, mid), fmt.Sprintf("%.1f%%", share*100))
		c.FillText(labelStyle, polar(center, radius*1.15, mid), ps.labels[i])

		angle += sweep
	}
}

func polar(center vg.Point, r vg.Length, theta float64) vg.Point {
	return vg.Point{
		X: center.X + r*vg.Length(math.Cos(theta)),
		Y: center.Y + r*vg.Length(math.Sin(theta)),
	}
}

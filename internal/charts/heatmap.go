package charts

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Fixed figure size for the heatmap.
var (
	HeatmapWidth  = 8 * vg.Inch
	HeatmapHeight = 6 * vg.Inch
)

const colorBarWidth = 1.2 * vg.Inch

// HeatmapOptions bounds the diverging color scale.
type HeatmapOptions struct {
	Min, Max float64
	Annotate bool
}

// Heatmap draws a square matrix as colored cells with row 0 at the top,
// optionally printing each value ("%.2f"), plus a color bar on the right.
func Heatmap(title string, names []string, at func(i, j int) float64, opts HeatmapOptions) (*Chart, error) {
	k := len(names)
	if k == 0 {
		return nil, ErrNoData
	}
	if opts.Max <= opts.Min {
		return nil, fmt.Errorf("invalid color scale [%v, %v]", opts.Min, opts.Max)
	}

	grid := matrixGrid{k: k, at: at}

	cmap := moreland.SmoothBlueRed()
	cmap.SetMin(opts.Min)
	cmap.SetMax(opts.Max)

	hm := plotter.NewHeatMap(grid, cmap.Palette(255))
	hm.Min = opts.Min
	hm.Max = opts.Max
	hm.NaN = color.Gray{Y: 0xdd}

	p := plot.New()
	p.Title.Text = title
	p.Add(hm)

	ticks := make([]plot.Tick, k)
	reversed := make([]plot.Tick, k)
	for i, name := range names {
		ticks[i] = plot.Tick{Value: float64(i), Label: name}
		reversed[i] = plot.Tick{Value: float64(k - 1 - i), Label: name}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.Y.Tick.Marker = plot.ConstantTicks(reversed)
	p.X.Tick.Label.Rotation = math.Pi / 6
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter

	if opts.Annotate {
		labels, err := annotations(grid)
		if err != nil {
			return nil, err
		}
		p.Add(labels)
	}

	bar := plot.New()
	bar.HideX()
	bar.Y.Padding = 0
	bar.Add(&plotter.ColorBar{ColorMap: cmap, Vertical: true})

	img := rasterize(HeatmapWidth, HeatmapHeight, func(dc draw.Canvas) {
		p.Draw(draw.Crop(dc, 0, -colorBarWidth, 0, 0))
		bar.Draw(draw.Crop(dc, HeatmapWidth-colorBarWidth, 0, vg.Inch*0.6, -vg.Inch*0.4))
	})
	return &Chart{Title: title, Image: img}, nil
}

// matrixGrid adapts a k×k matrix to plotter.GridXYZ, flipping rows so the
// first row is drawn at the top.
type matrixGrid struct {
	k  int
	at func(i, j int) float64
}

func (g matrixGrid) Dims() (c, r int)   { return g.k, g.k }
func (g matrixGrid) Z(c, r int) float64 { return g.at(g.k-1-r, c) }
func (g matrixGrid) X(c int) float64    { return float64(c) }
func (g matrixGrid) Y(r int) float64    { return float64(r) }

func annotations(g matrixGrid) (*plotter.Labels, error) {
	var data plotter.XYLabels
	for r := 0; r < g.k; r++ {
		for c := 0; c < g.k; c++ {
			data.XYs = append(data.XYs, plotter.XY{X: g.X(c), Y: g.Y(r)})
			data.Labels = append(data.Labels, formatCell(g.Z(c, r)))
		}
	}
	labels, err := plotter.NewLabels(data)
	if err != nil {
		return nil, err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = text.XCenter
		labels.TextStyle[i].YAlign = text.YCenter
	}
	return labels, nil
}

func formatCell(v float64) string {
	if math.IsNaN(v) {
		return "nan"
	}
	return fmt.Sprintf("%.2f", v)
}

package charts

import (
	"bytes"
	"fmt"
	"image/png"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// LineOptions styles a single-series line chart.
type LineOptions struct {
	XLabel string
	YLabel string
	Color  string // "#rrggbb"
	Grid   bool
}

// Line draws ys against xs with a marker on every point. xs must be ascending.
func Line(title string, xs, ys []float64, opts LineOptions) (*Chart, error) {
	if len(xs) != len(ys) {
		return nil, ErrLengthMismatch
	}
	if len(xs) == 0 {
		return nil, ErrNoData
	}

	col := drawing.ColorFromHex(trimHash(opts.Color))
	series := chart.ContinuousSeries{
		Name:    title,
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeColor: col,
			StrokeWidth: 2,
			DotColor:    col,
			DotWidth:    4,
		},
	}

	xAxis := chart.XAxis{Name: opts.XLabel}
	yAxis := chart.YAxis{Name: opts.YLabel}
	if opts.Grid {
		grid := chart.Style{StrokeColor: drawing.ColorFromHex("d8d8d8"), StrokeWidth: 1}
		xAxis.GridMajorStyle = grid
		yAxis.GridMajorStyle = grid
	}
	// the renderer rejects zero-width ranges, so pad a degenerate axis
	if minX, maxX := bounds(xs); minX == maxX {
		xAxis.Range = &chart.ContinuousRange{Min: minX - 1, Max: maxX + 1}
	}
	if minY, maxY := bounds(ys); minY == maxY {
		yAxis.Range = &chart.ContinuousRange{Min: minY - 1, Max: maxY + 1}
	}

	ch := chart.Chart{
		Title:      title,
		Width:      int(math.Round(DefaultWidth.Dots(dpi))),
		Height:     int(math.Round(DefaultHeight.Dots(dpi))),
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      xAxis,
		YAxis:      yAxis,
		Series:     []chart.Series{series},
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render line chart: %w", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode line chart: %w", err)
	}
	return &Chart{Title: title, Image: img}, nil
}

func trimHash(s string) string {
	if len(s) > 0 && s[0] == '#' {
		return s[1:]
	}
	return s
}

func bounds(vs []float64) (float64, float64) {
	lo, hi := vs[0], vs[0]
	for _, v := range vs[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

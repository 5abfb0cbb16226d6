package charts

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// containsColor reports whether any pixel is within tol of want on every channel.
func containsColor(img image.Image, want color.RGBA, tol int) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if near(int(r>>8), int(want.R), tol) && near(int(g>>8), int(want.G), tol) && near(int(bl>>8), int(want.B), tol) {
				return true
			}
		}
	}
	return false
}

func near(a, b, tol int) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= tol
}

func assertSize(t *testing.T, c *Chart, w, h int) {
	t.Helper()
	gotW, gotH := c.Size()
	assert.InDelta(t, w, gotW, 1)
	assert.InDelta(t, h, gotH, 1)
}

func TestHex(t *testing.T) {
	assert.Equal(t, color.RGBA{R: 0x66, G: 0xb3, B: 0xff, A: 0xff}, Hex("#66b3ff"))
	assert.Equal(t, color.RGBA{R: 0xff, G: 0x99, B: 0x99, A: 0xff}, Hex("#FF9999"))
	assert.Equal(t, color.RGBA{A: 0xff}, Hex("skyblue"))
}

func TestPie(t *testing.T) {
	red := Hex("#d62728")
	green := Hex("#2ca02c")

	c, err := Pie("Primary Device Usage", []string{"Smartphone", "TV"}, []float64{3, 1}, PieOptions{
		StartAngle: 140,
		Colors:     []color.Color{red, green},
	})
	require.NoError(t, err)

	assert.Equal(t, "Primary Device Usage", c.Title)
	assertSize(t, c, 640, 480)
	assert.True(t, containsColor(c.Image, red, 0))
	assert.True(t, containsColor(c.Image, green, 0))
}

func TestPie_Errors(t *testing.T) {
	_, err := Pie("x", []string{"a"}, []float64{1, 2}, PieOptions{})
	assert.ErrorIs(t, err, ErrLengthMismatch)

	_, err = Pie("x", nil, nil, PieOptions{})
	assert.ErrorIs(t, err, ErrNoData)

	_, err = Pie("x", []string{"a"}, []float64{0}, PieOptions{})
	assert.ErrorIs(t, err, ErrNoData)

	_, err = Pie("x", []string{"a"}, []float64{-1}, PieOptions{})
	assert.Error(t, err)
}

func TestBar(t *testing.T) {
	blue, pink := Hex("#66b3ff"), Hex("#ff9999")

	c, err := Bar("Gender Distribution", []string{"Female", "Male"}, []float64{4, 3}, BarOptions{
		XLabel: "Gender",
		YLabel: "Count",
		Colors: []color.Color{blue, pink},
	})
	require.NoError(t, err)

	assertSize(t, c, 640, 480)
	assert.True(t, containsColor(c.Image, blue, 0))
	assert.True(t, containsColor(c.Image, pink, 0))
}

func TestBar_Errors(t *testing.T) {
	_, err := Bar("x", []string{"a", "b"}, []float64{1}, BarOptions{})
	assert.ErrorIs(t, err, ErrLengthMismatch)

	_, err = Bar("x", nil, nil, BarOptions{})
	assert.ErrorIs(t, err, ErrNoData)
}

func TestLine(t *testing.T) {
	c, err := Line("Average Screen Time by Age", []float64{8, 9, 10}, []float64{3, 4, 2.5}, LineOptions{
		XLabel: "Age",
		YLabel: "Avg Daily Screen Time (hrs)",
		Color:  "#87CEEB",
		Grid:   true,
	})
	require.NoError(t, err)

	assertSize(t, c, 640, 480)
	assert.True(t, containsColor(c.Image, Hex("#87CEEB"), 16))
}

func TestLine_DegenerateRanges(t *testing.T) {
	_, err := Line("one", []float64{10}, []float64{2}, LineOptions{Color: "#87CEEB"})
	assert.NoError(t, err)

	_, err = Line("flat", []float64{1, 2, 3}, []float64{2, 2, 2}, LineOptions{Color: "#87CEEB"})
	assert.NoError(t, err)

	_, err = Line("none", nil, nil, LineOptions{})
	assert.ErrorIs(t, err, ErrNoData)
}

func TestHeatmap(t *testing.T) {
	m := [][]float64{
		{1, -0.5, math.NaN()},
		{-0.5, 1, 0.25},
		{math.NaN(), 0.25, 1},
	}
	c, err := Heatmap("Correlation Heatmap", []string{"a", "b", "c"}, func(i, j int) float64 {
		return m[i][j]
	}, HeatmapOptions{Min: -1, Max: 1, Annotate: true})
	require.NoError(t, err)

	assertSize(t, c, 800, 600)
}

func TestHeatmap_Errors(t *testing.T) {
	at := func(i, j int) float64 { return 0 }

	_, err := Heatmap("x", nil, at, HeatmapOptions{Min: -1, Max: 1})
	assert.ErrorIs(t, err, ErrNoData)

	_, err = Heatmap("x", []string{"a"}, at, HeatmapOptions{Min: 1, Max: 1})
	assert.Error(t, err)
}

func TestMatrixGrid_FlipsRows(t *testing.T) {
	g := matrixGrid{k: 2, at: func(i, j int) float64 { return float64(10*i + j) }}

	c, r := g.Dims()
	assert.Equal(t, 2, c)
	assert.Equal(t, 2, r)
	// grid row 1 (top) is matrix row 0
	assert.Equal(t, 1.0, g.Z(1, 1))
	assert.Equal(t, 10.0, g.Z(0, 0))
}

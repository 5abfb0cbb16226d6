// Package charts renders report data into raster images.
package charts

import (
	"errors"
	"image"
	"image/color"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const dpi = 100

// Default figure size, matching the common 6.4x4.8in plotting default.
var (
	DefaultWidth  = 6.4 * vg.Inch
	DefaultHeight = 4.8 * vg.Inch
)

var (
	ErrNoData         = errors.New("no data to plot")
	ErrLengthMismatch = errors.New("labels and values differ in length")
)

// Chart is a rendered figure ready to be shown in its own window.
type Chart struct {
	Title string
	Image image.Image
}

// Size returns the pixel dimensions of the rendered image.
func (c *Chart) Size() (int, int) {
	b := c.Image.Bounds()
	return b.Dx(), b.Dy()
}

func rasterize(w, h vg.Length, paint func(dc draw.Canvas)) image.Image {
	canvas := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(dpi))
	paint(draw.New(canvas))
	return canvas.Image()
}

// Hex parses "#rrggbb" into an opaque color; malformed input yields black.
func Hex(s string) color.RGBA {
	c := color.RGBA{A: 0xff}
	if len(s) == 7 && s[0] == '#' {
		c.R = hexByte(s[1], s[2])
		c.G = hexByte(s[3], s[4])
		c.B = hexByte(s[5], s[6])
	}
	return c
}

func hexByte(hi, lo byte) uint8 {
	return hexNibble(hi)<<4 | hexNibble(lo)
}

func hexNibble(b byte) uint8 {
	switch {
	case b >= '0' && b <= '9':
		return b - '0'
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10
	}
	return 0
}

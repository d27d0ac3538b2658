package overlay

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette returns n visually distinct, fully opaque colors by spacing hues
// evenly around the HSV wheel. The same n always yields the same colors, so
// rerendering a dataset keeps category colors stable.
func Palette(n int) []color.RGBA {
	if n <= 0 {
		return nil
	}
	out := make([]color.RGBA, n)
	for i := range out {
		c := colorful.Hsv(float64(i)*360.0/float64(n), 0.85, 0.95)
		r, g, b := c.RGB255()
		out[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return out
}

package gradient

import (
	"image"
	"image/color"
	"math"

	"github.com/paulmach/orb"
)

// Arrow returns the glyph for vector v anchored at pixel (x, y): the shaft
// from the anchor to the tip followed by the two head strokes, each starting
// at the tip. ok is false for zero length and NaN vectors.
func Arrow(x, y int, v Vector, opts Options) (glyph orb.MultiLineString, ok bool) {
	if !v.Drawable() {
		return nil, false
	}

	theta := math.Atan2(v.DY, v.DX)
	tail := orb.Point{float64(x), float64(y)}
	tip := orb.Point{
		tail[0] + opts.ArrowLength*math.Cos(theta),
		tail[1] + opts.ArrowLength*math.Sin(theta),
	}

	spread := opts.HeadAngle * math.Pi / 180
	head := opts.headLength()
	barb := func(angle float64) orb.LineString {
		return orb.LineString{tip, {
			tip[0] - head*math.Cos(angle),
			tip[1] - head*math.Sin(angle),
		}}
	}

	return orb.MultiLineString{
		{tail, tip},
		barb(theta + spread),
		barb(theta - spread),
	}, true
}

// Overlay draws the arrow of every sampled, drawable vector of f onto a copy
// of base. base itself is left untouched.
func Overlay(base *image.RGBA, f *Field, opts Options) *image.RGBA {
	img := image.NewRGBA(base.Bounds())
	copy(img.Pix, base.Pix)

	for _, p := range f.Points() {
		glyph, ok := Arrow(p.X, p.Y, p.Vector, opts)
		if !ok {
			continue
		}
		for _, stroke := range glyph {
			for i := 1; i < len(stroke); i++ {
				drawLine(img, stroke[i-1], stroke[i], opts.Color)
			}
		}
	}

	return img
}

// drawLine rasterises the segment a-b with Bresenham's algorithm. Pixels
// outside img are dropped.
func drawLine(img *image.RGBA, a, b orb.Point, c color.RGBA) {
	x0, y0 := int(math.Round(a[0])), int(math.Round(a[1]))
	x1, y1 := int(math.Round(b[0])), int(math.Round(b[1]))

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy

	bounds := img.Bounds()
	for {
		if (image.Point{X: x0, Y: y0}).In(bounds) {
			img.SetRGBA(x0, y0, c)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

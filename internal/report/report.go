// Package report draws a diagnostic chart of an elevation grid: a heat map
// of the elevations, contour lines and the sampled gradient field as a
// quiver plot, all in world coordinates.
package report

import (
	"image"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/gruppe-adler/meh-relief/internal/colormap"
	"github.com/gruppe-adler/meh-relief/internal/dem"
	"github.com/gruppe-adler/meh-relief/internal/gradient"
	"github.com/gruppe-adler/meh-relief/internal/render"
)

// Options configures the chart.
type Options struct {
	Title    string
	Gradient colormap.Gradient
	// Colors is the number of palette steps of the heat map.
	Colors int
	// Levels is the number of contour lines, 0 disables them.
	Levels     int
	ArrowColor color.Color
}

// DefaultOptions draws a turbo heat map with 10 contour lines.
func DefaultOptions() Options {
	return Options{
		Title:      "Elevation",
		Gradient:   colormap.Turbo,
		Colors:     64,
		Levels:     10,
		ArrowColor: color.Black,
	}
}

// Plot builds the chart. Contours are only drawn for grids without
// missing cells.
func Plot(grid *dem.ElevationGrid, rng render.Range, field *gradient.Field, opts Options) *plot.Plot {
	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	g := newGridXYZ(grid, rng)

	heatMap := plotter.NewHeatMap(g, colormap.Palette(opts.Gradient, opts.Colors))
	heatMap.NaN = color.Transparent
	p.Add(heatMap)

	if opts.Levels > 0 && grid.Valid() == len(grid.Cells) && rng.Max > rng.Min {
		contours := plotter.NewContour(g, Levels(rng, opts.Levels), colormap.Palette(colormap.Gray, opts.Levels))
		p.Add(contours)
	}

	if field != nil && drawable(field) {
		quiver := plotter.NewField(newFieldXY(grid, field))
		quiver.LineStyle.Color = opts.ArrowColor
		quiver.LineStyle.Width = vg.Points(0.5)
		p.Add(quiver)
	}

	return p
}

// drawable reports whether gonum can lay out the field: it needs at least
// two sampled columns and rows and one vector of non zero length.
func drawable(field *gradient.Field) bool {
	if len(field.Columns()) < 2 || len(field.Rows()) < 2 {
		return false
	}
	for _, p := range field.Points() {
		if p.Drawable() {
			return true
		}
	}
	return false
}

// Levels returns n elevations evenly spaced strictly inside rng.
func Levels(rng render.Range, n int) []float64 {
	levels := make([]float64, n)
	step := (rng.Max - rng.Min) / float64(n+1)
	for i := range levels {
		levels[i] = rng.Min + step*float64(i+1)
	}
	return levels
}

// Render draws p onto a raster canvas of the given size.
func Render(p *plot.Plot, width, height vg.Length) image.Image {
	c := vgimg.New(width, height)
	p.Draw(draw.New(c))
	return c.Image()
}

// gridXYZ presents an elevation grid to gonum with rows flipped, so row 0
// is the southernmost row and Y grows with the row index.
type gridXYZ struct {
	grid     *dem.ElevationGrid
	min, max float64
}

func newGridXYZ(grid *dem.ElevationGrid, rng render.Range) gridXYZ {
	g := gridXYZ{grid: grid, min: rng.Min, max: rng.Max}
	if !(g.max > g.min) {
		g.max = g.min + 1
	}
	return g
}

func (g gridXYZ) Dims() (c, r int)   { return g.grid.Width, g.grid.Height }
func (g gridXYZ) Z(c, r int) float64 { return g.grid.Z(c, g.grid.Height-1-r) }
func (g gridXYZ) X(c int) float64    { return g.grid.X(c) }
func (g gridXYZ) Y(r int) float64    { return g.grid.Y(g.grid.Height - 1 - r) }
func (g gridXYZ) Min() float64       { return g.min }
func (g gridXYZ) Max() float64       { return g.max }

// fieldXY presents the sampled cells of a gradient field to gonum, rows
// flipped like gridXYZ. Vectors are turned into world orientation.
type fieldXY struct {
	grid   *dem.ElevationGrid
	field  *gradient.Field
	xs, ys []int
}

func newFieldXY(grid *dem.ElevationGrid, field *gradient.Field) fieldXY {
	ys := field.Rows()
	flipped := make([]int, len(ys))
	for i, y := range ys {
		flipped[len(ys)-1-i] = y
	}
	return fieldXY{grid: grid, field: field, xs: field.Columns(), ys: flipped}
}

func (f fieldXY) Dims() (c, r int) { return len(f.xs), len(f.ys) }
func (f fieldXY) X(c int) float64  { return f.grid.X(f.xs[c]) }
func (f fieldXY) Y(r int) float64  { return f.grid.Y(f.ys[r]) }

func (f fieldXY) Vector(c, r int) plotter.XY {
	v := f.field.At(f.xs[c], f.ys[r])
	if math.IsNaN(v.Magnitude()) || math.IsInf(v.Magnitude(), 0) {
		return plotter.XY{}
	}
	return plotter.XY{X: v.DX, Y: -v.DY}
}

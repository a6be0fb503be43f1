// Package gradient samples a windowed elevation gradient on a regular grid
// of cells and draws it as arrows on top of a rendered raster.
package gradient

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/gruppe-adler/meh-relief/internal/dem"
	"github.com/gruppe-adler/meh-relief/internal/parallel"
)

// ErrInvalidOptions is returned for a window that is even or smaller than 3,
// or a stride below 1.
var ErrInvalidOptions = errors.New("gradient: invalid options")

// Options controls sampling and arrow drawing.
type Options struct {
	// Window is the odd side length of the averaging window.
	Window int
	// Stride is the spacing in cells between two sampled cells.
	Stride int

	// ArrowLength is the length of every arrow shaft in pixels, whatever
	// the magnitude of its vector.
	ArrowLength float64
	// HeadLength is the length of the two arrowhead strokes. Zero, or a
	// length not shorter than the shaft, means a third of ArrowLength.
	HeadLength float64
	// HeadAngle is the angle between shaft and head strokes, in degrees.
	HeadAngle float64
	Color     color.RGBA
}

// DefaultOptions samples every 30th cell over a 5 cell window and draws
// 12 pixel red arrows with 4 pixel heads.
func DefaultOptions() Options {
	return Options{
		Window:      5,
		Stride:      30,
		ArrowLength: 12,
		HeadAngle:   30,
		Color:       color.RGBA{R: 255, A: 255},
	}
}

func (o Options) headLength() float64 {
	if o.HeadLength <= 0 || o.HeadLength >= o.ArrowLength {
		return o.ArrowLength / 3
	}
	return o.HeadLength
}

func (o Options) validate() error {
	if o.Window < 3 || o.Window%2 == 0 {
		return fmt.Errorf("%w: window must be odd and at least 3, got %d", ErrInvalidOptions, o.Window)
	}
	if o.Stride < 1 {
		return fmt.Errorf("%w: stride must be at least 1, got %d", ErrInvalidOptions, o.Stride)
	}
	return nil
}

// Vector is a local elevation gradient. It points downhill: DX grows when
// the terrain falls towards larger columns, DY when it falls towards larger
// rows.
type Vector struct {
	DX, DY float64
}

// Magnitude is the euclidean length of v, NaN if a component is NaN.
func (v Vector) Magnitude() float64 {
	return math.Sqrt(v.DX*v.DX + v.DY*v.DY)
}

// Drawable reports whether v has a finite, non zero length.
func (v Vector) Drawable() bool {
	m := v.Magnitude()
	return m > 0 && !math.IsInf(m, 0)
}

// Field holds one vector per grid cell, row-major. Only sampled cells carry
// a computed vector; every other cell is the zero vector.
type Field struct {
	Width, Height int
	Window        int
	Stride        int
	Vectors       []Vector
}

// Sample computes the vector at every sampled cell of grid. A cell is
// sampled when both its coordinates are multiples of the stride and it lies
// at least half a window away from every border.
//
// For half window h the x component is the sum of the h cells left of the
// sampled cell minus the sum of the h cells right of it, divided by h; the y
// component is computed the same way along the column. A sampled cell
// without data of its own gets a NaN vector, so nothing is drawn or
// exported for it.
func Sample(grid *dem.ElevationGrid, opts Options) (*Field, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	f := &Field{
		Width:   grid.Width,
		Height:  grid.Height,
		Window:  opts.Window,
		Stride:  opts.Stride,
		Vectors: make([]Vector, grid.Width*grid.Height),
	}

	h := f.half()
	columns := make(map[int][]float64)
	for _, x := range f.Columns() {
		columns[x] = grid.Column(x)
	}

	ys := f.Rows()
	parallel.Rows(len(ys), func(i int) {
		y := ys[i]
		row := grid.Row(y)
		for x, column := range columns {
			if math.IsNaN(row[x]) {
				f.Vectors[y*f.Width+x] = Vector{DX: math.NaN(), DY: math.NaN()}
				continue
			}
			f.Vectors[y*f.Width+x] = Vector{
				DX: (floats.Sum(row[x-h:x]) - floats.Sum(row[x+1:x+h+1])) / float64(h),
				DY: (floats.Sum(column[y-h:y]) - floats.Sum(column[y+1:y+h+1])) / float64(h),
			}
		}
	})

	return f, nil
}

func (f *Field) half() int {
	return f.Window / 2
}

// Columns returns the sampled column indices in ascending order.
func (f *Field) Columns() []int {
	return sampledAxis(f.Width, f.Stride, f.half())
}

// Rows returns the sampled row indices in ascending order.
func (f *Field) Rows() []int {
	return sampledAxis(f.Height, f.Stride, f.half())
}

func sampledAxis(n, stride, h int) []int {
	var idx []int
	for i := 0; i < n-h; i += stride {
		if i >= h {
			idx = append(idx, i)
		}
	}
	return idx
}

// At returns the vector of cell (x, y).
func (f *Field) At(x, y int) Vector {
	return f.Vectors[y*f.Width+x]
}

// Point is a sampled cell with its vector.
type Point struct {
	X, Y int
	Vector
}

// Points lists the sampled cells in row-major order.
func (f *Field) Points() []Point {
	xs, ys := f.Columns(), f.Rows()
	points := make([]Point, 0, len(xs)*len(ys))
	for _, y := range ys {
		for _, x := range xs {
			points = append(points, Point{X: x, Y: y, Vector: f.At(x, y)})
		}
	}
	return points
}

package dem

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ElevationGrid represents a parsed ESRI ASCII Grid.
//
// Cells are stored row-major (index = row*Width + col). Missing values are
// stored as NaN. A grid is never modified after parsing; every renderer
// allocates its own output.
type ElevationGrid struct {
	Width, Height int
	CellSize      float64

	// lower left corner of the grid in world units
	Xcorner, Ycorner float64

	Cells []float64
}

// NewElevationGrid checks the shape invariants and wraps cells into a grid.
// cells is used as is, not copied.
func NewElevationGrid(width, height int, cellSize float64, cells []float64) (*ElevationGrid, error) {
	if width <= 0 || height <= 0 {
		return nil, &ParseError{Msg: fmt.Sprintf("grid dimensions must be positive, got %dx%d", width, height)}
	}
	if width > math.MaxInt/height {
		return nil, &ParseError{Msg: fmt.Sprintf("grid of %dx%d cells is too large", width, height)}
	}
	if !(cellSize > 0) {
		return nil, &ParseError{Msg: "cellsize must be greater than 0"}
	}
	if len(cells) != width*height {
		return nil, &ShapeMismatchError{Width: width, Height: height, Got: len(cells)}
	}

	return &ElevationGrid{
		Width:    width,
		Height:   height,
		CellSize: cellSize,
		Cells:    cells,
	}, nil
}

// Dims returns the dimensions of the grid.
func (g *ElevationGrid) Dims() (c, r int) {
	return g.Width, g.Height
}

// Index returns the position of (c, r) in Cells.
func (g *ElevationGrid) Index(c, r int) int {
	return r*g.Width + c
}

// Z returns the value of a grid value at (c, r).
// It will panic if c or r are out of bounds for the grid.
func (g *ElevationGrid) Z(c, r int) float64 {
	if c < 0 || c >= g.Width || r < 0 || r >= g.Height {
		panic(fmt.Sprintf("dem: cell (%d, %d) out of bounds for %dx%d grid", c, r, g.Width, g.Height))
	}
	return g.Cells[g.Index(c, r)]
}

// X returns the world coordinate of the centre of column c.
func (g *ElevationGrid) X(c int) float64 {
	return g.Xcorner + (float64(c)+0.5)*g.CellSize
}

// Y returns the world coordinate of the centre of row r. Row 0 is the
// northernmost row.
func (g *ElevationGrid) Y(r int) float64 {
	return g.Ycorner + (float64(g.Height-r)-0.5)*g.CellSize
}

// Row returns row r as a view into Cells. Callers must not modify it.
func (g *ElevationGrid) Row(r int) []float64 {
	start := g.Index(0, r)
	return g.Cells[start : start+g.Width : start+g.Width]
}

// Column returns a copy of column c.
func (g *ElevationGrid) Column(c int) []float64 {
	return mat.Col(nil, c, g.Matrix())
}

// Matrix returns a height x width matrix backed by Cells.
func (g *ElevationGrid) Matrix() *mat.Dense {
	return mat.NewDense(g.Height, g.Width, g.Cells)
}

// Valid reports the number of non NaN cells.
func (g *ElevationGrid) Valid() int {
	n := 0
	for _, z := range g.Cells {
		if !math.IsNaN(z) {
			n++
		}
	}
	return n
}

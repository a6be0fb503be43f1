// Package render turns an elevation grid into grayscale and colour rasters
// by normalising every cell against the grid's value range.
package render

import (
	"math"

	"github.com/gruppe-adler/meh-relief/internal/dem"
)

// Range is the closed interval of valid elevations in a grid.
type Range struct {
	Min, Max float64
}

// NewRange scans all non NaN cells once, in order. It returns
// dem.ErrEmptyRange if the grid holds no valid cell.
func NewRange(grid *dem.ElevationGrid) (Range, error) {
	rng := Range{Min: math.Inf(1), Max: math.Inf(-1)}
	valid := false

	for _, z := range grid.Cells {
		if math.IsNaN(z) {
			continue
		}
		valid = true
		if z < rng.Min {
			rng.Min = z
		}
		if z > rng.Max {
			rng.Max = z
		}
	}

	if !valid {
		return Range{}, dem.ErrEmptyRange
	}
	return rng, nil
}

// Normalize maps z into [0, 1]. NaN and a degenerate range map to 0.
func (r Range) Normalize(z float64) float64 {
	span := r.Max - r.Min
	if math.IsNaN(z) || !(span > 0) {
		return 0
	}

	t := (z - r.Min) / span
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	}
	return t
}

// Gray8 quantises the normalised value of z to 8 bits, truncating.
func (r Range) Gray8(z float64) uint8 {
	return uint8(r.Normalize(z) * 255)
}

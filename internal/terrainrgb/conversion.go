package terrainrgb

import (
	"image"
	"image/color"
	"math"

	"github.com/gruppe-adler/meh-relief/internal/dem"
	"github.com/gruppe-adler/meh-relief/internal/parallel"
)

/*
	The Mapbox Terrain-RGB Tiles use the following equation to decode
	height values from rgb.

	height = -10000 + ((R * 256 * 256 + G * 256 + B) * 0.1)

	Replacing (R * 256 * 256 + G * 256 + B) with x and solving for x gives
	x = 10 * height + 100000, which we write as a base 256 number:
	position 2 is r, position 1 is g and position 0 is b.
*/

// MaxX is the largest encodable x.
const MaxX = 1<<24 - 1

// HeightToRgb calculates rgb values from height. Heights outside the
// encodable range [-10000, 1667721.5] are clamped.
func HeightToRgb(height float64) color.RGBA {
	x := int64(math.Round(10*height + 100000))
	if x < 0 {
		x = 0
	}
	if x > MaxX {
		x = MaxX
	}

	return color.RGBA{
		R: uint8(x >> 16),
		G: uint8(x >> 8),
		B: uint8(x),
		A: 255,
	}
}

// Image encodes every cell of grid, shifted by elevationOffset. NaN cells
// stay transparent.
func Image(grid *dem.ElevationGrid, elevationOffset float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, grid.Width, grid.Height))

	parallel.Rows(grid.Height, func(y int) {
		for x, z := range grid.Row(y) {
			if math.IsNaN(z) {
				continue
			}
			img.SetRGBA(x, y, HeightToRgb(z+elevationOffset))
		}
	})

	return img
}

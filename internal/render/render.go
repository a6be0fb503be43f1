package render

import (
	"image"

	"github.com/gruppe-adler/meh-relief/internal/colormap"
	"github.com/gruppe-adler/meh-relief/internal/dem"
	"github.com/gruppe-adler/meh-relief/internal/parallel"
)

// Grayscale renders every cell as its normalised intensity, so the lowest
// valid elevation is black and the highest is white. NaN cells are black.
func Grayscale(grid *dem.ElevationGrid, rng Range) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, grid.Width, grid.Height))

	parallel.Rows(grid.Height, func(y int) {
		row := grid.Row(y)
		pix := img.Pix[y*img.Stride : y*img.Stride+grid.Width]
		for x, z := range row {
			pix[x] = rng.Gray8(z)
		}
	})

	return img
}

// Color renders every cell through gradient g. The image is fully opaque.
func Color(grid *dem.ElevationGrid, rng Range, g colormap.Gradient) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, grid.Width, grid.Height))

	parallel.Rows(grid.Height, func(y int) {
		for x, z := range grid.Row(y) {
			c := g.At(rng.Normalize(z))
			c.A = 255
			img.SetRGBA(x, y, c)
		}
	})

	return img
}

// Package shade computes hillshade relief from an elevation grid.
//
// Slope and aspect are estimated per interior cell with Horn's 3x3 finite
// difference kernel, scaled by the grid's cell size. Border cells have no
// full neighbourhood and are never written: they keep the zero value of the
// output raster (black, and transparent for RGBA).
package shade

import (
	"image"
	"math"

	"github.com/gruppe-adler/meh-relief/internal/dem"
	"github.com/gruppe-adler/meh-relief/internal/parallel"
)

// Options positions the light source, both angles in degrees.
type Options struct {
	// Azimuth is the compass direction the light comes from.
	Azimuth float64
	// Altitude is the elevation of the light above the horizon.
	Altitude float64
}

// DefaultOptions lights the terrain from the north-west, 45° above the
// horizon.
func DefaultOptions() Options {
	return Options{Azimuth: 315, Altitude: 45}
}

// Light is a light source with its trigonometry precomputed.
type Light struct {
	azimuth        float64
	sinAlt, cosAlt float64
}

// NewLight converts opts to radians.
func NewLight(opts Options) Light {
	alt := opts.Altitude * math.Pi / 180
	return Light{
		azimuth: opts.Azimuth * math.Pi / 180,
		sinAlt:  math.Sin(alt),
		cosAlt:  math.Cos(alt),
	}
}

// Intensity returns the unclamped illumination in [-255, 255] of a surface
// with the given derivatives. NaN derivatives give NaN.
func (l Light) Intensity(dzdx, dzdy float64) float64 {
	slope := math.Atan(math.Sqrt(dzdx*dzdx + dzdy*dzdy))
	aspect := math.Atan2(dzdy, dzdx)

	return 255 * (l.cosAlt*math.Cos(slope) +
		l.sinAlt*math.Sin(slope)*math.Cos(l.azimuth-aspect))
}

// Interior reports whether (x, y) has a full 3x3 neighbourhood.
func Interior(grid *dem.ElevationGrid, x, y int) bool {
	return x >= 1 && x < grid.Width-1 && y >= 1 && y < grid.Height-1
}

// Horn estimates the surface derivatives at interior cell (x, y). For cells
// on the border it returns NaN.
func Horn(grid *dem.ElevationGrid, x, y int) (dzdx, dzdy float64) {
	if !Interior(grid, x, y) {
		return math.NaN(), math.NaN()
	}

	above := grid.Row(y - 1)[x-1 : x+2]
	row := grid.Row(y)[x-1 : x+2]
	below := grid.Row(y + 1)[x-1 : x+2]

	z1, z2, z3 := above[0], above[1], above[2]
	z4, z6 := row[0], row[2]
	z7, z8, z9 := below[0], below[1], below[2]

	scale := 8 * grid.CellSize
	dzdx = ((z3 + 2*z6 + z9) - (z1 + 2*z4 + z7)) / scale
	dzdy = ((z7 + 2*z8 + z9) - (z1 + 2*z2 + z3)) / scale

	return dzdx, dzdy
}

// Pixel clamps an intensity to [0, 255] and truncates it. NaN becomes 0.
func Pixel(intensity float64) uint8 {
	switch {
	case math.IsNaN(intensity), intensity <= 0:
		return 0
	case intensity >= 255:
		return 255
	}
	return uint8(intensity)
}

// Hillshade shades every interior cell of grid. The second result tints
// colored with the shade: each channel is scaled by shade/255 and alpha set
// to 255. colored must have the grid's dimensions; pass nil to skip tinting.
func Hillshade(grid *dem.ElevationGrid, colored *image.RGBA, opts Options) (*image.Gray, *image.RGBA) {
	bounds := image.Rect(0, 0, grid.Width, grid.Height)
	light := NewLight(opts)

	gray := image.NewGray(bounds)
	var tinted *image.RGBA
	if colored != nil {
		tinted = image.NewRGBA(bounds)
	}

	if grid.Width < 3 || grid.Height < 3 {
		return gray, tinted
	}

	parallel.Rows(grid.Height-2, func(i int) {
		y := i + 1
		for x := 1; x < grid.Width-1; x++ {
			dzdx, dzdy := Horn(grid, x, y)
			shade := Pixel(light.Intensity(dzdx, dzdy))
			gray.Pix[gray.PixOffset(x, y)] = shade

			if tinted == nil {
				continue
			}
			c := colored.RGBAAt(x, y)
			c.R = tint(c.R, shade)
			c.G = tint(c.G, shade)
			c.B = tint(c.B, shade)
			c.A = 255
			tinted.SetRGBA(x, y, c)
		}
	})

	return gray, tinted
}

func tint(channel, shade uint8) uint8 {
	return uint8(float64(channel) * float64(shade) / 255)
}

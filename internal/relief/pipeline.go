// Package relief wires the raster stages together: parse, normalise,
// grayscale and colour rendering, hillshading and the gradient overlay.
package relief

import (
	"fmt"
	"image"
	"io"

	"github.com/gruppe-adler/meh-relief/internal/colormap"
	"github.com/gruppe-adler/meh-relief/internal/dem"
	"github.com/gruppe-adler/meh-relief/internal/gradient"
	"github.com/gruppe-adler/meh-relief/internal/render"
	"github.com/gruppe-adler/meh-relief/internal/shade"
	"github.com/gruppe-adler/meh-relief/internal/sink"
)

// Options configures every stage of the pipeline.
type Options struct {
	// GradientName names Gradient in output file names.
	GradientName string
	Gradient     colormap.Gradient
	Light        shade.Options
	Field        gradient.Options
}

// DefaultOptions renders with turbo, lights from 315°/45° and samples the
// gradient every 30 cells.
func DefaultOptions() Options {
	return Options{
		GradientName: "turbo",
		Gradient:     colormap.Turbo,
		Light:        shade.DefaultOptions(),
		Field:        gradient.DefaultOptions(),
	}
}

// Result holds every raster derived from one grid. All rasters have the
// grid's dimensions and none of them shares memory with another.
type Result struct {
	Grid  *dem.ElevationGrid
	Range render.Range

	Grayscale      *image.Gray
	Color          *image.RGBA
	Hillshade      *image.Gray
	HillshadeColor *image.RGBA
	Field          *gradient.Field
	Overlay        *image.RGBA

	gradientName string
}

// Parse reads grid text from r and processes it.
func Parse(r io.Reader, opts Options) (*Result, error) {
	grid, err := dem.ParseEsriASCIIRaster(r)
	if err != nil {
		return nil, err
	}
	return Process(grid, opts)
}

// Process runs all stages on grid. It fails only for a grid without valid
// cells and for invalid gradient sampling options; both are checked before
// anything is rendered.
func Process(grid *dem.ElevationGrid, opts Options) (*Result, error) {
	if opts.Gradient == nil {
		opts.Gradient = colormap.Turbo
		opts.GradientName = "turbo"
	}

	rng, err := render.NewRange(grid)
	if err != nil {
		return nil, err
	}

	field, err := gradient.Sample(grid, opts.Field)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Grid:         grid,
		Range:        rng,
		Field:        field,
		gradientName: opts.GradientName,
	}

	res.Grayscale = render.Grayscale(grid, rng)
	res.Color = render.Color(grid, rng, opts.Gradient)
	res.Hillshade, res.HillshadeColor = shade.Hillshade(grid, res.Color, opts.Light)
	res.Overlay = gradient.Overlay(res.HillshadeColor, field, opts.Field)

	return res, nil
}

// Images names every raster of r. stamp is appended to each name to keep
// runs apart.
func (r *Result) Images(stamp string) []sink.Named {
	name := r.gradientName
	if name == "" {
		name = "custom"
	}

	return []sink.Named{
		{Name: fmt.Sprintf("output_%s", stamp), Image: r.Grayscale},
		{Name: fmt.Sprintf("output_rgb_%s_%s", stamp, name), Image: r.Color},
		{Name: fmt.Sprintf("hillshade_gray_%s", stamp), Image: r.Hillshade},
		{Name: fmt.Sprintf("hillshade_rgb_%s", stamp), Image: r.HillshadeColor},
		{Name: fmt.Sprintf("hillshade_rgb_gradient_%s", stamp), Image: r.Overlay},
	}
}

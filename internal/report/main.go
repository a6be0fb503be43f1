package report

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gonum.org/v1/plot/vg"

	"github.com/gruppe-adler/meh-relief/internal/colormap"
	"github.com/gruppe-adler/meh-relief/internal/dem"
	"github.com/gruppe-adler/meh-relief/internal/gradient"
	"github.com/gruppe-adler/meh-relief/internal/render"
	"github.com/gruppe-adler/meh-relief/internal/sink"
	"github.com/gruppe-adler/meh-relief/internal/utils"
)

// Run is the program's entrypoint
func Run(flagSet *flag.FlagSet) {

	opts := DefaultOptions()
	fieldOpts := gradient.DefaultOptions()

	outputPtr := flagSet.String("out", "", "Path to output directory")
	inputPtr := flagSet.String("in", "", "Path to ESRI ASCII grid (.asc or .asc.gz)")
	colormapPtr := flagSet.String("colormap", "turbo", "Color gradient: "+strings.Join(colormap.Names(), ", "))
	formatPtr := flagSet.String("format", sink.PNG, "Image format: png or tiff")
	widthPtr := flagSet.Float64("width", 20, "Chart width in cm")
	heightPtr := flagSet.Float64("height", 16, "Chart height in cm")
	flagSet.IntVar(&opts.Levels, "levels", opts.Levels, "Number of contour lines")
	flagSet.IntVar(&fieldOpts.Stride, "stride", fieldOpts.Stride, "Spacing of gradient arrows in cells")
	flagSet.IntVar(&fieldOpts.Window, "window", fieldOpts.Window, "Odd gradient window size in cells")

	flagSet.Parse(os.Args[2:])

	// make sure both flags are present
	if *outputPtr == "" || *inputPtr == "" {
		flagSet.PrintDefaults()
		os.Exit(1)
	}

	if err := utils.CheckIO(*inputPtr, *outputPtr); err != nil {
		log.Fatal(err)
	}

	g, err := colormap.ByName(*colormapPtr)
	if err != nil {
		log.Fatal(err)
	}
	opts.Gradient = g
	opts.Title = filepath.Base(*inputPtr)

	fmt.Println("✔️  Validated flags")

	progress := utils.NewProgress(os.Stdout)

	var grid *dem.ElevationGrid
	err = progress.Stage("Loading DEM", "Loaded DEM", func() (err error) {
		grid, err = dem.Read(*inputPtr)
		return err
	})
	if err != nil {
		log.Fatal(err)
	}

	var rng render.Range
	var field *gradient.Field
	err = progress.Stage("Sampling gradient field", "Sampled gradient field", func() (err error) {
		if rng, err = render.NewRange(grid); err != nil {
			return err
		}
		field, err = gradient.Sample(grid, fieldOpts)
		return err
	})
	if err != nil {
		log.Fatal(err)
	}

	err = progress.Stage("Drawing report", "Wrote report", func() error {
		p := Plot(grid, rng, field, opts)
		img := Render(p, vg.Length(*widthPtr)*vg.Centimeter, vg.Length(*heightPtr)*vg.Centimeter)

		name := fmt.Sprintf("report_%s", time.Now().Format("20060102_150405"))
		return sink.Dir{Path: *outputPtr, Format: *formatPtr}.Save(name, img)
	})
	if err != nil {
		log.Fatal(err)
	}

	progress.Finish()
}

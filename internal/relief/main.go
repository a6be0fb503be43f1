package relief

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gruppe-adler/meh-relief/internal/colormap"
	"github.com/gruppe-adler/meh-relief/internal/dem"
	"github.com/gruppe-adler/meh-relief/internal/peaks"
	"github.com/gruppe-adler/meh-relief/internal/sink"
	"github.com/gruppe-adler/meh-relief/internal/tiles"
	"github.com/gruppe-adler/meh-relief/internal/utils"
)

// Run is the program's entrypoint
func Run(flagSet *flag.FlagSet) {

	opts := DefaultOptions()

	outputPtr := flagSet.String("out", "", "Path to output directory")
	inputPtr := flagSet.String("in", "", "Path to ESRI ASCII grid (.asc or .asc.gz)")
	colormapPtr := flagSet.String("colormap", opts.GradientName, "Color gradient: "+strings.Join(colormap.Names(), ", "))
	formatPtr := flagSet.String("format", sink.PNG, "Image format: png or tiff")
	previewsPtr := flagSet.String("previews", "", "Comma separated heights of additional downscaled copies")
	geojsonPtr := flagSet.Bool("geojson", false, "Also export the sampled gradient vectors and peaks as GeoJSON")
	peakMinPtr := flagSet.Float64("peakmin", 0, "Only export peaks above this elevation")
	mbtilesPtr := flagSet.Bool("mbtiles", false, "Also write the shaded relief as MBTiles tile pyramid")
	flagSet.Float64Var(&opts.Light.Azimuth, "azimuth", opts.Light.Azimuth, "Light azimuth in degrees")
	flagSet.Float64Var(&opts.Light.Altitude, "altitude", opts.Light.Altitude, "Light altitude in degrees")
	flagSet.IntVar(&opts.Field.Stride, "stride", opts.Field.Stride, "Spacing of gradient arrows in cells")
	flagSet.IntVar(&opts.Field.Window, "window", opts.Field.Window, "Odd gradient window size in cells")
	flagSet.Float64Var(&opts.Field.ArrowLength, "arrow", opts.Field.ArrowLength, "Arrow length in pixels")
	flagSet.Float64Var(&opts.Field.HeadLength, "head", opts.Field.HeadLength, "Arrowhead length in pixels, 0 for a third of -arrow")

	flagSet.Parse(os.Args[2:])

	// make sure both flags are present
	if *outputPtr == "" || *inputPtr == "" {
		flagSet.PrintDefaults()
		os.Exit(1)
	}

	if err := utils.CheckIO(*inputPtr, *outputPtr); err != nil {
		log.Fatal(err)
	}

	gradient, err := colormap.ByName(*colormapPtr)
	if err != nil {
		log.Fatal(err)
	}
	opts.Gradient = gradient
	opts.GradientName = strings.ToLower(*colormapPtr)

	previews, err := parseSizes(*previewsPtr)
	if err != nil {
		log.Fatal(err)
	}
	out := sink.Dir{Path: *outputPtr, Format: *formatPtr, Previews: previews}

	fmt.Println("✔️  Validated flags")

	progress := utils.NewProgress(os.Stdout)
	stamp := time.Now().Format("20060102_150405")

	var grid *dem.ElevationGrid
	err = progress.Stage("Loading DEM", "Loaded DEM", func() (err error) {
		grid, err = dem.Read(*inputPtr)
		return err
	})
	if err != nil {
		log.Fatal(err)
	}
	progress.Info("Grid is %dx%d cells of %g, %d without data", grid.Width, grid.Height, grid.CellSize, len(grid.Cells)-grid.Valid())

	var res *Result
	err = progress.Stage("Rendering rasters", "Rendered rasters", func() (err error) {
		res, err = Process(grid, opts)
		return err
	})
	if err != nil {
		log.Fatal(err)
	}
	progress.Info("Elevation range %g .. %g, %d gradient samples", res.Range.Min, res.Range.Max, len(res.Field.Points()))

	// nothing is written before every raster was computed
	err = progress.Stage("Writing images", "Wrote images", func() error {
		return sink.SaveAll(out, res.Images(stamp))
	})
	if err != nil {
		log.Fatal(err)
	}

	if *geojsonPtr {
		err = progress.Stage("Writing GeoJSON", "Wrote GeoJSON", func() error {
			raw, err := res.Field.FeatureCollection(grid).MarshalJSON()
			if err != nil {
				return err
			}
			if err := os.WriteFile(filepath.Join(*outputPtr, fmt.Sprintf("gradient_%s.geojson", stamp)), raw, 0o644); err != nil {
				return err
			}

			found := peaks.Find(grid, *peakMinPtr)
			progress.Info("Found %d peaks", len(found))
			raw, err = peaks.FeatureCollection(grid, found).MarshalJSON()
			if err != nil {
				return err
			}
			return os.WriteFile(filepath.Join(*outputPtr, fmt.Sprintf("peaks_%s.geojson", stamp)), raw, 0o644)
		})
		if err != nil {
			log.Fatal(err)
		}
	}

	if *mbtilesPtr {
		err = progress.Stage("Building MBTiles", "Built MBTiles", func() error {
			m, err := sink.OpenMBTiles(filepath.Join(*outputPtr, fmt.Sprintf("hillshade_rgb_%s.mbtiles", stamp)), filepath.Base(*inputPtr)+" hillshade")
			if err != nil {
				return err
			}
			maxLod, err := tiles.Build(res.HillshadeColor, m)
			if err != nil {
				m.Close()
				return err
			}
			if err := m.InsertMeta(map[string]string{"minzoom": "0", "maxzoom": strconv.Itoa(int(maxLod))}); err != nil {
				m.Close()
				return err
			}
			return m.Close()
		})
		if err != nil {
			log.Fatal(err)
		}
	}

	progress.Finish()
}

// parseSizes parses a comma separated list of positive sizes.
func parseSizes(list string) ([]uint, error) {
	var sizes []uint
	for _, field := range strings.Split(list, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		size, err := strconv.ParseUint(field, 10, 32)
		if err != nil || size == 0 {
			return nil, fmt.Errorf("invalid preview size %q", field)
		}
		sizes = append(sizes, uint(size))
	}
	return sizes, nil
}

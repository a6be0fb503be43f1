package terrainrgb

import (
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"

	"github.com/gruppe-adler/meh-relief/internal/dem"
	"github.com/gruppe-adler/meh-relief/internal/sink"
	"github.com/gruppe-adler/meh-relief/internal/tiles"
	"github.com/gruppe-adler/meh-relief/internal/utils"
)

// Run is the program's entrypoint
func Run(flagSet *flag.FlagSet) {

	outputPtr := flagSet.String("out", "", "Path to output directory")
	inputPtr := flagSet.String("in", "", "Path to ESRI ASCII grid (.asc or .asc.gz)")
	offsetPtr := flagSet.Float64("offset", 0, "Elevation offset added to every cell")

	flagSet.Parse(os.Args[2:])

	// make sure both flags are present
	if *outputPtr == "" || *inputPtr == "" {
		flagSet.PrintDefaults()
		os.Exit(1)
	}

	if err := utils.CheckIO(*inputPtr, *outputPtr); err != nil {
		log.Fatal(err)
	}
	fmt.Println("✔️  Validated input and output paths")

	progress := utils.NewProgress(os.Stdout)

	var grid *dem.ElevationGrid
	err := progress.Stage("Loading DEM", "Loaded DEM", func() (err error) {
		grid, err = dem.Read(*inputPtr)
		return err
	})
	if err != nil {
		log.Fatal(err)
	}
	progress.Info("Grid is %dx%d cells of %g", grid.Width, grid.Height, grid.CellSize)

	var img *image.RGBA
	err = progress.Stage("Calculating image from DEM", "Calculated image", func() error {
		img = Image(grid, *offsetPtr)
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	var maxLod uint8
	err = progress.Stage("Building tiles", "Built Terrain-RGB tiles", func() (err error) {
		maxLod, err = tiles.Build(img, sink.Dir{Path: *outputPtr})
		return err
	})
	if err != nil {
		log.Fatal(err)
	}
	progress.Info("Max lod: %d", maxLod)

	err = progress.Stage("Creating tile.json", "Created tile.json", func() error {
		f, err := os.Create(filepath.Join(*outputPtr, "tile.json"))
		if err != nil {
			return err
		}
		name := filepath.Base(*inputPtr)
		if err := tiles.WriteTileJSON(f, name+" Terrain-RGB Tiles", "Mapbox Terrain-RGB tiles of "+name, sink.PNG, maxLod); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	})
	if err != nil {
		log.Fatal(err)
	}

	progress.Finish()
}

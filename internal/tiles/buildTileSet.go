// Package tiles cuts a rendered raster into an XYZ tile pyramid.
package tiles

import (
	"fmt"
	"image"
	"math"
	"runtime"

	"github.com/nfnt/resize"
	"golang.org/x/sync/errgroup"

	"github.com/gruppe-adler/meh-relief/internal/sink"
)

// TileSize is the edge length of every tile in pixels.
const TileSize = 256

// CalcMaxLod calculates the maximum LOD at which a tile still covers at
// least one source pixel, based on the longer side of img.
func CalcMaxLod(img image.Image) uint8 {
	w := img.Bounds().Dx()
	if h := img.Bounds().Dy(); h > w {
		w = h
	}

	tilesPerRowCol := math.Ceil(float64(w) / TileSize)
	if tilesPerRowCol <= 1 {
		return 0
	}

	return uint8(math.Ceil(math.Log2(tilesPerRowCol)))
}

// TileName is the sink name of tile (lod, col, row).
func TileName(lod uint8, col, row int) string {
	return fmt.Sprintf("%d/%d/%d", lod, col, row)
}

// BuildTileSet builds all 4^lod tiles of given LOD from img into s. Every
// tile is scaled to TileSize x TileSize.
func BuildTileSet(lod uint8, img *image.RGBA, s sink.Sink) error {
	tilesPerRowCol := 1 << lod

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	tileWidth := width / tilesPerRowCol
	tileHeight := height / tilesPerRowCol

	// remaining pixels
	widthRemainder := width % tilesPerRowCol
	heightRemainder := height % tilesPerRowCol

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())

	x := bounds.Min.X
	for col := 0; col < tilesPerRowCol; col++ {
		w := tileWidth
		// we'll distribute remaining pixels to the first cols / rows
		if col < widthRemainder {
			w++
		}

		y := bounds.Min.Y
		for row := 0; row < tilesPerRowCol; row++ {
			h := tileHeight
			if row < heightRemainder {
				h++
			}

			rect := image.Rect(x, y, x+w, y+h)
			name := TileName(lod, col, row)
			g.Go(func() error {
				return createTile(img, rect, name, s)
			})

			y += h
		}
		x += w
	}

	return g.Wait()
}

func createTile(img *image.RGBA, rect image.Rectangle, name string, s sink.Sink) error {
	var tile image.Image = image.NewRGBA(image.Rect(0, 0, TileSize, TileSize))

	if !rect.Empty() {
		tile = resize.Resize(TileSize, TileSize, img.SubImage(rect), resize.MitchellNetravali)
	}

	return s.Save(name, tile)
}

// Build writes every LOD from 0 up to CalcMaxLod(img) and returns the
// maximum LOD.
func Build(img *image.RGBA, s sink.Sink) (uint8, error) {
	maxLod := CalcMaxLod(img)

	for lod := uint8(0); lod <= maxLod; lod++ {
		if err := BuildTileSet(lod, img, s); err != nil {
			return maxLod, fmt.Errorf("building LOD %d: %w", lod, err)
		}
	}

	return maxLod, nil
}

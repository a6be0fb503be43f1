package peaks

import (
	"fmt"
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/gruppe-adler/meh-relief/internal/dem"
)

// Peak is an interior cell strictly higher than all eight neighbours.
type Peak struct {
	Col, Row  int
	Elevation float64
}

// Find returns all peaks above minElevation, highest first.
// Border cells and cells touching a missing neighbour are never peaks.
func Find(grid *dem.ElevationGrid, minElevation float64) []Peak {
	var found []Peak

	for row := 1; row < grid.Height-1; row++ {
		for col := 1; col < grid.Width-1; col++ {
			elevation := grid.Z(col, row)
			if math.IsNaN(elevation) || elevation <= minElevation {
				continue
			}

			if isPeak(grid, col, row, elevation) {
				found = append(found, Peak{Col: col, Row: row, Elevation: elevation})
			}
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].Elevation > found[j].Elevation
	})

	return found
}

func isPeak(grid *dem.ElevationGrid, col, row int, elevation float64) bool {
	for r := row - 1; r <= row+1; r++ {
		for c := col - 1; c <= col+1; c++ {
			if r == row && c == col {
				continue
			}

			// plateaus and voids don't make a peak
			neighbour := grid.Z(c, r)
			if math.IsNaN(neighbour) || neighbour >= elevation {
				return false
			}
		}
	}
	return true
}

// FeatureCollection converts peaks into labelled point features.
func FeatureCollection(grid *dem.ElevationGrid, found []Peak) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, p := range found {
		feature := geojson.NewFeature(orb.Point{grid.X(p.Col), grid.Y(p.Row)})
		feature.Properties["col"] = p.Col
		feature.Properties["row"] = p.Row
		feature.Properties["elevation"] = p.Elevation
		feature.Properties["text"] = fmt.Sprintf("%.0f", math.Round(p.Elevation))

		fc.Append(feature)
	}

	return fc
}

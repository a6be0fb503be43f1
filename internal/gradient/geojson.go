package gradient

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/gruppe-adler/meh-relief/internal/dem"
)

// FeatureCollection exports every sampled cell with a finite vector as a
// point feature in the grid's world coordinates. World y grows northwards,
// so the exported "north" component is the negated row component.
func (f *Field) FeatureCollection(grid *dem.ElevationGrid) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, p := range f.Points() {
		m := p.Magnitude()
		if math.IsNaN(m) || math.IsInf(m, 0) {
			continue
		}

		// 0 - DY instead of -DY keeps a flat north component at +0
		north := 0 - p.DY

		feature := geojson.NewFeature(orb.Point{grid.X(p.X), grid.Y(p.Y)})
		feature.Properties["col"] = p.X
		feature.Properties["row"] = p.Y
		feature.Properties["east"] = p.DX
		feature.Properties["north"] = north
		feature.Properties["magnitude"] = m

		fc.Append(feature)
	}

	return fc
}

package peaks_test

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gruppe-adler/meh-relief/internal/dem"
	"github.com/gruppe-adler/meh-relief/internal/peaks"
)

func grid(t *testing.T, w, h int, cells ...float64) *dem.ElevationGrid {
	t.Helper()
	g, err := dem.NewElevationGrid(w, h, 10, cells)
	require.NoError(t, err)
	return g
}

func TestFind(t *testing.T) {
	g := grid(t, 5, 3,
		1, 1, 1, 1, 1,
		1, 5, 1, 9, 1,
		1, 1, 1, 1, 1,
	)

	found := peaks.Find(g, 0)

	require.Len(t, found, 2)
	assert.Equal(t, peaks.Peak{Col: 3, Row: 1, Elevation: 9}, found[0])
	assert.Equal(t, peaks.Peak{Col: 1, Row: 1, Elevation: 5}, found[1])
}

func TestFindSkipsPlateausVoidsAndLowCells(t *testing.T) {
	nan := math.NaN()

	plateau := grid(t, 4, 3,
		1, 1, 1, 1,
		1, 5, 5, 1,
		1, 1, 1, 1,
	)
	assert.Empty(t, peaks.Find(plateau, 0))

	void := grid(t, 3, 3,
		1, nan, 1,
		1, 5, 1,
		1, 1, 1,
	)
	assert.Empty(t, peaks.Find(void, 0))

	low := grid(t, 3, 3,
		1, 1, 1,
		1, 5, 1,
		1, 1, 1,
	)
	assert.Empty(t, peaks.Find(low, 5))
	assert.Len(t, peaks.Find(low, 4.9), 1)
}

func TestFeatureCollection(t *testing.T) {
	g := grid(t, 3, 3,
		1, 1, 1,
		1, 5.6, 1,
		1, 1, 1,
	)

	fc := peaks.FeatureCollection(g, peaks.Find(g, 0))

	require.Len(t, fc.Features, 1)
	f := fc.Features[0]
	assert.Equal(t, orb.Point{15, 15}, f.Geometry)
	assert.Equal(t, "6", f.Properties["text"])
	assert.Equal(t, 5.6, f.Properties["elevation"])
}

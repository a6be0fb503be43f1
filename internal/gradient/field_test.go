package gradient_test

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gruppe-adler/meh-relief/internal/dem"
	"github.com/gruppe-adler/meh-relief/internal/gradient"
)

func newGrid(t *testing.T, width, height int, f func(x, y int) float64) *dem.ElevationGrid {
	t.Helper()
	cells := make([]float64, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			cells[y*width+x] = f(x, y)
		}
	}
	g, err := dem.NewElevationGrid(width, height, 1, cells)
	require.NoError(t, err)
	return g
}

func opts(window, stride int) gradient.Options {
	o := gradient.DefaultOptions()
	o.Window = window
	o.Stride = stride
	return o
}

func TestSampleRampAlongRow(t *testing.T) {
	g := newGrid(t, 6, 4, func(x, y int) float64 { return float64(x) })

	f, err := gradient.Sample(g, opts(3, 1))
	require.NoError(t, err)
	require.Len(t, f.Vectors, 24)

	// left minus right: the vector points downhill, towards column 0
	assert.Equal(t, gradient.Vector{DX: -2, DY: 0}, f.At(2, 1))
}

func TestSampleRampAlongColumn(t *testing.T) {
	g := newGrid(t, 7, 7, func(x, y int) float64 { return 3 * float64(y) })

	f, err := gradient.Sample(g, opts(5, 1))
	require.NoError(t, err)

	sampled := map[[2]int]bool{}
	for _, p := range f.Points() {
		sampled[[2]int{p.X, p.Y}] = true
	}
	assert.Len(t, sampled, 9)

	for y := 0; y < 7; y++ {
		for x := 0; x < 7; x++ {
			if x >= 2 && x <= 4 && y >= 2 && y <= 4 {
				assert.True(t, sampled[[2]int{x, y}])
				assert.Equal(t, gradient.Vector{DX: 0, DY: -9}, f.At(x, y), "(%d, %d)", x, y)
				continue
			}
			assert.False(t, sampled[[2]int{x, y}])
			assert.Equal(t, gradient.Vector{}, f.At(x, y), "(%d, %d)", x, y)
		}
	}
}

func TestSampleStride(t *testing.T) {
	g := newGrid(t, 10, 10, func(x, y int) float64 { return float64(x * y) })

	f, err := gradient.Sample(g, opts(3, 3))
	require.NoError(t, err)

	assert.Equal(t, []int{3, 6}, f.Columns())
	assert.Equal(t, []int{3, 6}, f.Rows())

	points := f.Points()
	require.Len(t, points, 4)
	assert.Equal(t, 3, points[1].Y)
	assert.Equal(t, 6, points[1].X)

	assert.Equal(t, gradient.Vector{}, f.At(4, 3))
	assert.NotEqual(t, gradient.Vector{}, f.At(6, 6))
}

func TestSampleNaNPropagates(t *testing.T) {
	g := newGrid(t, 5, 5, func(x, y int) float64 {
		if x == 1 && y == 2 {
			return math.NaN()
		}
		return float64(x + y)
	})

	f, err := gradient.Sample(g, opts(3, 1))
	require.NoError(t, err)

	v := f.At(2, 2)
	assert.True(t, math.IsNaN(v.DX))
	assert.False(t, v.Drawable())
	assert.False(t, math.IsNaN(f.At(2, 3).DX))
}

func TestSampleInvalidOptions(t *testing.T) {
	g := newGrid(t, 5, 5, func(x, y int) float64 { return 0 })

	for _, o := range []gradient.Options{opts(4, 1), opts(1, 1), opts(3, 0)} {
		_, err := gradient.Sample(g, o)
		assert.ErrorIs(t, err, gradient.ErrInvalidOptions)
	}
}

func TestSampleWindowLargerThanGrid(t *testing.T) {
	g := newGrid(t, 4, 4, func(x, y int) float64 { return float64(x) })

	f, err := gradient.Sample(g, opts(9, 1))
	require.NoError(t, err)
	assert.Empty(t, f.Points())
	assert.Equal(t, make([]gradient.Vector, 16), f.Vectors)
}

func TestArrowGeometry(t *testing.T) {
	o := gradient.DefaultOptions()

	glyph, ok := gradient.Arrow(5, 5, gradient.Vector{DX: 3, DY: 0}, o)
	require.True(t, ok)
	require.Len(t, glyph, 3)

	assert.InDelta(t, 5.0, glyph[0][0][0], 1e-9)
	assert.InDelta(t, 17.0, glyph[0][1][0], 1e-9)
	assert.InDelta(t, 5.0, glyph[0][1][1], 1e-9)

	for _, barb := range glyph[1:] {
		assert.Equal(t, glyph[0][1], barb[0], "head strokes start at the tip")
		assert.InDelta(t, 17-4*math.Cos(math.Pi/6), barb[1][0], 1e-9)
		assert.InDelta(t, 2.0, math.Abs(barb[1][1]-5), 1e-9)
	}

	_, ok = gradient.Arrow(5, 5, gradient.Vector{}, o)
	assert.False(t, ok)
	_, ok = gradient.Arrow(5, 5, gradient.Vector{DX: math.NaN()}, o)
	assert.False(t, ok)
}

func TestArrowHeadShorterThanShaft(t *testing.T) {
	shaft := func(g orb.MultiLineString) float64 { return planar.Length(g[0]) }

	for _, tc := range []struct {
		arrow, head, want float64
	}{
		{arrow: 3, want: 1},
		{arrow: 30, want: 10},
		{arrow: 3, head: 4, want: 1},
		{arrow: 3, head: 3, want: 1},
		{arrow: 30, head: 6, want: 6},
	} {
		o := gradient.DefaultOptions()
		o.ArrowLength = tc.arrow
		o.HeadLength = tc.head

		glyph, ok := gradient.Arrow(10, 10, gradient.Vector{DX: 1}, o)
		require.True(t, ok)

		assert.InDelta(t, tc.arrow, shaft(glyph), 1e-9)
		for _, barb := range glyph[1:] {
			assert.InDelta(t, tc.want, planar.Length(barb), 1e-9, "arrow %v head %v", tc.arrow, tc.head)
			assert.Less(t, planar.Length(barb), shaft(glyph))
		}
	}
}

func TestOverlayDrawsOnCopy(t *testing.T) {
	base := image.NewRGBA(image.Rect(0, 0, 30, 30))
	for i := range base.Pix {
		base.Pix[i] = 255
	}
	original := append([]uint8(nil), base.Pix...)

	f := &gradient.Field{Width: 30, Height: 30, Window: 3, Stride: 15, Vectors: make([]gradient.Vector, 900)}
	f.Vectors[15*30+15] = gradient.Vector{DX: 1}

	o := gradient.DefaultOptions()
	out := gradient.Overlay(base, f, o)

	assert.Equal(t, original, base.Pix)
	for x := 15; x <= 27; x++ {
		assert.Equal(t, o.Color, out.RGBAAt(x, 15), "shaft pixel %d", x)
	}
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, out.RGBAAt(15, 16))
	assert.Equal(t, o.Color, out.RGBAAt(24, 13))
	assert.Equal(t, o.Color, out.RGBAAt(24, 17))
}

func TestOverlayZeroFieldIsUnchanged(t *testing.T) {
	base := image.NewRGBA(image.Rect(0, 0, 8, 8))
	base.SetRGBA(3, 3, color.RGBA{1, 2, 3, 4})

	g := newGrid(t, 8, 8, func(x, y int) float64 { return 42 })
	f, err := gradient.Sample(g, opts(3, 1))
	require.NoError(t, err)

	assert.Equal(t, base.Pix, gradient.Overlay(base, f, gradient.DefaultOptions()).Pix)
}

func TestOverlayClipsAtBorder(t *testing.T) {
	base := image.NewRGBA(image.Rect(0, 0, 5, 5))
	f := &gradient.Field{Width: 5, Height: 5, Window: 3, Stride: 2, Vectors: make([]gradient.Vector, 25)}
	f.Vectors[2*5+2] = gradient.Vector{DX: -1, DY: -1}

	out := gradient.Overlay(base, f, gradient.DefaultOptions())
	assert.Equal(t, color.RGBA{R: 255, A: 255}, out.RGBAAt(2, 2))
	assert.Equal(t, color.RGBA{R: 255, A: 255}, out.RGBAAt(0, 0))
}

func TestFeatureCollection(t *testing.T) {
	g := newGrid(t, 5, 5, func(x, y int) float64 { return float64(x) })
	g.Cells[g.Index(3, 3)] = math.NaN()

	f, err := gradient.Sample(g, opts(3, 1))
	require.NoError(t, err)

	// the window skips the centre cell, the missing elevation itself still
	// leaves the sample without a vector
	assert.True(t, math.IsNaN(f.At(3, 3).DX))
	assert.False(t, f.At(3, 3).Drawable())

	fc := f.FeatureCollection(g)
	for _, feature := range fc.Features {
		col, row := feature.Properties["col"], feature.Properties["row"]
		assert.False(t, col == 3 && row == 3)
		assert.False(t, col == 2 && row == 3)
		assert.False(t, col == 3 && row == 2)
	}
	require.NotEmpty(t, fc.Features)

	first := fc.Features[0]
	assert.Equal(t, 1, first.Properties["col"])
	assert.Equal(t, 1, first.Properties["row"])
	assert.Equal(t, -2.0, first.Properties["east"])
	assert.Equal(t, 0.0, first.Properties["north"])
	assert.False(t, math.Signbit(first.Properties["north"].(float64)), "north is +0")
	assert.InDelta(t, 1.5, first.Point()[0], 1e-9)
	assert.InDelta(t, 3.5, first.Point()[1], 1e-9)

	raw, err := fc.MarshalJSON()
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"FeatureCollection"`)
}

func TestOverlaySkipsCellsWithoutData(t *testing.T) {
	g := newGrid(t, 9, 9, func(x, y int) float64 { return float64(x) })
	g.Cells[g.Index(4, 4)] = math.NaN()

	o := opts(3, 4)
	f, err := gradient.Sample(g, o)
	require.NoError(t, err)

	base := image.NewRGBA(image.Rect(0, 0, 9, 9))
	out := gradient.Overlay(base, f, o)
	assert.Equal(t, color.RGBA{}, out.RGBAAt(4, 4))
}

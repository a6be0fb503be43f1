package terrainrgb_test

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gruppe-adler/meh-relief/internal/dem"
	"github.com/gruppe-adler/meh-relief/internal/terrainrgb"
)

func TestHeightRoundTrip(t *testing.T) {
	for _, h := range []float64{-10000, -412.3, 0, 0.1, 8848.8, 123456.7} {
		got := terrainrgb.RgbToHeight(terrainrgb.HeightToRgb(h))
		assert.InDelta(t, h, got, 0.05, "height %v", h)
	}
}

func TestHeightToRgbKnownValues(t *testing.T) {
	// x = 100000 = 0x0186A0
	assert.Equal(t, color.RGBA{0x01, 0x86, 0xA0, 255}, terrainrgb.HeightToRgb(0))
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, terrainrgb.HeightToRgb(-20000))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, terrainrgb.HeightToRgb(1e9))
}

func TestImage(t *testing.T) {
	g, err := dem.NewElevationGrid(2, 1, 1, []float64{math.NaN(), 5})
	require.NoError(t, err)

	img := terrainrgb.Image(g, 10)
	assert.Equal(t, color.RGBA{}, img.RGBAAt(0, 0))
	assert.InDelta(t, 15.0, terrainrgb.RgbToHeight(img.RGBAAt(1, 0)), 0.05)
}

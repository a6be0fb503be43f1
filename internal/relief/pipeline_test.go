package relief_test

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gruppe-adler/meh-relief/internal/colormap"
	"github.com/gruppe-adler/meh-relief/internal/dem"
	"github.com/gruppe-adler/meh-relief/internal/relief"
)

// hill builds a grid text with a single smooth hill and a few no data cells.
func hill(width, height int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ncols %d\nnrows %d\nxllcorner 0\nyllcorner 0\ncellsize 10\nnodata_value -9999\n", width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x == 3 && y == 4 {
				b.WriteString("-9999 ")
				continue
			}
			dx, dy := float64(x-width/2), float64(y-height/2)
			fmt.Fprintf(&b, "%.3f ", 500*math.Exp(-(dx*dx+dy*dy)/200))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func encode(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func smallFieldOptions() relief.Options {
	opts := relief.DefaultOptions()
	opts.Field.Stride = 10
	return opts
}

func TestProcessDimensions(t *testing.T) {
	res, err := relief.Parse(strings.NewReader(hill(40, 30)), smallFieldOptions())
	require.NoError(t, err)

	want := image.Rect(0, 0, 40, 30)
	for _, named := range res.Images("x") {
		assert.Equal(t, want, named.Image.Bounds(), named.Name)
	}
	assert.Len(t, res.Field.Vectors, 40*30)
	assert.NotEmpty(t, res.Field.Points())
}

func TestProcessIsIdempotent(t *testing.T) {
	text := hill(50, 35)

	a, err := relief.Parse(strings.NewReader(text), smallFieldOptions())
	require.NoError(t, err)
	b, err := relief.Parse(strings.NewReader(text), smallFieldOptions())
	require.NoError(t, err)

	imagesA, imagesB := a.Images("run"), b.Images("run")
	require.Equal(t, len(imagesA), len(imagesB))
	for i := range imagesA {
		assert.Equal(t, imagesA[i].Name, imagesB[i].Name)
		assert.True(t, bytes.Equal(encode(t, imagesA[i].Image), encode(t, imagesB[i].Image)), imagesA[i].Name)
	}
}

func TestProcessStagesDoNotAlias(t *testing.T) {
	res, err := relief.Parse(strings.NewReader(hill(40, 40)), smallFieldOptions())
	require.NoError(t, err)

	// the overlay draws on a copy of the shaded relief
	assert.NotEqual(t, res.HillshadeColor.Pix, res.Overlay.Pix)
	assert.Equal(t, uint8(0), res.HillshadeColor.RGBAAt(0, 0).A)

	// no data cell renders black
	assert.Equal(t, uint8(0), res.Grayscale.GrayAt(3, 4).Y)
	assert.True(t, math.IsNaN(res.Grid.Z(3, 4)))
}

func TestProcessNames(t *testing.T) {
	opts := smallFieldOptions()
	opts.Gradient = colormap.Gray
	opts.GradientName = "gray"

	res, err := relief.Parse(strings.NewReader(hill(10, 10)), opts)
	require.NoError(t, err)

	var names []string
	for _, named := range res.Images("20260101_120000") {
		names = append(names, named.Name)
	}
	assert.Equal(t, []string{
		"output_20260101_120000",
		"output_rgb_20260101_120000_gray",
		"hillshade_gray_20260101_120000",
		"hillshade_rgb_20260101_120000",
		"hillshade_rgb_gradient_20260101_120000",
	}, names)
}

func TestProcessErrors(t *testing.T) {
	_, err := relief.Parse(strings.NewReader("ncols abc\nnrows 1\n1\n"), relief.DefaultOptions())
	assert.ErrorIs(t, err, dem.ErrParse)

	_, err = relief.Parse(strings.NewReader("ncols 2\nnrows 2\n1 2 3\n"), relief.DefaultOptions())
	assert.ErrorIs(t, err, dem.ErrShapeMismatch)

	_, err = relief.Parse(strings.NewReader("ncols 2\nnrows 1\nnodata_value 0\n0 0\n"), relief.DefaultOptions())
	assert.ErrorIs(t, err, dem.ErrEmptyRange)

	opts := relief.DefaultOptions()
	opts.Field.Window = 2
	_, err = relief.Parse(strings.NewReader(hill(5, 5)), opts)
	assert.Error(t, err)
}

func TestProcessNilGradientFallsBackToTurbo(t *testing.T) {
	opts := smallFieldOptions()
	opts.Gradient = nil

	res, err := relief.Parse(strings.NewReader(hill(6, 6)), opts)
	require.NoError(t, err)
	assert.Equal(t, "output_rgb_s_turbo", res.Images("s")[1].Name)
}

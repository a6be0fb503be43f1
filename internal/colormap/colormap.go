// Package colormap provides the colour gradients used to tint elevation
// rasters. A Gradient is a pure function of its input, so renderers accept
// any implementation.
package colormap

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
)

// Gradient maps t in [0, 1] to an opaque colour. Inputs outside [0, 1] are
// clamped, NaN is treated as 0.
type Gradient interface {
	At(t float64) color.RGBA
}

// GradientFunc adapts a plain function to Gradient.
type GradientFunc func(t float64) color.RGBA

// At calls f(t).
func (f GradientFunc) At(t float64) color.RGBA { return f(t) }

// Gray is a linear black to white gradient.
var Gray Gradient = GradientFunc(func(t float64) color.RGBA {
	v := channel(t)
	return color.RGBA{v, v, v, 255}
})

var named = map[string]func() Gradient{
	"turbo": func() Gradient { return Turbo },
	"gray":  func() Gradient { return Gray },
	"blue-red": func() Gradient {
		return FromColorMap(moreland.SmoothBlueRed())
	},
	"kindlmann": func() Gradient {
		return FromColorMap(moreland.Kindlmann())
	},
	"black-body": func() Gradient {
		return FromColorMap(moreland.BlackBody())
	},
	"extended-black-body": func() Gradient {
		return FromColorMap(moreland.ExtendedBlackBody())
	},
}

// ByName returns the gradient registered under name.
func ByName(name string) (Gradient, error) {
	mk, ok := named[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("colormap: unknown gradient %q (known: %s)", name, strings.Join(Names(), ", "))
	}
	return mk(), nil
}

// Names lists the registered gradient names in sorted order.
func Names() []string {
	names := make([]string, 0, len(named))
	for name := range named {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type colorMapGradient struct {
	cm palette.ColorMap
}

// FromColorMap wraps a gonum colour map. The map's range is set to [0, 1]
// and its alpha to 1.
func FromColorMap(cm palette.ColorMap) Gradient {
	cm.SetMin(0)
	cm.SetMax(1)
	cm.SetAlpha(1)
	return colorMapGradient{cm: cm}
}

func (g colorMapGradient) At(t float64) color.RGBA {
	c, err := g.cm.At(clamp01(t))
	if err != nil {
		return color.RGBA{A: 255}
	}
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	rgba.A = 255
	return rgba
}

type gradientPalette []color.Color

func (p gradientPalette) Colors() []color.Color { return p }

// Palette samples n evenly spaced colours from g, first colour at 0 and the
// last at 1.
func Palette(g Gradient, n int) palette.Palette {
	colors := make(gradientPalette, n)
	for i := range colors {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		colors[i] = g.At(t)
	}
	return colors
}

func clamp01(t float64) float64 {
	if math.IsNaN(t) || t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// channel quantises a [0, 1] intensity to 8 bits, rounding to nearest.
func channel(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}

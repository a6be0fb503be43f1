package colormap

import "image/color"

// Turbo is Google's turbo rainbow colour map, evaluated through its
// published degree 5 polynomial fit.
var Turbo Gradient = GradientFunc(turbo)

func turbo(t float64) color.RGBA {
	x := clamp01(t)

	r := 0.13572138 + x*(4.61539260+x*(-42.66032258+x*(132.13108234+x*(-152.94239396+x*59.28637943))))
	g := 0.09140261 + x*(2.19418839+x*(4.84296658+x*(-14.18503333+x*(4.27729857+x*2.82956604))))
	b := 0.10667330 + x*(12.64194608+x*(-60.58204836+x*(110.36276771+x*(-89.90310912+x*27.34824973))))

	return color.RGBA{
		R: channel(r),
		G: channel(g),
		B: channel(b),
		A: 255,
	}
}

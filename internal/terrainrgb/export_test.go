package terrainrgb

import "image/color"

// RgbToHeight calculates height from given rgb values
func RgbToHeight(c color.RGBA) float64 {
	x := int64(c.R)<<16 | int64(c.G)<<8 | int64(c.B)

	return -10000.0 + float64(x)*0.1
}

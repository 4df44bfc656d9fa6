package screen

import "image/color"
import clr "github.com/lucasb-eyer/go-colorful"

// Average blends every entry of a palette in L*a*b* space, which keeps the
// result close to how the palette reads to the eye.
func Average(p color.Palette) color.Color {
	if len(p) == 0 {
		return color.Black
	}

	var l, a, b float64
	for _, c := range p {
		lc, _ := clr.MakeColor(c)
		cl, ca, cb := lc.Lab()
		l += cl
		a += ca
		b += cb
	}
	n := float64(len(p))
	return clr.Lab(l/n, a/n, b/n).Clamped()
}

// Hex formats a color as #rrggbb.
func Hex(c color.Color) string {
	hc, ok := clr.MakeColor(c)
	if !ok {
		return "#000000"
	}
	return hc.Hex()
}

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}

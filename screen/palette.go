package screen

import (
	"image/color"

	"github.com/pkg/errors"
)

// VGAPaletteSize is the size of a 256 entry palette stored as 6-bit DAC
// triplets.
const VGAPaletteSize = 256 * 3

// NewVGAPalette expands a 6-bit VGA palette to 8-bit colors. Each value is
// scaled from 0..63 to 0..255 by replicating its high bits.
func NewVGAPalette(raw []byte) (color.Palette, error) {
	if len(raw) < VGAPaletteSize {
		return nil, errors.Errorf("palette: expected %d bytes, got %d", VGAPaletteSize, len(raw))
	}

	palette := make(color.Palette, 256)
	for i := range palette {
		r, g, b := dac(raw[i*3]), dac(raw[i*3+1]), dac(raw[i*3+2])
		palette[i] = rgb(r, g, b)
	}
	return palette, nil
}

func dac(v uint8) uint8 {
	v &= 0x3F
	return v<<2 | v>>4
}

var DefaultPalettes = struct {
	Grayscale color.Palette
}{
	Grayscale: grayscale(),
}

func grayscale() color.Palette {
	p := make(color.Palette, 256)
	for i := range p {
		p[i] = color.Gray{Y: uint8(i)}
	}
	return p
}

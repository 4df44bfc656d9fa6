package resource

import (
	"bytes"
	"encoding/binary"
	"image/color"

	"github.com/32bitkid/deathgate/screen"
	"github.com/pkg/errors"
)

const (
	screenWidth  = 320
	screenHeight = 200
	screenSize   = screenWidth * screenHeight
)

// ImageDetails summarizes an 8-bit .SCR image.
type ImageDetails struct {
	Width      int
	Height     int
	ColorDepth int
	// HasPalette is set when a VGA palette follows the pixels.
	HasPalette bool
	// Palette is the embedded palette, or a grayscale ramp without one.
	Palette      color.Palette
	AverageColor string
}

func (*ImageDetails) Kind() Kind { return KindImage }

func defaultImageDetails() *ImageDetails {
	return &ImageDetails{
		Width:      screenWidth,
		Height:     screenHeight,
		ColorDepth: 8,
		HasPalette: true,
	}
}

// NewImageDetails reads a .SCR image. Full screens are stored raw; smaller
// bitmaps start with their width and height. Either may be followed by a
// 6-bit VGA palette.
func NewImageDetails(b []byte) (*ImageDetails, error) {
	details := defaultImageDetails()

	width, height, start := screenWidth, screenHeight, 0
	switch {
	case len(b) == screenSize || len(b) == screenSize+screen.VGAPaletteSize:
	case len(b) >= 4:
		var header struct {
			Width  uint16
			Height uint16
		}
		if err := binary.Read(bytes.NewReader(b), binary.LittleEndian, &header); err != nil {
			return details, err
		}
		if header.Width == 0 || header.Height == 0 || 4+int(header.Width)*int(header.Height) > len(b) {
			return details, errors.Wrapf(ErrUnknownFormat, "image: %d bytes is neither a screen nor a bitmap", len(b))
		}
		width, height, start = int(header.Width), int(header.Height), 4
	default:
		return details, errors.Wrapf(ErrTruncatedHeader, "image: %d bytes", len(b))
	}

	details.Width = width
	details.Height = height
	details.HasPalette = false
	details.Palette = screen.DefaultPalettes.Grayscale

	end := start + width*height
	if len(b)-end >= screen.VGAPaletteSize {
		palette, err := screen.NewVGAPalette(b[end:])
		if err != nil {
			return details, err
		}
		details.HasPalette = true
		details.Palette = palette
	}
	details.AverageColor = screen.Hex(screen.Average(details.Palette))

	return details, nil
}

package resource

import (
	"bytes"
	"encoding/binary"
	"time"

	"github.com/pkg/errors"
)

const (
	flicHeaderSize = 128

	magicFLI uint16 = 0xAF11
	magicFLC uint16 = 0xAF12
)

type flicHeader struct {
	Size   uint32
	Magic  uint16
	Frames uint16
	Width  uint16
	Height uint16
	Depth  uint16
	Flags  uint16
	Speed  uint32
}

// VideoDetails summarizes a FLIC animation.
type VideoDetails struct {
	Frames    int
	Width     int
	Height    int
	Depth     int
	FrameRate int
	Duration  time.Duration
}

func (*VideoDetails) Kind() Kind { return KindVideo }

func defaultVideoDetails() *VideoDetails {
	return &VideoDetails{
		Frames:    100,
		Width:     screenWidth,
		Height:    screenHeight,
		Depth:     8,
		FrameRate: 20,
		Duration:  5 * time.Second,
	}
}

// NewVideoDetails reads the 128 byte FLIC header. FLI files count their
// frame delay in 1/70 s ticks, FLC files in milliseconds.
func NewVideoDetails(b []byte) (*VideoDetails, error) {
	details := defaultVideoDetails()
	if len(b) < flicHeaderSize {
		return details, errors.Wrapf(ErrTruncatedHeader, "flic: %d bytes", len(b))
	}

	var header flicHeader
	if err := binary.Read(bytes.NewReader(b), binary.LittleEndian, &header); err != nil {
		return details, err
	}

	var delay time.Duration
	switch header.Magic {
	case magicFLI:
		delay = time.Duration(header.Speed) * time.Second / 70
	case magicFLC:
		delay = time.Duration(header.Speed) * time.Millisecond
	default:
		return details, errors.Wrapf(ErrUnknownFormat, "flic: magic %#04x", header.Magic)
	}

	details.Frames = int(header.Frames)
	details.Width = int(header.Width)
	details.Height = int(header.Height)
	details.Depth = int(header.Depth)
	details.Duration = delay * time.Duration(header.Frames)
	details.FrameRate = 0
	if delay > 0 {
		details.FrameRate = int(time.Second / delay)
	}

	return details, nil
}

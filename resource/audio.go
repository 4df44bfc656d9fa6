package resource

import (
	"bytes"
	"encoding/binary"
	"time"

	"github.com/pkg/errors"
)

type AudioFormat uint8

const (
	AudioUnknown AudioFormat = iota
	AudioWAV
	AudioXMIDI
)

func (f AudioFormat) String() string {
	switch f {
	case AudioWAV:
		return "WAV"
	case AudioXMIDI:
		return "XMIDI"
	}
	return "unknown"
}

// AudioDetails summarizes a WAV sample or an XMIDI song collection.
// XMIDI files describe neither a sample rate nor a duration; those fields
// stay zero.
type AudioDetails struct {
	Format        AudioFormat
	Duration      time.Duration
	SampleRate    int
	Channels      int
	BitsPerSample int
	Sequences     int
}

func (*AudioDetails) Kind() Kind { return KindAudio }

func defaultAudioDetails() *AudioDetails {
	return &AudioDetails{
		Duration:   30 * time.Second,
		SampleRate: 22050,
		Channels:   1,
	}
}

// NewAudioDetails recognizes RIFF WAVE and IFF XMIDI data by their magic.
func NewAudioDetails(b []byte) (*AudioDetails, error) {
	details := defaultAudioDetails()
	if len(b) < 12 {
		return details, errors.Wrapf(ErrTruncatedHeader, "audio: %d bytes", len(b))
	}

	switch {
	case string(b[0:4]) == "RIFF" && string(b[8:12]) == "WAVE":
		return readWAV(b, details)
	case string(b[0:4]) == "FORM" || string(b[0:4]) == "CAT ":
		return readXMI(b, details)
	}
	return details, errors.Wrapf(ErrUnknownFormat, "audio: magic %q", b[0:4])
}

type wavFormat struct {
	AudioFormat   uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
}

func readWAV(b []byte, details *AudioDetails) (*AudioDetails, error) {
	var (
		format   wavFormat
		hasFmt   bool
		dataSize uint32
		hasData  bool
	)

	pos := 12
	for pos+8 <= len(b) {
		id := string(b[pos : pos+4])
		size := binary.LittleEndian.Uint32(b[pos+4:])
		body := b[pos+8:]
		if uint64(size) < uint64(len(body)) {
			body = body[:size]
		}

		switch id {
		case "fmt ":
			if err := binary.Read(bytes.NewReader(body), binary.LittleEndian, &format); err != nil {
				return details, errors.Wrap(ErrTruncatedHeader, "wav: fmt chunk")
			}
			hasFmt = true
		case "data":
			dataSize = size
			hasData = true
		}

		next := uint64(pos) + 8 + uint64(size) + uint64(size&1)
		if next > uint64(len(b)) {
			break
		}
		pos = int(next)
	}

	if !hasFmt {
		return details, errors.Wrap(ErrUnknownFormat, "wav: missing fmt chunk")
	}

	details.Format = AudioWAV
	details.SampleRate = int(format.SampleRate)
	details.Channels = int(format.Channels)
	details.BitsPerSample = int(format.BitsPerSample)
	details.Duration = 0
	if hasData && format.ByteRate > 0 {
		details.Duration = time.Duration(dataSize) * time.Second / time.Duration(format.ByteRate)
	}
	return details, nil
}

func readXMI(b []byte, details *AudioDetails) (*AudioDetails, error) {
	kind := string(b[8:12])
	switch {
	case string(b[0:4]) == "FORM" && kind == "XDIR":
		// FORM XDIR is followed by an INFO chunk holding the sequence count
		if len(b) < 22 || string(b[12:16]) != "INFO" {
			return details, errors.Wrap(ErrTruncatedHeader, "xmi: missing INFO chunk")
		}
		details.Sequences = int(binary.LittleEndian.Uint16(b[20:]))
	case kind == "XMID":
		details.Sequences = 1
	default:
		return details, errors.Wrapf(ErrUnknownFormat, "xmi: %q container", kind)
	}

	details.Format = AudioXMIDI
	details.Duration = 0
	details.SampleRate = 0
	details.Channels = 0
	return details, nil
}

package resource

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/32bitkid/deathgate/decompression"
	"github.com/pkg/errors"
)

// TextHeaderSize is the length of the preamble of every text resource.
const TextHeaderSize = 6

// TextHeader precedes the payload of a text resource. StreamSize is the
// length of the plain text, or of the bitstream that follows the tree and
// dictionary of a compressed payload.
type TextHeader struct {
	StringCount uint16
	StreamSize  uint16
	Flags       uint16
}

// Uncompressed is the variant of plain text payloads.
const Uncompressed decompression.Version = 0

// Variant validates the flags and returns the compression variant.
func (h TextHeader) Variant() (decompression.Version, error) {
	if h.Flags&0xFF00 != 0 {
		return 0, errors.Wrapf(ErrUnsupportedVariant, "flags %#04x", h.Flags)
	}
	v := decompression.Version(h.Flags)
	if v != Uncompressed && !decompression.Known(v) {
		return 0, errors.Wrapf(ErrUnsupportedVariant, "flags %#04x", h.Flags)
	}
	return v, nil
}

func ParseTextHeader(b []byte) (TextHeader, error) {
	var header TextHeader
	if len(b) < TextHeaderSize {
		return header, errors.Wrapf(ErrTruncatedHeader, "text: %d bytes", len(b))
	}
	err := binary.Read(bytes.NewReader(b), binary.LittleEndian, &header)
	return header, err
}

type Text []string

func (Text) Kind() Kind { return KindText }

type textState uint8

const (
	textStart textState = iota
	textHeaderRead
	textPlain
	textCompressed
	textDone
)

// DecodeText decodes a whole text resource, header included. Failures are
// returned together with a Text holding a single line that describes them,
// so the caller always has something to show.
func DecodeText(b []byte) (Text, error) {
	var (
		header  TextHeader
		variant decompression.Version
		payload []byte
		lines   []string
		err     error
	)

	state := textStart
	for state != textDone {
		switch state {
		case textStart:
			if header, err = ParseTextHeader(b); err != nil {
				return diagnostic(err)
			}
			payload = b[TextHeaderSize:]
			state = textHeaderRead

		case textHeaderRead:
			if variant, err = header.Variant(); err != nil {
				return diagnostic(err)
			}
			size := int(header.StreamSize)
			if variant != Uncompressed && size > 0 && size < len(payload) {
				state = textCompressed
			} else {
				state = textPlain
			}

		case textPlain:
			lines = decompression.DecompressNone(payload, int(header.StreamSize))
			state = textDone

		case textCompressed:
			if lines, err = decompression.Decode(payload, int(header.StreamSize), variant); err != nil {
				return diagnostic(err)
			}
			state = textDone
		}
	}

	return append(Text{}, lines...), nil
}

func diagnostic(err error) (Text, error) {
	return Text{fmt.Sprintf("Error decoding text resource: %v", err)}, err
}

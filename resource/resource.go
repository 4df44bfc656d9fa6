package resource

import (
	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
)

var (
	ErrTruncatedHeader    = errors.New("file shorter than its header")
	ErrUnsupportedVariant = errors.New("unsupported compression variant")
	ErrUnknownFormat      = errors.New("unrecognized header")
)

// Descriptor is one classified game file. Exactly one of the kind specific
// fields is set, selected by Kind. Err holds the diagnostic of a resource
// that could not be parsed; its details then carry default values.
type Descriptor struct {
	Name     string
	Kind     Kind
	Size     uint64
	Path     string
	Checksum uint64
	Err      error

	Image *ImageDetails
	Video *VideoDetails
	Audio *AudioDetails
	Text  Text
}

// Details is the kind specific payload of a descriptor. It is implemented
// by *ImageDetails, *VideoDetails, *AudioDetails and Text.
type Details interface {
	Kind() Kind
}

// Details returns the populated payload, or nil when none has been parsed.
func (d Descriptor) Details() Details {
	switch d.Kind {
	case KindImage:
		if d.Image != nil {
			return d.Image
		}
	case KindVideo:
		if d.Video != nil {
			return d.Video
		}
	case KindAudio:
		if d.Audio != nil {
			return d.Audio
		}
	case KindText:
		if d.Text != nil {
			return d.Text
		}
	}
	return nil
}

// Populate parses b as the descriptor's kind and stores the result. A parse
// failure is recorded in Err; the details are still set.
func (d *Descriptor) Populate(b []byte) {
	d.Checksum = xxhash.Sum64(b)

	details, err := Parse(d.Kind, b)
	d.Err = err

	switch v := details.(type) {
	case *ImageDetails:
		d.Image = v
	case *VideoDetails:
		d.Video = v
	case *AudioDetails:
		d.Audio = v
	case Text:
		d.Text = v
	}
}

// Parse reads the header of a resource of the given kind. Parsers are
// tolerant: on failure they return default details along with the error.
func Parse(kind Kind, b []byte) (Details, error) {
	switch kind {
	case KindImage:
		return NewImageDetails(b)
	case KindVideo:
		return NewVideoDetails(b)
	case KindAudio:
		return NewAudioDetails(b)
	case KindText:
		return DecodeText(b)
	}
	return nil, errors.Errorf("unhandled resource kind: %d", kind)
}

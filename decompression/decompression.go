// Package decompression implements the Huffman text compression used by the
// Death Gate string and dialog resources.
//
// Three incompatible on-disk variants exist. Each one embeds its own decode
// tree (and, for the later versions, a dictionary) ahead of the compressed
// bitstream:
//
//	v2 | [count u8][term u8][count × {value u8, siblings u8}][bitstream]
//	v3 | [count u16][count × {zero u16, one u16}][dictionary][bitstream]
//	v4 | same as v3; decoded lines extend the dictionary
//
// The dictionary section is [entries u16][entries × {len u8, bytes}].
package decompression

import (
	"fmt"

	"github.com/pkg/errors"
)

// Version selects an on-disk compression variant.
type Version uint8

const (
	V2 Version = 2
	V3 Version = 3
	V4 Version = 4
)

var (
	ErrOutOfData           = errors.New("bitstream exhausted")
	ErrMalformedTree       = errors.New("malformed huffman tree")
	ErrMalformedDictionary = errors.New("malformed dictionary")
	ErrOutOfRangeReference = errors.New("dictionary reference out of range")
	ErrUnknownVersion      = errors.New("unknown compression version")
)

// wrapBoth annotates an error that matches both outer and inner.
func wrapBoth(outer, inner error, format string, args ...any) error {
	return errors.Wrapf(fmt.Errorf("%w: %w", outer, inner), format, args...)
}

// sections is the parsed preamble of a compressed payload: the tree, the
// embedded dictionary, and the offset at which the bitstream begins.
type sections struct {
	tree   *tree
	dict   *dictionary
	stream int
}

type variant struct {
	parse func(payload []byte) (sections, error)
	// terminator reports whether an escaped literal ends the stream
	terminator func(payload []byte) (uint8, bool)
	// grows is true when decoded lines are appended to the dictionary
	grows bool
}

// LUT maps a version to its tree and dictionary parsing strategy.
type LUT map[Version]variant

var Variants = LUT{
	V2: {parse: parseNibbleSections, terminator: nibbleTerminator},
	V3: {parse: parseWideSections},
	V4: {parse: parseWideSections, grows: true},
}

// Known reports whether v names a supported variant.
func Known(v Version) bool {
	_, ok := Variants[v]
	return ok
}

func (v Version) String() string {
	switch v {
	case V2:
		return "Version(2)"
	case V3:
		return "Version(3)"
	case V4:
		return "Version(4)"
	}
	return "Version(UNKNOWN)"
}

package decompression

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// dictionary holds the strings that back-reference symbols expand to. It is
// created per decode call and discarded with it.
type dictionary struct {
	entries [][]byte
}

func (d *dictionary) lookup(sym symbol) ([]byte, error) {
	k := int(sym - symRef)
	if d == nil || k >= len(d.entries) {
		populated := 0
		if d != nil {
			populated = len(d.entries)
		}
		return nil, wrapBoth(ErrMalformedDictionary, ErrOutOfRangeReference, "entry %d of %d", k, populated)
	}
	return d.entries[k], nil
}

func (d *dictionary) add(entry []byte) {
	d.entries = append(d.entries, append([]byte(nil), entry...))
}

func parseDictionary(payload []byte, offset int) (*dictionary, int, error) {
	if offset+2 > len(payload) {
		return nil, 0, errors.Wrap(ErrMalformedDictionary, "missing entry count")
	}
	count := int(binary.LittleEndian.Uint16(payload[offset:]))
	pos := offset + 2

	d := &dictionary{entries: make([][]byte, 0, count)}
	for i := 0; i < count; i++ {
		if pos >= len(payload) {
			return nil, 0, errors.Wrapf(ErrMalformedDictionary, "entry %d: missing length", i)
		}
		size := int(payload[pos])
		pos++
		if size == 0 {
			return nil, 0, errors.Wrapf(ErrMalformedDictionary, "entry %d is empty", i)
		}
		if pos+size > len(payload) {
			return nil, 0, errors.Wrapf(ErrMalformedDictionary, "entry %d overruns payload", i)
		}
		d.entries = append(d.entries, payload[pos:pos+size])
		pos += size
	}

	return d, pos, nil
}

package decompression

import (
	"bytes"

	"github.com/pkg/errors"
)

// Huffman decoding

func parseNibbleSections(payload []byte) (sections, error) {
	t, _, end, err := parseNibbleTree(payload)
	if err != nil {
		return sections{}, err
	}
	return sections{tree: t, stream: end}, nil
}

func nibbleTerminator(payload []byte) (uint8, bool) {
	if len(payload) < 2 {
		return 0, false
	}
	return payload[1], true
}

func parseWideSections(payload []byte) (sections, error) {
	t, end, err := parseWideTree(payload)
	if err != nil {
		return sections{}, err
	}
	d, end, err := parseDictionary(payload, end)
	if err != nil {
		return sections{}, err
	}
	return sections{tree: t, dict: d, stream: end}, nil
}

type huffmanState struct {
	tree *tree
	dict *dictionary
	bs   *Bitstream

	out       bytes.Buffer
	lineStart int
	grows     bool
}

func (h *huffmanState) emit(b byte) {
	h.out.WriteByte(b)
	if !isTerminator(b) {
		return
	}
	line := h.out.Bytes()[h.lineStart : h.out.Len()-1]
	if h.grows && len(line) > 0 {
		h.dict.add(line)
	}
	h.lineStart = h.out.Len()
}

// Decode expands a compressed text payload. The tree and dictionary
// sections are read from the start of payload; streamSize bytes of
// bitstream follow them.
func Decode(payload []byte, streamSize int, v Version) ([]string, error) {
	raw, err := Expand(payload, streamSize, v)
	if err != nil {
		return nil, err
	}
	return SplitLines(raw), nil
}

// Expand is Decode without the final split into lines.
func Expand(payload []byte, streamSize int, v Version) ([]byte, error) {
	vt, ok := Variants[v]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownVersion, "%d", v)
	}

	sec, err := vt.parse(payload)
	if err != nil {
		return nil, errors.Wrapf(err, "%v", v)
	}
	if sec.dict == nil {
		sec.dict = &dictionary{}
	}
	if streamSize < 0 || sec.stream+streamSize > len(payload) {
		return nil, wrapBoth(ErrMalformedTree, ErrOutOfData,
			"%v: %d byte stream at offset %d overruns %d byte payload", v, streamSize, sec.stream, len(payload))
	}

	h := huffmanState{
		tree:  sec.tree,
		dict:  sec.dict,
		bs:    NewBitstream(payload, sec.stream, streamSize),
		grows: vt.grows,
	}

	var (
		term    uint8
		hasTerm bool
	)
	if vt.terminator != nil {
		term, hasTerm = vt.terminator(payload)
	}

	for h.bs.Remaining() > 0 {
		sym, err := h.tree.resolve(h.bs)
		if err != nil {
			return nil, err
		}

		switch {
		case sym == symEscape:
			literal, err := h.bs.ReadBits(8)
			if err != nil {
				return nil, wrapBoth(ErrMalformedTree, err, "escaped literal")
			}
			if hasTerm && uint8(literal) == term {
				return h.out.Bytes(), nil
			}
			h.emit(uint8(literal))
		case sym < symEOS:
			h.emit(uint8(sym))
		case sym == symEOS:
			return h.out.Bytes(), nil
		default:
			entry, err := h.dict.lookup(sym)
			if err != nil {
				return nil, err
			}
			for _, b := range entry {
				h.emit(b)
			}
		}
	}

	return h.out.Bytes(), nil
}

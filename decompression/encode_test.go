package decompression

import (
	"bytes"
	"encoding/binary"
	"sort"
	"testing"

	"github.com/icza/bitio"
)

// The encoders in this file invert Decode so that the tests can build
// compressed payloads from plain lines.

type bitWriter struct {
	buf bytes.Buffer
	w   *bitio.Writer
}

func newBitWriter() *bitWriter {
	bw := &bitWriter{}
	bw.w = bitio.NewWriter(&bw.buf)
	return bw
}

func (bw *bitWriter) code(t *testing.T, path []bool) {
	t.Helper()
	for _, b := range path {
		if err := bw.w.WriteBool(b); err != nil {
			t.Fatal(err)
		}
	}
}

func (bw *bitWriter) bits(t *testing.T, v uint64, n uint8) {
	t.Helper()
	if err := bw.w.WriteBits(v, n); err != nil {
		t.Fatal(err)
	}
}

func (bw *bitWriter) bytes(t *testing.T) []byte {
	t.Helper()
	if err := bw.w.Close(); err != nil {
		t.Fatal(err)
	}
	return bw.buf.Bytes()
}

// v2Tree is a fixed nibble tree: ' ' is "0", 'e' is "10" and "11" escapes
// to an 8-bit literal.
var v2Tree = []byte{
	0x00, 0x12,
	' ', 0x00,
	0x00, 0x10,
	'e', 0x00,
}

const v2Term = 0xFF

func encodeV2(t *testing.T, lines []string) ([]byte, int) {
	t.Helper()
	bw := newBitWriter()
	literal := func(c byte) {
		switch c {
		case ' ':
			bw.code(t, []bool{false})
		case 'e':
			bw.code(t, []bool{true, false})
		default:
			bw.code(t, []bool{true, true})
			bw.bits(t, uint64(c), 8)
		}
	}
	for _, line := range lines {
		for i := 0; i < len(line); i++ {
			literal(line[i])
		}
		literal(0)
	}
	bw.code(t, []bool{true, true})
	bw.bits(t, v2Term, 8)
	stream := bw.bytes(t)

	payload := []byte{byte(len(v2Tree) / 2), v2Term}
	payload = append(payload, v2Tree...)
	payload = append(payload, stream...)
	return payload, len(stream)
}

type encNode struct {
	sym         symbol
	weight      int
	order       int
	left, right *encNode
}

func (n *encNode) leaf() bool { return n.left == nil }

func buildCodes(freq map[symbol]int) (*encNode, map[symbol][]bool) {
	var nodes []*encNode
	for sym, w := range freq {
		nodes = append(nodes, &encNode{sym: sym, weight: w, order: int(sym)})
	}
	next := 0x10000
	for len(nodes) > 1 {
		sort.Slice(nodes, func(i, j int) bool {
			if nodes[i].weight != nodes[j].weight {
				return nodes[i].weight < nodes[j].weight
			}
			return nodes[i].order < nodes[j].order
		})
		merged := &encNode{weight: nodes[0].weight + nodes[1].weight, order: next, left: nodes[0], right: nodes[1]}
		next++
		nodes = append([]*encNode{merged}, nodes[2:]...)
	}

	codes := map[symbol][]bool{}
	var walk func(n *encNode, path []bool)
	walk = func(n *encNode, path []bool) {
		if n.leaf() {
			codes[n.sym] = append([]bool(nil), path...)
			return
		}
		walk(n.left, append(path, false))
		walk(n.right, append(path, true))
	}
	walk(nodes[0], nil)
	return nodes[0], codes
}

// serializeWide lays the branch nodes out breadth first so that every
// child index is larger than its parent's.
func serializeWide(root *encNode) []byte {
	index := map[*encNode]int{root: 0}
	queue := []*encNode{root}
	for i := 0; i < len(queue); i++ {
		for _, c := range []*encNode{queue[i].left, queue[i].right} {
			if !c.leaf() {
				index[c] = len(queue)
				queue = append(queue, c)
			}
		}
	}

	out := make([]byte, 2, 2+len(queue)*4)
	binary.LittleEndian.PutUint16(out, uint16(len(queue)))
	for _, n := range queue {
		for _, c := range []*encNode{n.left, n.right} {
			v := uint16(leafBit) | uint16(c.sym)
			if !c.leaf() {
				v = uint16(index[c])
			}
			out = binary.LittleEndian.AppendUint16(out, v)
		}
	}
	return out
}

func serializeDictionary(entries []string) []byte {
	out := binary.LittleEndian.AppendUint16(nil, uint16(len(entries)))
	for _, e := range entries {
		out = append(out, byte(len(e)))
		out = append(out, e...)
	}
	return out
}

// tokenize replaces the longest dictionary match at each position with a
// back-reference. When grows is set every finished line joins the
// dictionary, matching the v4 decoder.
func tokenize(lines []string, entries []string, grows bool) []symbol {
	dict := append([]string(nil), entries...)
	var syms []symbol
	for _, line := range lines {
		for i := 0; i < len(line); {
			best, bestLen := -1, 0
			for k, e := range dict {
				if len(e) > bestLen && len(line)-i >= len(e) && line[i:i+len(e)] == e {
					best, bestLen = k, len(e)
				}
			}
			if best >= 0 {
				syms = append(syms, symRef+symbol(best))
				i += bestLen
				continue
			}
			syms = append(syms, symbol(line[i]))
			i++
		}
		syms = append(syms, 0)
		if grows && len(line) > 0 {
			dict = append(dict, line)
		}
	}
	return append(syms, symEOS)
}

func encodeWide(t *testing.T, lines []string, entries []string, grows bool) ([]byte, int) {
	t.Helper()
	syms := tokenize(lines, entries, grows)

	freq := map[symbol]int{0: 0, symEOS: 0}
	for _, s := range syms {
		freq[s]++
	}
	root, codes := buildCodes(freq)

	bw := newBitWriter()
	for _, s := range syms {
		bw.code(t, codes[s])
	}
	stream := bw.bytes(t)

	payload := serializeWide(root)
	payload = append(payload, serializeDictionary(entries)...)
	payload = append(payload, stream...)
	return payload, len(stream)
}

package decompression

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

type symbol uint16

const (
	// symEOS ends a v3/v4 stream.
	symEOS symbol = 0x100
	// symRef is the first dictionary back-reference symbol.
	symRef symbol = 0x101
	// symEscape marks a v2 branch whose next 8 bits are a raw literal.
	symEscape symbol = 0xFFFF
)

const noChild = -1

type node struct {
	leaf  bool
	value symbol
	next  [2]int
}

// tree is the decode tree of a single resource. Node 0 is the root.
type tree struct {
	nodes []node
}

// resolve descends from the root one bit at a time until a leaf is reached.
// Escape branches resolve to symEscape.
func (t *tree) resolve(bs *Bitstream) (symbol, error) {
	idx := 0
	for {
		n := &t.nodes[idx]
		if n.leaf {
			return n.value, nil
		}

		bit, err := bs.ReadBit()
		if err != nil {
			return 0, wrapBoth(ErrMalformedTree, err, "path ran off the stream at node %d", idx)
		}

		b := 0
		if bit {
			b = 1
		}
		next := n.next[b]
		if next == noChild {
			return symEscape, nil
		}
		idx = next
	}
}

// parseNibbleTree reads the v2 node table. Each node is a value and a
// siblings byte; siblings holds the relative offset of the 0-branch in the
// high nibble and of the 1-branch in the low nibble. A zero offset on a
// branch node is an escape.
func parseNibbleTree(payload []byte) (*tree, uint8, int, error) {
	if len(payload) < 2 {
		return nil, 0, 0, errors.Wrap(ErrMalformedTree, "missing v2 tree header")
	}
	count := int(payload[0])
	term := payload[1]
	if count == 0 {
		return nil, 0, 0, errors.Wrap(ErrMalformedTree, "empty tree")
	}

	end := 2 + count*2
	if end > len(payload) {
		return nil, 0, 0, errors.Wrapf(ErrMalformedTree, "%d nodes overrun %d byte payload", count, len(payload))
	}

	if payload[3] == 0 {
		return nil, 0, 0, errors.Wrap(ErrMalformedTree, "root is a leaf")
	}

	t := &tree{nodes: make([]node, count)}
	raw := payload[2:end]
	for i := range t.nodes {
		value, siblings := raw[i*2], raw[i*2+1]
		if siblings == 0 {
			t.nodes[i] = node{leaf: true, value: symbol(value)}
			continue
		}

		n := node{next: [2]int{noChild, noChild}}
		offsets := [2]int{int(siblings >> 4), int(siblings & 0x0f)}
		for b, off := range offsets {
			if off == 0 {
				continue
			}
			if i+off >= count {
				return nil, 0, 0, errors.Wrapf(ErrMalformedTree, "node %d links past node %d", i, count-1)
			}
			n.next[b] = i + off
		}
		t.nodes[i] = n
	}

	return t, term, end, nil
}

const leafBit = 0x8000

// parseWideTree reads the v3/v4 node table. Each node holds two 16-bit
// children; a child with the high bit set is a leaf symbol, otherwise it is
// the index of a later node.
func parseWideTree(payload []byte) (*tree, int, error) {
	if len(payload) < 2 {
		return nil, 0, errors.Wrap(ErrMalformedTree, "missing tree header")
	}
	count := int(binary.LittleEndian.Uint16(payload))
	if count == 0 {
		return nil, 0, errors.Wrap(ErrMalformedTree, "empty tree")
	}

	end := 2 + count*4
	if end > len(payload) {
		return nil, 0, errors.Wrapf(ErrMalformedTree, "%d nodes overrun %d byte payload", count, len(payload))
	}

	// Branch nodes come first, leaves are appended after them so that every
	// child is reachable through a plain index.
	t := &tree{nodes: make([]node, count, count*3)}
	raw := payload[2:end]
	for i := 0; i < count; i++ {
		n := node{}
		for b := 0; b < 2; b++ {
			child := binary.LittleEndian.Uint16(raw[i*4+b*2:])
			if child&leafBit != 0 {
				n.next[b] = len(t.nodes)
				t.nodes = append(t.nodes, node{leaf: true, value: symbol(child &^ leafBit)})
				continue
			}
			idx := int(child)
			if idx <= i || idx >= count {
				return nil, 0, errors.Wrapf(ErrMalformedTree, "node %d links to node %d", i, idx)
			}
			n.next[b] = idx
		}
		t.nodes[i] = n
	}

	return t, end, nil
}

package decompression

import (
	"bytes"
	"io"

	"github.com/32bitkid/bitreader"
	"github.com/pkg/errors"
)

// BitOrder is the order in which bits are taken from each byte of a
// compressed stream. Only MSBFirst has a reader.
type BitOrder uint8

const MSBFirst BitOrder = 0

// StreamBitOrder is the only order used by the text resources: the most
// significant bit of each byte is consumed first.
const StreamBitOrder = MSBFirst

// Bitstream is a single pass reader over a window of a byte buffer. Once a
// bit has been consumed it can not be read again.
type Bitstream struct {
	br        bitreader.BitReader
	remaining int
}

// NewBitstream reads size bytes of buf starting at offset. The window is
// clamped to the bounds of buf.
func NewBitstream(buf []byte, offset, size int) *Bitstream {
	if offset < 0 {
		offset = 0
	}
	if offset > len(buf) {
		offset = len(buf)
	}
	if size < 0 || offset+size > len(buf) {
		size = len(buf) - offset
	}

	window := buf[offset : offset+size]
	return &Bitstream{
		br:        bitreader.NewReader(bytes.NewReader(window)),
		remaining: size << 3,
	}
}

// Remaining returns the number of unread bits.
func (bs *Bitstream) Remaining() int { return bs.remaining }

// ReadBit consumes a single bit.
func (bs *Bitstream) ReadBit() (bool, error) {
	if bs.remaining < 1 {
		return false, errors.WithStack(ErrOutOfData)
	}
	bit, err := bs.br.Read1()
	if err != nil {
		return false, wrapRead(err)
	}
	bs.remaining--
	return bit, nil
}

// ReadBits consumes n bits, n <= 32, and returns them with the first bit
// read in the most significant position.
func (bs *Bitstream) ReadBits(n uint) (uint32, error) {
	if n > 32 {
		return 0, errors.Errorf("read of %d bits overflows uint32", n)
	}
	if n == 0 {
		return 0, nil
	}
	if bs.remaining < int(n) {
		bs.remaining = 0
		return 0, errors.Wrapf(ErrOutOfData, "wanted %d bits", n)
	}
	val, err := bs.br.Read32(n)
	if err != nil {
		return 0, wrapRead(err)
	}
	bs.remaining -= int(n)
	return val, nil
}

func wrapRead(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return errors.WithStack(ErrOutOfData)
	}
	return errors.Wrap(err, "bitstream")
}

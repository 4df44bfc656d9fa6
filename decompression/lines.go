package decompression

func isTerminator(b byte) bool {
	return b == 0x00 || b == '\r' || b == '\n'
}

// SplitLines breaks raw text on NUL, CR and LF. Terminators are consumed
// and empty fragments are dropped.
func SplitLines(b []byte) []string {
	var lines []string
	start := 0
	for i, c := range b {
		if !isTerminator(c) {
			continue
		}
		if i > start {
			lines = append(lines, string(b[start:i]))
		}
		start = i + 1
	}
	if start < len(b) {
		lines = append(lines, string(b[start:]))
	}
	return lines
}

// DecompressNone returns the first streamSize bytes of an uncompressed
// payload as lines.
func DecompressNone(payload []byte, streamSize int) []string {
	if streamSize > len(payload) {
		streamSize = len(payload)
	}
	return SplitLines(payload[:streamSize])
}

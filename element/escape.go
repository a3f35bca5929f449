package element

import "github.com/tuplekv/keycodec/buffer"

// escapeFactorNum and escapeFactorDen bound the expansion of the 7-bit
// escape: 8 output bytes for every 7 input bytes, rounded up so the trailing
// partial byte is counted.
const (
	escapeFactorNum = 8
	escapeFactorDen = 7
)

// EscapedLen returns an upper bound on the number of payload bytes
// AppendEscaped will emit for an input of length n, for callers that want to
// pre-size a writer via Need. AppendEscaped emits exactly ceil(8n/7) bytes;
// the result adds one more byte on top of that.
func EscapedLen(n int) int {
	return (n*escapeFactorNum+escapeFactorDen-1)/escapeFactorDen + 1
}

// AppendEscaped writes p through the sliding 7-bit-window escape: every
// emitted byte has its high bit set, so a subsequent kind byte (always <
// 0x80) unambiguously terminates the run. Byte-wise comparison of the
// escaped output preserves byte-wise comparison of the input.
//
// Implementation note: the input is treated as one continuous MSB-first bit
// stream, repacked into 7-bit groups with the high bit forced set. This is
// equivalent to, but easier to reason about than, the shift/trailer
// recurrence the scheme is traditionally described with.
func AppendEscaped(w *buffer.Writer, p []byte) {
	w.Need(EscapedLen(len(p)))

	var acc uint32
	var bits uint

	for _, o := range p {
		acc = (acc << 8) | uint32(o)
		bits += 8

		for bits >= 7 {
			shift := bits - 7
			chunk := byte((acc >> shift) & 0x7F)
			w.PutByte(0x80 | chunk)
			bits -= 7
		}

		if bits > 0 {
			acc &= (1 << bits) - 1
		} else {
			acc = 0
		}
	}

	if bits > 0 {
		chunk := byte((acc << (7 - bits)) & 0x7F)
		w.PutByte(0x80 | chunk)
	}
}

// ReadEscaped reads an escaped byte run from r, stopping at end-of-input or
// at the first byte with the high bit clear (left unconsumed for the next
// element's kind byte). It reconstructs and returns the original bytes.
func ReadEscaped(r *buffer.Reader) ([]byte, error) {
	var out []byte
	var acc uint32
	var bits uint

	for {
		b, err := r.PeekByte()
		if err != nil {
			break // end of input terminates the run
		}
		if b&0x80 == 0 {
			break // next element's kind byte
		}
		if _, err := r.GetByte(); err != nil {
			return nil, err
		}

		acc = (acc << 7) | uint32(b&0x7F)
		bits += 7

		if bits >= 8 {
			shift := bits - 8
			out = append(out, byte((acc>>shift)&0xFF))
			bits -= 8
			acc &= (1 << bits) - 1
		}
	}

	return out, nil
}

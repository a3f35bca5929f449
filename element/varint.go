package element

import (
	"github.com/tuplekv/keycodec/buffer"
	"github.com/tuplekv/keycodec/endian"
	"github.com/tuplekv/keycodec/errs"
)

var bigEndian = endian.GetBigEndianEngine()

// Order-preserving varint boundaries, per the fixed wire table: lexicographic
// byte order of the encoding must equal numeric order of the value.
const (
	varint1Max = 240
	varint2Max = 2287
	varint3Max = 67823

	varint2Base = 240
	varint3Base = 2288

	prefix2Base = 241
	prefix3     = 249
	prefix4     = 250
	prefix5     = 251
	prefix6     = 252
	prefix7     = 253
	prefix8     = 254
	prefix9     = 255
)

// AppendUvarint appends the order-preserving varint encoding of v to buf,
// XORing every emitted byte with xor (0xFF for a negative magnitude, 0x00
// otherwise).
func AppendUvarint(w *buffer.Writer, v uint64, xor byte) {
	switch {
	case v <= varint1Max:
		w.PutByte(xor ^ byte(v))

	case v <= varint2Max:
		d := v - varint2Base
		w.PutByte(xor ^ byte(prefix2Base+(d>>8)))
		w.PutByte(xor ^ byte(d))

	case v <= varint3Max:
		d := v - varint3Base
		w.PutByte(xor ^ prefix3)
		w.PutByte(xor ^ byte(d>>8))
		w.PutByte(xor ^ byte(d))

	case v <= 0xFFFFFF:
		w.PutByte(xor ^ prefix4)
		putBE(w, v, 3, xor)

	case v <= 0xFFFFFFFF:
		w.PutByte(xor ^ prefix5)
		putBE(w, v, 4, xor)

	case v <= 0xFFFFFFFFFF:
		w.PutByte(xor ^ prefix6)
		putBE(w, v, 5, xor)

	case v <= 0xFFFFFFFFFFFF:
		w.PutByte(xor ^ prefix7)
		putBE(w, v, 6, xor)

	case v <= 0xFFFFFFFFFFFFFF:
		w.PutByte(xor ^ prefix8)
		putBE(w, v, 7, xor)

	default:
		w.PutByte(xor ^ prefix9)
		putBE(w, v, 8, xor)
	}
}

// putBE writes the low n bytes of v, most-significant first, each XORed
// with xor. It renders the full 8-byte big-endian form via the engine and
// slices off the low n bytes, rather than shifting byte-by-byte.
func putBE(w *buffer.Writer, v uint64, n int, xor byte) {
	var full [8]byte
	bigEndian.PutUint64(full[:], v)
	for _, b := range full[8-n:] {
		w.PutByte(xor ^ b)
	}
}

// ReadUvarint decodes an order-preserving varint from r, undoing the xor
// mask applied at encode time.
func ReadUvarint(r *buffer.Reader, xor byte) (uint64, error) {
	b0, err := r.GetByte()
	if err != nil {
		return 0, err
	}
	prefix := b0 ^ xor

	switch {
	case prefix <= varint1Max:
		return uint64(prefix), nil

	case prefix <= 248:
		rest, err := r.Take(1)
		if err != nil {
			return 0, err
		}
		v := varint2Base + uint64(prefix-prefix2Base)<<8 + uint64(rest[0]^xor)
		return v, nil

	case prefix == prefix3:
		rest, err := r.Take(2)
		if err != nil {
			return 0, err
		}
		v := varint3Base + uint64(rest[0]^xor)<<8 + uint64(rest[1]^xor)
		return v, nil

	default:
		n := int(prefix) - int(prefix4) + 3
		if n < 3 || n > 8 {
			return 0, errs.ErrMalformed
		}
		rest, err := r.Take(n)
		if err != nil {
			return 0, err
		}
		var full [8]byte
		for i, b := range rest {
			full[8-n+i] = b ^ xor
		}
		return bigEndian.Uint64(full[:]), nil
	}
}

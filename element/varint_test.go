package element

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuplekv/keycodec/buffer"
)

func encodeVarint(v uint64, xor byte) []byte {
	w := buffer.NewWriter()
	defer w.Release()
	AppendUvarint(w, v, xor)
	out := make([]byte, w.Len())
	copy(out, w.Finalize())
	return out
}

func TestAppendUvarint_BoundaryLengths(t *testing.T) {
	tests := []struct {
		name string
		v    uint64
		want int
	}{
		{"zero", 0, 1},
		{"240 is last 1-byte", 240, 1},
		{"241 is first 2-byte", 241, 2},
		{"2287 is last 2-byte", 2287, 2},
		{"2288 is first 3-byte", 2288, 3},
		{"67823 is last 3-byte", 67823, 3},
		{"67824 is first 4-byte", 67824, 4},
		{"2^16-1 is 3-byte", 1<<16 - 1, 3},
		{"2^16 is 3-byte", 1 << 16, 3},
		{"2^24-1 is 4-byte", 1<<24 - 1, 4},
		{"2^24 is 5-byte", 1 << 24, 5},
		{"2^32-1 is 5-byte", 1<<32 - 1, 5},
		{"2^32 is 6-byte", 1 << 32, 6},
		{"2^40-1 is 6-byte", 1<<40 - 1, 6},
		{"2^40 is 7-byte", 1 << 40, 7},
		{"2^48-1 is 7-byte", 1<<48 - 1, 7},
		{"2^48 is 8-byte", 1 << 48, 8},
		{"2^56-1 is 8-byte", 1<<56 - 1, 8},
		{"2^56 is 9-byte", 1 << 56, 9},
		{"max uint64 is 9-byte", math.MaxUint64, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := encodeVarint(tt.v, 0)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestUvarint_RoundTrip(t *testing.T) {
	values := []uint64{
		0, 1, 100, 240, 241, 242, 2287, 2288, 2289, 67823, 67824,
		1 << 16, 1<<16 - 1, 1 << 24, 1<<24 - 1, 1 << 32, 1<<32 - 1,
		1 << 40, 1<<40 - 1, 1 << 48, 1<<48 - 1, 1 << 56, 1<<56 - 1,
		math.MaxUint64, math.MaxUint64 - 1,
	}
	for _, v := range values {
		for _, xor := range []byte{0x00, 0xFF} {
			enc := encodeVarint(v, xor)
			r := buffer.NewReader(enc)
			got, err := ReadUvarint(r, xor)
			require.NoError(t, err)
			assert.Equal(t, v, got, "v=%d xor=%#x", v, xor)
			assert.True(t, r.Done(), "reader should consume exactly the varint")
		}
	}
}

func TestUvarint_OrderPreservation(t *testing.T) {
	values := []uint64{
		0, 1, 239, 240, 241, 500, 2287, 2288, 3000, 1 << 16, 67823, 67824,
		1 << 24, 1 << 32, 1 << 40, 1 << 48, 1 << 56, math.MaxUint64,
	}
	for i := 0; i < len(values); i++ {
		for j := i + 1; j < len(values); j++ {
			a, b := encodeVarint(values[i], 0), encodeVarint(values[j], 0)
			assert.True(t, compareBytes(a, b) < 0,
				"encode(%d) should sort before encode(%d)", values[i], values[j])
		}
	}
}

func TestReadUvarint_Truncated(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		r := buffer.NewReader(nil)
		_, err := ReadUvarint(r, 0)
		assert.Error(t, err)
	})

	t.Run("2-byte form missing second byte", func(t *testing.T) {
		r := buffer.NewReader([]byte{241})
		_, err := ReadUvarint(r, 0)
		assert.Error(t, err)
	})

	t.Run("9-byte form missing payload", func(t *testing.T) {
		r := buffer.NewReader([]byte{255, 0, 0})
		_, err := ReadUvarint(r, 0)
		assert.Error(t, err)
	})
}

func TestAppendUvarint_ExactSpecScenario(t *testing.T) {
	// pack("", (240,)) is 2 bytes total counting the kind byte elsewhere;
	// here we assert the varint payload itself is 1 byte for 240 and 2
	// bytes for 241, matching spec.md scenario 3.
	assert.Len(t, encodeVarint(240, 0), 1)
	assert.Len(t, encodeVarint(241, 0), 2)
	assert.Equal(t, []byte{241, 1}, encodeVarint(241, 0))
}

func compareBytes(a, b []byte) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

package element

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tuplekv/keycodec/buffer"
)

func TestOrderPreservation_Integers(t *testing.T) {
	values := []int64{
		-(1 << 40), -67824, -67823, -2288, -2287, -241, -240, -1, 0,
		1, 240, 241, 2287, 2288, 1 << 16, 67823, 67824, 1 << 24, 1 << 40,
	}
	for i := 0; i < len(values); i++ {
		for j := i + 1; j < len(values); j++ {
			a, b := values[i], values[j]
			encA, encB := appendValueInt(a), appendValueInt(b)
			assert.True(t, bytes.Compare(encA, encB) < 0,
				"encode(%d) should sort before encode(%d)", a, b)
		}
	}
}

func appendValueInt(i int64) []byte {
	w := buffer.NewWriter()
	defer w.Release()
	_ = Append(w, Int(i))
	out := make([]byte, w.Len())
	copy(out, w.Finalize())
	return out
}

func TestOrderPreservation_Strings(t *testing.T) {
	values := []string{"", "a", "aa", "ab", "b", "z", "za", "\x00", "\xff"}
	for i := 0; i < len(values); i++ {
		for j := 0; j < len(values); j++ {
			if values[i] == values[j] {
				continue
			}
			wantLess := values[i] < values[j]
			encI := appendValueText(values[i])
			encJ := appendValueText(values[j])
			gotLess := bytes.Compare(encI, encJ) < 0
			assert.Equal(t, wantLess, gotLess, "%q vs %q", values[i], values[j])
		}
	}
}

func appendValueText(s string) []byte {
	w := buffer.NewWriter()
	defer w.Release()
	_ = Append(w, Text(s))
	out := make([]byte, w.Len())
	copy(out, w.Finalize())
	return out
}

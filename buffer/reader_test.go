package buffer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuplekv/keycodec/errs"
)

func TestReader_GetByte(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02, 0x03})

	b, err := r.GetByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0x01), b)
	assert.Equal(t, 2, r.Len())

	b, err = r.GetByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0x02), b)
}

func TestReader_GetByte_Truncated(t *testing.T) {
	r := NewReader(nil)

	_, err := r.GetByte()
	assert.True(t, errors.Is(err, errs.ErrTruncated))
}

func TestReader_PeekByte_DoesNotAdvance(t *testing.T) {
	r := NewReader([]byte{0x7A})

	b, err := r.PeekByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0x7A), b)
	assert.Equal(t, 1, r.Len(), "Peek must not consume")
}

func TestReader_Peek_Truncated(t *testing.T) {
	r := NewReader([]byte{0x01})

	_, err := r.Peek(2)
	assert.True(t, errors.Is(err, errs.ErrTruncated))
}

func TestReader_Take(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02, 0x03, 0x04})

	b, err := r.Take(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02}, b)
	assert.Equal(t, 2, r.Len())

	b, err = r.Take(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x03, 0x04}, b)
	assert.True(t, r.Done())
}

func TestReader_Skip(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02, 0x03})

	require.NoError(t, r.Skip(2))
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, 2, r.Pos())
}

func TestReader_Skip_Truncated(t *testing.T) {
	r := NewReader([]byte{0x01})

	err := r.Skip(5)
	assert.True(t, errors.Is(err, errs.ErrTruncated))
}

func TestReader_Ensure(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02})

	assert.NoError(t, r.Ensure(2))
	assert.Error(t, r.Ensure(3))
}

func TestReader_Done_EmptyInput(t *testing.T) {
	r := NewReader(nil)
	assert.True(t, r.Done())
	assert.Equal(t, 0, r.Len())
}

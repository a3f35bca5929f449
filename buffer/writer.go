// Package buffer provides the append-only Writer and bounded Reader that the
// element and tuple packages build the wire format on top of.
package buffer

import "github.com/tuplekv/keycodec/internal/pool"

// Writer is a growable, append-only byte sink with the same amortized growth
// strategy as the pool it wraps. It exists so element encoders never touch
// pool.ByteBuffer directly.
//
// The zero Writer is not usable; construct one with NewWriter or
// NewBatchWriter.
type Writer struct {
	buf *pool.ByteBuffer
	// fromPool is not set by NewWriter or NewBatchWriter and is not read:
	// Release always returns buf to the single-tuple pool and ReleaseBatch
	// to the batch pool.
	fromPool *pool.ByteBufferPool
}

// NewWriter returns a Writer sized for a single encoded tuple.
func NewWriter() *Writer {
	return &Writer{buf: pool.GetKeyBuffer()}
}

// NewBatchWriter returns a Writer sized for packing a list of tuples.
func NewBatchWriter() *Writer {
	return &Writer{buf: pool.GetBatchBuffer()}
}

// Need ensures at least n unused bytes are available without reallocating on
// the next Put call.
func (w *Writer) Need(n int) {
	w.buf.Grow(n)
}

// PutByte appends a single byte, growing the buffer if necessary.
func (w *Writer) PutByte(b byte) {
	w.buf.MustWriteByte(b)
}

// PutBytes appends a byte slice, growing the buffer if necessary.
func (w *Writer) PutBytes(b []byte) {
	w.buf.MustWrite(b)
}

// Ptr returns the buffer's bytes in [offset, end), to let a caller overwrite
// bytes already written (e.g. a fixed-width placeholder appended with
// PutBytes and then filled in place). end may reach into capacity reserved
// via Need, but bytes past Len are not counted by Len or returned by
// Finalize. The returned slice is only valid until the next Put/Need call.
func (w *Writer) Ptr(offset, end int) []byte {
	return w.buf.Slice(offset, end)
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Finalize returns the accumulated bytes. The Writer must not be used again
// except via Release.
func (w *Writer) Finalize() []byte {
	return w.buf.Bytes()
}

// Release returns the Writer's backing buffer to its pool. Call this once
// the caller is done with the slice returned by Finalize (i.e. after it has
// been copied into a Key or returned to the codec's caller).
func (w *Writer) Release() {
	if w.buf == nil {
		return
	}
	pool.PutKeyBuffer(w.buf)
	w.buf = nil
}

// ReleaseBatch is the Release counterpart for a Writer obtained via
// NewBatchWriter.
func (w *Writer) ReleaseBatch() {
	if w.buf == nil {
		return
	}
	pool.PutBatchBuffer(w.buf)
	w.buf = nil
}

// Abort discards the Writer's contents without returning them to the
// caller, releasing the backing buffer immediately. Used when encoding
// fails partway through and the partial output must not escape.
func (w *Writer) Abort() {
	w.Release()
}

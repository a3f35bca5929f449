package buffer

import "github.com/tuplekv/keycodec/errs"

// Reader is a bounded forward-only cursor over a byte slice. It never
// allocates or copies; all element decoders read directly out of the
// caller-supplied slice via Peek.
type Reader struct {
	b   []byte
	pos int
}

// NewReader returns a Reader positioned at the start of b.
func NewReader(b []byte) *Reader {
	return &Reader{b: b}
}

// Len returns the number of unread bytes remaining.
func (r *Reader) Len() int {
	return len(r.b) - r.pos
}

// Pos returns the current read offset into the original slice.
func (r *Reader) Pos() int {
	return r.pos
}

// Done reports whether the Reader has consumed all bytes.
func (r *Reader) Done() bool {
	return r.pos >= len(r.b)
}

// Ensure reports whether at least n bytes remain unread, returning
// errs.ErrTruncated if not.
func (r *Reader) Ensure(n int) error {
	if r.Len() < n {
		return errs.ErrTruncated
	}
	return nil
}

// GetByte reads and consumes a single byte.
func (r *Reader) GetByte() (byte, error) {
	if err := r.Ensure(1); err != nil {
		return 0, err
	}
	b := r.b[r.pos]
	r.pos++
	return b, nil
}

// PeekByte returns the next unread byte without consuming it.
func (r *Reader) PeekByte() (byte, error) {
	if err := r.Ensure(1); err != nil {
		return 0, err
	}
	return r.b[r.pos], nil
}

// Peek returns the next n unread bytes without consuming them. The returned
// slice aliases the Reader's underlying storage.
func (r *Reader) Peek(n int) ([]byte, error) {
	if err := r.Ensure(n); err != nil {
		return nil, err
	}
	return r.b[r.pos : r.pos+n], nil
}

// Take consumes and returns the next n unread bytes.
func (r *Reader) Take(n int) ([]byte, error) {
	b, err := r.Peek(n)
	if err != nil {
		return nil, err
	}
	r.pos += n
	return b, nil
}

// Skip advances the read position by n bytes without returning them.
func (r *Reader) Skip(n int) error {
	if err := r.Ensure(n); err != nil {
		return err
	}
	r.pos += n
	return nil
}

// Package tuple implements Key, the opaque immutable container over a
// tuple's encoded byte sequence.
package tuple

import (
	"encoding/hex"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/tuplekv/keycodec/buffer"
	"github.com/tuplekv/keycodec/element"
	"github.com/tuplekv/keycodec/errs"
	"github.com/tuplekv/keycodec/internal/hash"
)

// hashUnset is the memoisation sentinel: a freshly constructed Key has not
// computed its hash yet. Go's garbage collector owns every Key's backing
// array regardless of how it was populated (encoded fresh, copied from a raw
// buffer, or sliced out of a caller's buffer), so the inline/heap-copied/
// borrowed-with-refcount distinction the wire format's source language
// needed collapses here to a single []byte field — there is no manual
// lifetime to track.
const hashUnset = ^uint64(0)

// Key is an opaque, immutable, comparable, hashable, indexable, iterable
// handle over a tuple's encoded byte sequence. The zero Key is the empty
// tuple.
//
// Key is deliberately a small value type (a slice header plus a pointer to
// the memoised hash) so it can be copied, returned, and stored by value the
// way the source language's "identity-preserving" Key(Key(t)) construction
// expects: every copy of a Key sharing the same bytes also shares, and
// benefits from, the same cached hash.
type Key struct {
	b    []byte
	hash *uint64
}

// FromElements encodes values in order and wraps the concatenated bytes.
func FromElements(values ...element.Value) (Key, error) {
	w := buffer.NewWriter()
	defer w.Release()

	for _, v := range values {
		if err := element.Append(w, v); err != nil {
			w.Abort()
			return Key{}, err
		}
	}

	out := make([]byte, w.Len())
	copy(out, w.Finalize())
	return newKey(out), nil
}

// FromRaw strips prefix from raw and wraps the remainder. If raw does not
// begin with prefix, it returns errs.NotMatched.
func FromRaw(prefix, raw []byte) (Key, error) {
	if len(raw) < len(prefix) || !bytesEqual(raw[:len(prefix)], prefix) {
		return Key{}, errs.NotMatched
	}
	out := make([]byte, len(raw)-len(prefix))
	copy(out, raw[len(prefix):])
	return newKey(out), nil
}

// FromHex decodes a lowercase (or uppercase) hex string produced by
// Key.ToHex and wraps the resulting bytes.
func FromHex(s string) (Key, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Key{}, err
	}
	return newKey(b), nil
}

func newKey(b []byte) Key {
	h := hashUnset
	return Key{b: b, hash: &h}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Bytes returns the Key's raw encoded bytes, with no prefix. The caller
// must not modify the returned slice.
func (k Key) Bytes() []byte {
	return k.b
}

// Len returns the number of logical elements in the tuple, computed by
// skipping elements one at a time.
func (k Key) Len() (int, error) {
	r := buffer.NewReader(k.b)
	n := 0
	for !r.Done() {
		if err := element.Skip(r); err != nil {
			return 0, err
		}
		n++
	}
	return n, nil
}

// At returns the i-th logical element. Negative indices count from the
// end, as with Python-style indexing.
func (k Key) At(i int) (element.Value, error) {
	if i < 0 {
		n, err := k.Len()
		if err != nil {
			return element.Value{}, err
		}
		i += n
		if i < 0 {
			return element.Value{}, errs.ErrIndexOutOfRange
		}
	}

	r := buffer.NewReader(k.b)
	for ; i > 0; i-- {
		if r.Done() {
			return element.Value{}, errs.ErrIndexOutOfRange
		}
		if err := element.Skip(r); err != nil {
			return element.Value{}, err
		}
	}
	if r.Done() {
		return element.Value{}, errs.ErrIndexOutOfRange
	}
	return element.Decode(r)
}

// All returns a lazy, forward-only, restartable iterator over the tuple's
// logical elements in order.
func (k Key) All() func(yield func(element.Value) bool) {
	return func(yield func(element.Value) bool) {
		r := buffer.NewReader(k.b)
		for !r.Done() {
			v, err := element.Decode(r)
			if err != nil {
				return
			}
			if !yield(v) {
				return
			}
		}
	}
}

// Hash returns a memoised xxHash64 of the Key's bytes. Concurrent callers
// may race to compute and store it; the computation is deterministic and
// the store is idempotent, so the race is benign.
//
// A zero-value Key (the empty tuple, constructed as var k tuple.Key rather
// than through FromElements/FromRaw/FromHex) has no memoisation slot and
// recomputes its hash on every call; this only affects the zero-value edge
// case, not Keys built through the constructors above.
func (k Key) Hash() uint64 {
	if k.hash == nil {
		return computeHash(k.b)
	}
	if h := atomic.LoadUint64(k.hash); h != hashUnset {
		return h
	}
	h := computeHash(k.b)
	atomic.StoreUint64(k.hash, h)
	return h
}

func computeHash(b []byte) uint64 {
	h := hash.ID(b)
	if h == hashUnset {
		// Canonicalise away from the sentinel so a future call can still
		// distinguish "computed" from "not yet computed".
		h--
	}
	return h
}

// Equal reports whether k and other have byte-identical encodings.
func (k Key) Equal(other Key) bool {
	return bytesEqual(k.b, other.b)
}

// Compare returns -1, 0, or 1 comparing k and other byte-wise (memcmp
// semantics): a shorter byte sequence that is a prefix of the longer one
// sorts lower.
func (k Key) Compare(other Key) int {
	return compareBytes(k.b, other.b)
}

func compareBytes(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
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

// CompareElements compares k against a raw tuple of elements without
// materialising k: it encodes one element of values at a time into a
// scratch writer and compares against the corresponding prefix of k's
// bytes, so a range scan never pays for a full decode of either side.
func (k Key) CompareElements(values []element.Value) (int, error) {
	remain := k.b
	scratch := buffer.NewWriter()
	defer func() { scratch.Release() }()

	for _, v := range values {
		if len(remain) == 0 {
			return -1, nil
		}

		if err := element.Append(scratch, v); err != nil {
			return 0, err
		}
		encoded := scratch.Finalize()

		n := len(encoded)
		if n > len(remain) {
			n = len(remain)
		}
		if c := compareBytes(remain[:n], encoded[:n]); c != 0 {
			return c, nil
		}
		if len(encoded) > len(remain) {
			return -1, nil
		}

		remain = remain[len(encoded):]
		scratch = resetWriter(scratch)
	}

	if len(remain) != 0 {
		return 1, nil
	}
	return 0, nil
}

func resetWriter(w *buffer.Writer) *buffer.Writer {
	w.Release()
	return buffer.NewWriter()
}

// Concat returns a new Key whose bytes are k's bytes followed by other's.
func (k Key) Concat(other Key) Key {
	out := make([]byte, len(k.b)+len(other.b))
	copy(out, k.b)
	copy(out[len(k.b):], other.b)
	return newKey(out)
}

// ConcatElements returns a new Key whose bytes are k's bytes followed by
// the encoding of values.
func (k Key) ConcatElements(values ...element.Value) (Key, error) {
	w := buffer.NewWriter()
	defer w.Release()

	w.PutBytes(k.b)
	for _, v := range values {
		if err := element.Append(w, v); err != nil {
			w.Abort()
			return Key{}, err
		}
	}

	out := make([]byte, w.Len())
	copy(out, w.Finalize())
	return newKey(out), nil
}

// ToRaw returns prefix followed by k's bytes.
func (k Key) ToRaw(prefix []byte) []byte {
	out := make([]byte, len(prefix)+len(k.b))
	copy(out, prefix)
	copy(out[len(prefix):], k.b)
	return out
}

// ToHex returns the lowercase hex encoding of k's bytes.
func (k Key) ToHex() string {
	return hex.EncodeToString(k.b)
}

// String returns a debug representation of k, decoding its elements and
// formatting them Go-style: Key(1, "a"). It is never part of the wire
// contract, only for logging and diagnostics; a malformed Key renders
// whatever prefix of elements it could decode before iteration stopped.
func (k Key) String() string {
	parts := make([]string, 0)
	for v := range k.All() {
		parts = append(parts, formatValue(v))
	}
	return "Key(" + strings.Join(parts, ", ") + ")"
}

func formatValue(v element.Value) string {
	switch v.Kind() {
	case element.KindNull:
		return "nil"
	case element.KindInteger, element.KindNegInteger:
		i, _ := v.AsInt()
		return fmt.Sprintf("%d", i)
	case element.KindBool:
		b, _ := v.AsBool()
		return fmt.Sprintf("%t", b)
	case element.KindBlob:
		b, _ := v.AsBytes()
		return fmt.Sprintf("%#x", b)
	case element.KindText:
		s, _ := v.AsText()
		return fmt.Sprintf("%q", s)
	case element.KindTime, element.KindNegTime:
		t, off, _ := v.AsTime()
		return fmt.Sprintf("%s(offset=%ds)", t.Format("2006-01-02T15:04:05.000Z"), off)
	case element.KindUuid:
		u, _ := v.AsUuid()
		return fmt.Sprintf("%x-%x-%x-%x-%x", u[0:4], u[4:6], u[6:8], u[8:10], u[10:16])
	default:
		return "?"
	}
}

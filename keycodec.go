// Package keycodec implements an order-preserving tuple key codec: a binary
// encoding for heterogeneous tuples of primitive values such that the
// lexicographic byte ordering of two encoded tuples equals the element-wise
// logical ordering of the original tuples. It is meant as the key layer of
// an ordered key/value store, where range scans require that keys sort the
// same way as the structured data they represent.
//
// # Core features
//
//   - Order-preserving varint, byte-string, boolean, timestamp and UUID
//     element codecs (package element)
//   - Key: an opaque, immutable, comparable, hashable, indexable, iterable
//     handle over a tuple's encoded bytes (package tuple)
//   - A batch codec for packing/unpacking lists of tuples separated by a
//     sentinel byte, plus an offset-table decoder for columnar value blobs
//
// # Basic usage
//
//	k, _ := keycodec.Pack(nil, keycodec.Tuple{element.Int(1), element.Text("a")})
//	tup, err := keycodec.Unpack(nil, k)
//	if errors.Is(err, keycodec.NotMatched) {
//	    // prefix did not match
//	}
//
// For advanced usage — configuring naive-timestamp handling, or working
// directly with Key values — use the tuple and config packages.
package keycodec

import (
	"time"

	"github.com/tuplekv/keycodec/buffer"
	"github.com/tuplekv/keycodec/config"
	"github.com/tuplekv/keycodec/element"
	"github.com/tuplekv/keycodec/errs"
	"github.com/tuplekv/keycodec/internal/pool"
	"github.com/tuplekv/keycodec/tuple"
)

func pooledOffsets(n int) ([]int64, func()) {
	return pool.GetInt64Slice(n)
}

// maxDecodeOffsetsCount bounds DecodeOffsets's count even when the input
// slice is large enough to make the per-byte truncation check pass; no
// legitimate offset table plausibly describes more elements than this.
const maxDecodeOffsetsCount = 1 << 32

// NotMatched is the sentinel returned by Unpack, Unpacks, and
// tuple.FromRaw when a caller-supplied prefix does not match the start of
// the encoded bytes. It is an alias of errs.NotMatched so callers never
// need to import errs just to compare against it.
var NotMatched = errs.NotMatched

// Tuple is an ordered sequence of logical elements, the unit pack/unpack
// exchange with callers.
type Tuple = []element.Value

// Key is an opaque, immutable handle over a tuple's encoded bytes.
type Key = tuple.Key

// Codec packs and unpacks tuples under a fixed naive-timestamp policy. The
// zero Codec is ready to use and rejects naive timestamps; use NewCodec to
// change that.
type Codec struct {
	cfg config.Config
}

// NewCodec builds a Codec from the given options.
func NewCodec(opts ...config.Option) Codec {
	return Codec{cfg: config.New(opts...)}
}

// ResolveTimestamp turns a time.Time into the UTC instant and offset pair
// element.Timestamp needs.
//
// A time.Time located in time.UTC or a time.FixedZone already carries an
// explicit offset and is used as-is. A time.Time located in time.Local has
// no explicit offset attached — it is "naive" in the sense of spec's
// Open Question on timezone-naive timestamps — and is resolved according to
// the Codec's naive policy: c.cfg.NaivePolicy.
func (c Codec) ResolveTimestamp(t time.Time) (element.Value, error) {
	if t.Location() == time.Local {
		switch c.cfg.NaivePolicy {
		case config.NaiveAsUTC:
			utc := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
			return element.Timestamp(utc, 0), nil
		default:
			return element.Value{}, errs.ErrNaiveTimestamp
		}
	}

	_, offsetSecs := t.Zone()
	return element.Timestamp(t.UTC(), int32(offsetSecs)), nil
}

// PackTimestamp is the zero-config equivalent of Codec.ResolveTimestamp,
// using the default (reject-naive) policy.
func PackTimestamp(t time.Time) (element.Value, error) {
	var c Codec
	return c.ResolveTimestamp(t)
}

// KeyFromHex decodes a lowercase (or uppercase) hex string produced by
// Key.ToHex.
func KeyFromHex(s string) (Key, error) {
	return tuple.FromHex(s)
}

// FromTuple encodes t's elements in order and wraps the result as a Key.
func FromTuple(t Tuple) (Key, error) {
	return tuple.FromElements(t...)
}

// PackInt appends prefix followed by v's bare order-preserving varint
// encoding (no kind tag), matching the original's pack_int.
func PackInt(prefix []byte, v uint64) []byte {
	w := buffer.NewWriter()
	defer w.Release()

	w.PutBytes(prefix)
	element.AppendUvarint(w, v, 0x00)

	out := make([]byte, w.Len())
	copy(out, w.Finalize())
	return out
}

// Pack encodes value under prefix. value may be a Key, a single
// element.Value, a Tuple (single tuple), or a []Tuple (a list of tuples,
// SEP-separated).
func Pack(prefix []byte, value any) ([]byte, error) {
	w := buffer.NewWriter()
	defer w.Release()

	w.PutBytes(prefix)

	switch v := value.(type) {
	case Key:
		w.PutBytes(v.Bytes())

	case element.Value:
		if err := element.Append(w, v); err != nil {
			w.Abort()
			return nil, err
		}

	case Tuple:
		for _, el := range v {
			if err := element.Append(w, el); err != nil {
				w.Abort()
				return nil, err
			}
		}

	case []Tuple:
		for i, t := range v {
			if i > 0 {
				w.PutByte(byte(element.KindSep))
			}
			for _, el := range t {
				if err := element.Append(w, el); err != nil {
					w.Abort()
					return nil, err
				}
			}
		}

	default:
		return nil, errs.ErrUnsupportedType
	}

	out := make([]byte, w.Len())
	copy(out, w.Finalize())
	return out, nil
}

// Unpack strips prefix from encoded and decodes the elements up to the
// first SEP byte or end-of-input into a single Tuple. If encoded does not
// begin with prefix, it returns NotMatched.
func Unpack(prefix, encoded []byte) (Tuple, error) {
	rest, err := stripPrefix(prefix, encoded)
	if err != nil {
		return nil, err
	}

	r := buffer.NewReader(rest)
	var out Tuple
	for !r.Done() {
		b, err := r.PeekByte()
		if err != nil {
			return nil, err
		}
		if element.Kind(b) == element.KindSep {
			break
		}
		v, err := element.Decode(r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Unpacks strips prefix from encoded and decodes successive SEP-separated
// tuples until end-of-input. If encoded does not begin with prefix, it
// returns NotMatched. An encoded value with nothing left after the prefix
// decodes to zero tuples, not one empty tuple.
func Unpacks(prefix, encoded []byte) ([]Tuple, error) {
	rest, err := stripPrefix(prefix, encoded)
	if err != nil {
		return nil, err
	}

	r := buffer.NewReader(rest)
	var tuples []Tuple
	for !r.Done() {
		cur := Tuple{}
		for !r.Done() {
			b, err := r.PeekByte()
			if err != nil {
				return nil, err
			}
			if element.Kind(b) == element.KindSep {
				_, _ = r.GetByte()
				break
			}
			v, err := element.Decode(r)
			if err != nil {
				return nil, err
			}
			cur = append(cur, v)
		}
		tuples = append(tuples, cur)
	}
	return tuples, nil
}

func stripPrefix(prefix, encoded []byte) ([]byte, error) {
	if len(encoded) < len(prefix) {
		return nil, errs.NotMatched
	}
	for i := range prefix {
		if encoded[i] != prefix[i] {
			return nil, errs.NotMatched
		}
	}
	return encoded[len(prefix):], nil
}

// DecodeOffsets reads a varint count, then that many delta varints, and
// reconstructs the run of absolute offsets those deltas describe. It
// returns the offsets slice (length count+1, starting at 0) and the number
// of bytes consumed from b.
func DecodeOffsets(b []byte) ([]int64, int, error) {
	r := buffer.NewReader(b)

	count, err := element.ReadUvarint(r, 0x00)
	if err != nil {
		return nil, 0, err
	}

	// Reject implausible counts outright, before the cheaper truncation
	// check below even needs remaining-byte arithmetic.
	if count > maxDecodeOffsetsCount {
		return nil, 0, errs.ErrOutOfMemory
	}
	// Each delta varint consumes at least one byte, so a count exceeding the
	// bytes actually remaining can only be corrupt or hostile input; fail
	// fast rather than let it drive an allocation size.
	if count > uint64(r.Len()) {
		return nil, 0, errs.ErrTruncated
	}

	offsets, release := pooledOffsets(int(count) + 1)
	defer release()

	offsets[0] = 0
	running := int64(0)
	for i := 0; i < int(count); i++ {
		delta, err := element.ReadUvarint(r, 0x00)
		if err != nil {
			return nil, 0, err
		}
		running += int64(delta)
		offsets[i+1] = running
	}

	out := make([]int64, len(offsets))
	copy(out, offsets)
	return out, r.Pos(), nil
}

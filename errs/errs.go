// Package errs defines the sentinel errors returned by the tuple key codec.
//
// Callers should compare against these with errors.Is, since internal
// wrapping (fmt.Errorf("%w: ...")) adds positional context without changing
// the sentinel identity.
package errs

import "errors"

var (
	// ErrTruncated is returned when a reader runs out of bytes before an
	// element's encoding is complete.
	ErrTruncated = errors.New("keycodec: truncated input")

	// ErrMalformed is returned when bytes are present but do not form a
	// valid element encoding (e.g. a SEP byte where an element is expected,
	// or a BOOL payload byte other than 0x00 or 0x01).
	ErrMalformed = errors.New("keycodec: malformed element encoding")

	// ErrUnsupportedType is returned when a kind byte does not match any
	// known element kind.
	ErrUnsupportedType = errors.New("keycodec: unsupported element kind")

	// ErrTypeMismatch is returned when a decoded Value is asserted to a Go
	// type its kind does not hold.
	ErrTypeMismatch = errors.New("keycodec: value kind mismatch")

	// ErrOutOfMemory is returned when a requested allocation (e.g. a
	// DecodeOffsets count) is large enough to be almost certainly the
	// result of corrupt input rather than a legitimate payload.
	ErrOutOfMemory = errors.New("keycodec: allocation request too large")

	// ErrIndexOutOfRange is returned by Key.At for an index
	// outside [-Len, Len).
	ErrIndexOutOfRange = errors.New("keycodec: index out of range")

	// ErrNaiveTimestamp is returned when encoding a time.Time with no
	// zone offset information under the default (reject) naive-timestamp
	// policy. See config.WithNaiveAsUTC to opt into treating naive
	// timestamps as UTC instead.
	ErrNaiveTimestamp = errors.New("keycodec: naive timestamp rejected")
)

// NotMatched is returned by Unpack, Unpacks, and tuple.FromRaw when the
// caller-supplied prefix does not match the start of the encoded bytes.
//
// This is not a failure of the codec: it is the expected outcome of using
// pack/unpack as a range filter over a keyspace, the same way io.EOF signals
// an expected end-of-stream rather than a read failure. Callers that treat a
// non-matching prefix as fatal should compare with errors.Is(err,
// errs.NotMatched); callers using it as a filter can check it directly.
var NotMatched = errors.New("keycodec: prefix not matched")

package element

import (
	"time"

	"github.com/tuplekv/keycodec/buffer"
	"github.com/tuplekv/keycodec/errs"
)

// Value is the closed tagged union the codec encodes and decodes: one of
// Null, Int (negative or non-negative), Bool, Blob, Text, Timestamp, or
// Uuid. Host-language glue that accepts arbitrary dynamic values lives
// outside this package; Value is the only type element's encoder/decoder
// ever sees.
type Value struct {
	kind Kind

	i    int64  // Int
	b    bool   // Bool
	s    []byte // Blob, Text
	t    time.Time
	off  int32 // Timestamp's UTC offset, seconds
	uuid [16]byte
}

// Kind reports which alternative a Value holds.
func (v Value) Kind() Kind { return v.kind }

// Null returns a Value holding NULL.
func Null() Value { return Value{kind: KindNull} }

// Int returns a Value holding a signed integer, dispatched to INTEGER or
// NEG_INTEGER depending on sign.
func Int(i int64) Value {
	if i < 0 {
		return Value{kind: KindNegInteger, i: i}
	}
	return Value{kind: KindInteger, i: i}
}

// Bool returns a Value holding a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Blob returns a Value holding an opaque byte string.
func Blob(b []byte) Value { return Value{kind: KindBlob, s: b} }

// Text returns a Value holding UTF-8 text.
func Text(s string) Value { return Value{kind: KindText, s: []byte(s)} }

// Timestamp returns a Value holding a UTC instant plus its original zone
// offset in seconds.
func Timestamp(utc time.Time, offsetSecs int32) Value {
	kind := KindTime
	if PackTimestamp(utc, offsetSecs) < 0 {
		kind = KindNegTime
	}
	return Value{kind: kind, t: utc, off: offsetSecs}
}

// Uuid returns a Value holding a 16-byte UUID.
func Uuid(b [16]byte) Value { return Value{kind: KindUuid, uuid: b} }

// AsInt returns the held integer. It returns errs.ErrTypeMismatch if Kind is
// not INTEGER or NEG_INTEGER.
func (v Value) AsInt() (int64, error) {
	if v.kind != KindInteger && v.kind != KindNegInteger {
		return 0, errs.ErrTypeMismatch
	}
	return v.i, nil
}

// AsBool returns the held boolean.
func (v Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, errs.ErrTypeMismatch
	}
	return v.b, nil
}

// AsBytes returns the held BLOB or TEXT payload.
func (v Value) AsBytes() ([]byte, error) {
	if v.kind != KindBlob && v.kind != KindText {
		return nil, errs.ErrTypeMismatch
	}
	return v.s, nil
}

// AsText returns the held TEXT payload as a string.
func (v Value) AsText() (string, error) {
	if v.kind != KindText {
		return "", errs.ErrTypeMismatch
	}
	return string(v.s), nil
}

// AsTime returns the held timestamp and its original offset.
func (v Value) AsTime() (time.Time, int32, error) {
	if v.kind != KindTime && v.kind != KindNegTime {
		return time.Time{}, 0, errs.ErrTypeMismatch
	}
	return v.t, v.off, nil
}

// AsUuid returns the held UUID bytes.
func (v Value) AsUuid() ([16]byte, error) {
	if v.kind != KindUuid {
		return [16]byte{}, errs.ErrTypeMismatch
	}
	return v.uuid, nil
}

// Append encodes v onto w, writing its kind byte followed by its payload.
func Append(w *buffer.Writer, v Value) error {
	switch v.kind {
	case KindNull:
		w.PutByte(byte(KindNull))

	case KindInteger:
		w.PutByte(byte(KindInteger))
		AppendUvarint(w, uint64(v.i), 0x00)

	case KindNegInteger:
		w.PutByte(byte(KindNegInteger))
		AppendUvarint(w, uint64(-v.i), 0xFF)

	case KindBool:
		w.PutByte(byte(KindBool))
		if v.b {
			w.PutByte(0x01)
		} else {
			w.PutByte(0x00)
		}

	case KindBlob:
		w.PutByte(byte(KindBlob))
		AppendEscaped(w, v.s)

	case KindText:
		w.PutByte(byte(KindText))
		AppendEscaped(w, v.s)

	case KindTime, KindNegTime:
		AppendTime(w, v.t, v.off)

	case KindUuid:
		w.PutByte(byte(KindUuid))
		w.PutBytes(v.uuid[:])

	default:
		return errs.ErrUnsupportedType
	}
	return nil
}

// Decode reads one element from r, dispatching on its kind byte.
func Decode(r *buffer.Reader) (Value, error) {
	kindByte, err := r.GetByte()
	if err != nil {
		return Value{}, err
	}
	kind := Kind(kindByte)

	switch kind {
	case KindNull:
		return Null(), nil

	case KindInteger:
		u, err := ReadUvarint(r, 0x00)
		if err != nil {
			return Value{}, err
		}
		return Int(int64(u)), nil

	case KindNegInteger:
		u, err := ReadUvarint(r, 0xFF)
		if err != nil {
			return Value{}, err
		}
		return Int(-int64(u)), nil

	case KindBool:
		b, err := r.GetByte()
		if err != nil {
			return Value{}, err
		}
		if b != 0x00 && b != 0x01 {
			return Value{}, errs.ErrMalformed
		}
		return Bool(b == 0x01), nil

	case KindBlob:
		b, err := ReadEscaped(r)
		if err != nil {
			return Value{}, err
		}
		return Blob(b), nil

	case KindText:
		b, err := ReadEscaped(r)
		if err != nil {
			return Value{}, err
		}
		return Value{kind: KindText, s: b}, nil

	case KindTime, KindNegTime:
		t, err := ReadTime(r, kind)
		if err != nil {
			return Value{}, err
		}
		_, offset := t.Zone()
		return Value{kind: kind, t: t, off: int32(offset)}, nil

	case KindUuid:
		raw, err := r.Take(16)
		if err != nil {
			return Value{}, err
		}
		var u [16]byte
		copy(u[:], raw)
		return Uuid(u), nil

	case KindSep:
		return Value{}, errs.ErrMalformed

	default:
		return Value{}, errs.ErrUnsupportedType
	}
}

// Skip advances r past one element without materialising it.
func Skip(r *buffer.Reader) error {
	kindByte, err := r.GetByte()
	if err != nil {
		return err
	}
	kind := Kind(kindByte)

	switch kind {
	case KindNull:
		return nil

	case KindInteger:
		_, err := ReadUvarint(r, 0x00)
		return err

	case KindNegInteger:
		_, err := ReadUvarint(r, 0xFF)
		return err

	case KindBool:
		return r.Skip(1)

	case KindBlob, KindText:
		_, err := ReadEscaped(r)
		return err

	case KindTime:
		_, err := ReadUvarint(r, 0x00)
		return err

	case KindNegTime:
		_, err := ReadUvarint(r, 0xFF)
		return err

	case KindUuid:
		return r.Skip(16)

	case KindSep:
		return errs.ErrMalformed

	default:
		return errs.ErrUnsupportedType
	}
}

package element

import (
	"time"

	"github.com/tuplekv/keycodec/buffer"
	"github.com/tuplekv/keycodec/errs"
)

// UTCOffsetShift and UTCOffsetDiv pack a UTC offset into 7 bits. Real-world
// offsets range from -12:00 to +14:00 in 15-minute steps; dividing by
// UTCOffsetDiv and adding UTCOffsetShift keeps every representable offset in
// [0, 127].
const (
	UTCOffsetShift = 64
	UTCOffsetDiv   = 900 // 15 minutes, in seconds
)

// PackTimestamp combines a UTC instant (truncated to millisecond precision)
// and a UTC offset into the single signed integer the wire format encodes.
// offsetSecs is rounded to the nearest UTCOffsetDiv bucket.
func PackTimestamp(utc time.Time, offsetSecs int32) int64 {
	ms := utc.Unix()*1000 + int64(utc.Nanosecond())/int64(time.Millisecond)
	return ms*128 + int64(offsetComponent(offsetSecs))
}

func offsetComponent(offsetSecs int32) int {
	bucket := int(offsetSecs) / UTCOffsetDiv
	if rem := int(offsetSecs) % UTCOffsetDiv; rem != 0 {
		// Round to nearest bucket rather than always truncating toward
		// zero, so offsets that don't land exactly on a 15-minute
		// boundary still decode to the closest one.
		if (rem > 0 && rem*2 >= UTCOffsetDiv) || (rem < 0 && rem*2 <= -UTCOffsetDiv) {
			if rem > 0 {
				bucket++
			} else {
				bucket--
			}
		}
	}
	return UTCOffsetShift + bucket
}

// UnpackTimestamp reverses PackTimestamp, returning the millisecond epoch
// time and the UTC offset in seconds.
func UnpackTimestamp(packed int64) (millis int64, offsetSecs int32) {
	component := ((packed % 128) + 128) % 128
	millis = (packed - component) / 128
	offsetSecs = int32((component - UTCOffsetShift) * UTCOffsetDiv)
	return millis, offsetSecs
}

// AppendTime writes a timestamp element: utc must already be the true UTC
// instant (any zone adjustment resolved by the caller), offsetSecs is
// carried through so the decoded value can be reconstructed in its original
// zone.
func AppendTime(w *buffer.Writer, utc time.Time, offsetSecs int32) {
	packed := PackTimestamp(utc, offsetSecs)
	if packed < 0 {
		w.PutByte(byte(KindNegTime))
		AppendUvarint(w, uint64(-packed), 0xFF)
	} else {
		w.PutByte(byte(KindTime))
		AppendUvarint(w, uint64(packed), 0x00)
	}
}

// ReadTime decodes a timestamp payload given its kind byte (KindTime or
// KindNegTime already consumed by the caller), returning a time.Time fixed
// to the zone it was encoded with. Sub-millisecond precision is not
// recoverable.
func ReadTime(r *buffer.Reader, kind Kind) (time.Time, error) {
	var xor byte
	var negate bool
	switch kind {
	case KindTime:
		xor = 0x00
	case KindNegTime:
		xor = 0xFF
		negate = true
	default:
		return time.Time{}, errs.ErrMalformed
	}

	magnitude, err := ReadUvarint(r, xor)
	if err != nil {
		return time.Time{}, err
	}

	packed := int64(magnitude)
	if negate {
		packed = -packed
	}

	millis, offsetSecs := UnpackTimestamp(packed)
	loc := time.FixedZone("", int(offsetSecs))
	return time.UnixMilli(millis).In(loc), nil
}

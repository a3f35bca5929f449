// Package endian provides the byte-order engine used to write the
// multi-byte payloads of the tuple key wire format.
//
// This package extends Go's standard encoding/binary package by combining
// ByteOrder and AppendByteOrder interfaces into a unified EndianEngine
// interface, enabling direct-append writes without an intermediate scratch
// buffer.
//
// # Why big-endian only
//
// The tuple key codec's order-preserving varint and packed-timestamp
// payloads (see package element) must be written most-significant-byte
// first: lexicographic byte comparison of the encoding has to equal numeric
// comparison of the value, which only holds for big-endian layout. This
// package therefore exposes a single engine constructor, GetBigEndianEngine,
// rather than mebo's original little/big-endian choice.
//
//	import "github.com/tuplekv/keycodec/endian"
//
//	engine := endian.GetBigEndianEngine()
//	buf = engine.AppendUint64(buf, value)
//
// # Thread Safety
//
// The returned EndianEngine is immutable and stateless, safe for concurrent
// use.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.BigEndian from the standard library.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetBigEndianEngine returns the big-endian engine mandated by the tuple
// key wire format.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given byte sequence.
//
// Key bytes are never materialized as a Go string (doing so would force a
// copy just to hash them), so this takes []byte directly rather than
// mirroring xxhash.Sum64String.
func ID(data []byte) uint64 {
	return xxhash.Sum64(data)
}

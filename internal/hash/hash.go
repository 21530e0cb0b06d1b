// Package hash computes the xxHash64 digests used to checksum snapshot
// payloads and fingerprint flattened container views.
package hash

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Checksum computes the xxHash64 of data.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Fingerprint computes the xxHash64 of words laid out as little-endian bytes.
//
// Fingerprint(words) equals Checksum of the same words encoded little-endian,
// so a raw-word snapshot payload and the store it came from hash alike.
func Fingerprint(words []uint64) uint64 {
	d := xxhash.New()
	var buf [8]byte
	for _, w := range words {
		binary.LittleEndian.PutUint64(buf[:], w)
		_, _ = d.Write(buf[:])
	}

	return d.Sum64()
}

// FingerprintString computes the xxHash64 of s.
func FingerprintString(s string) uint64 {
	return xxhash.Sum64String(s)
}

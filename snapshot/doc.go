// Package snapshot exports the flattened view of a container as a
// self-describing byte blob, and rebuilds a container from one.
//
// A snapshot is not a persistent store. It is a transfer and debugging format:
// no files, no durability, just bytes. Decoding always yields a container whose
// slots are all Value slots, one per element of the encoded view, so segment
// boundaries, handles and dead space are not preserved.
//
// # Blob Layout
//
// Every blob starts with a fixed 32-byte header followed by the payload:
//
//	offset  size  field
//	0       2     options: magic number (bits 4-15) and endianness (bit 1), always little-endian
//	2       1     payload encoding (format.EncodingType)
//	3       1     payload compression (format.CompressionType)
//	4       1     element kind (format.ElementKind)
//	5       3     reserved, zero
//	8       8     element count
//	16      8     uncompressed payload length
//	24      8     xxHash64 of the uncompressed payload
//	32      ...   payload, compressed as recorded in the header
//
// Stores use the raw encoding: one 64-bit normalized word per element, in the
// byte order recorded in the header. Generic sequences use MessagePack: the
// flattened view encoded as a single array.
//
// # Usage
//
//	blob, err := snapshot.EncodeStore(store, snapshot.WithCompression(format.CompressionS2))
//	if err != nil {
//	    return err
//	}
//	restored, err := snapshot.DecodeStore(blob)
//
//	blob, err = snapshot.EncodeSequence(seq)
//	names, err := snapshot.DecodeSequence[string](blob)
//
// Inspect reads the header and compression statistics without decoding the payload.
package snapshot

// Package compress provides the compression codecs applied to snapshot payloads.
//
// A snapshot payload is the flattened view of a container, encoded either as
// raw 64-bit words or as a MessagePack array. Compression is the second stage
// after encoding and is selected per snapshot with a format.CompressionType:
//   - None: no compression, the payload is stored as encoded
//   - Zstd: best ratio, moderate speed
//   - S2: balanced ratio and speed
//   - LZ4: fastest decompression
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress(payload)
//	original, err := codec.Decompress(packed)
//
// # Zstd Backends
//
// Zstd uses the pure Go klauspost/compress implementation by default. Building
// with both cgo and the gozstd tag switches to valyala/gozstd:
//
//	go build -tags gozstd ./...
//
// Both backends produce standard Zstandard frames and decode each other's output.
//
// # Thread Safety
//
// Every codec in this package is stateless and safe for concurrent use.
// Internal encoders and decoders are pooled.
package compress

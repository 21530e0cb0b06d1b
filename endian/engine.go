// Package endian provides the byte order used by segseq snapshots.
//
// A snapshot stores its header and raw payload words in one byte order, chosen
// at encode time and recorded in the header flags. EndianEngine combines the
// ByteOrder and AppendByteOrder interfaces of encoding/binary so a single value
// can both decode fixed-width fields and append them to a growing buffer.
//
// # Basic Usage
//
// Little-endian is the default for snapshots:
//
//	engine := endian.GetLittleEndianEngine()
//	buf = endian.AppendWords(engine, buf, words)
//
// Decoding picks the engine recorded by the writer:
//
//	engine := endian.EngineFor(header.BigEndian())
//	err := endian.DecodeWords(engine, dst, payload)
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use.
// The returned EndianEngine values are immutable and stateless.
package endian

import (
	"encoding/binary"
	"fmt"
	"unsafe"

	"github.com/arloliu/segseq/errs"
)

// WordSize is the encoded size of one payload word.
const WordSize = 8

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
//
// binary.LittleEndian and binary.BigEndian both satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness reports the host byte order.
func CheckEndianness() binary.ByteOrder {
	// 0x0100 stores 0x01 first only on big-endian hosts.
	var i uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&i))

	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNativeLittleEndian reports whether the host is little-endian.
func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

// IsNativeBigEndian reports whether the host is big-endian.
func IsNativeBigEndian() bool {
	return CheckEndianness() == binary.BigEndian
}

// CompareNativeEndian reports whether engine matches the host byte order.
func CompareNativeEndian(engine EndianEngine) bool {
	return engine == CheckEndianness()
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// EngineFor returns the big-endian engine when bigEndian is set,
// and the little-endian engine otherwise.
func EngineFor(bigEndian bool) EndianEngine {
	if bigEndian {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsBigEndian reports whether engine writes the most significant byte first.
func IsBigEndian(engine EndianEngine) bool {
	return engine == binary.BigEndian
}

// AppendWords appends every word to dst in the engine's byte order.
//
// Parameters:
//   - engine: Byte order to write with
//   - dst: Buffer to append to, may be nil
//   - words: Words to encode
//
// Returns:
//   - []byte: The extended buffer, len(dst) + len(words)*WordSize bytes long
func AppendWords(engine EndianEngine, dst []byte, words []uint64) []byte {
	if free := cap(dst) - len(dst); free < len(words)*WordSize {
		grown := make([]byte, len(dst), len(dst)+len(words)*WordSize)
		copy(grown, dst)
		dst = grown
	}
	for _, w := range words {
		dst = engine.AppendUint64(dst, w)
	}

	return dst
}

// DecodeWords decodes src into dst, one word per WordSize bytes.
//
// Parameters:
//   - engine: Byte order the payload was written with
//   - dst: Destination, must hold exactly len(src)/WordSize words
//   - src: Encoded payload
//
// Returns:
//   - error: ErrInvalidPayload if src is not word aligned or dst has the wrong length
func DecodeWords(engine EndianEngine, dst []uint64, src []byte) error {
	if len(src)%WordSize != 0 {
		return fmt.Errorf("%w: payload length %d is not a multiple of %d", errs.ErrInvalidPayload, len(src), WordSize)
	}
	if len(dst) != len(src)/WordSize {
		return fmt.Errorf("%w: payload holds %d words, destination %d", errs.ErrInvalidPayload, len(src)/WordSize, len(dst))
	}
	for i := range dst {
		dst[i] = engine.Uint64(src[i*WordSize:])
	}

	return nil
}

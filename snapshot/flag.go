package snapshot

import (
	"fmt"

	"github.com/arloliu/segseq/endian"
	"github.com/arloliu/segseq/errs"
	"github.com/arloliu/segseq/format"
)

// Flag is the packed descriptor at the start of a snapshot header.
type Flag struct {
	// Options packs the magic number and the endianness bit.
	// Bit 1 is the endianness flag, 0 means little-endian, 1 means big-endian.
	// Bits 0, 2 and 3 are reserved and must be 0.
	// Bits 4-15 are the magic number identifying the payload layout.
	Options uint16

	// Encoding is the payload encoding.
	Encoding format.EncodingType
	// Compression is the payload compression.
	Compression format.CompressionType
	// Kind is the element kind of the encoded view.
	Kind format.ElementKind
}

// newStoreFlag returns the flag of a raw-word store snapshot.
func newStoreFlag(kind format.ElementKind, compression format.CompressionType) Flag {
	return Flag{
		Options:     MagicStoreV1,
		Encoding:    format.TypeRaw,
		Compression: compression,
		Kind:        kind,
	}
}

// newSequenceFlag returns the flag of a MessagePack sequence snapshot.
func newSequenceFlag(compression format.CompressionType) Flag {
	return Flag{
		Options:     MagicSequenceV1,
		Encoding:    format.TypeMsgpack,
		Compression: compression,
		Kind:        format.KindAny,
	}
}

// IsBigEndian returns whether the header and raw payload are big-endian.
func (f Flag) IsBigEndian() bool {
	return (f.Options & EndiannessMask) != 0
}

// WithBigEndian sets big-endian byte order.
func (f *Flag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// WithLittleEndian sets little-endian byte order.
func (f *Flag) WithLittleEndian() {
	f.Options &^= EndiannessMask
}

// GetMagicNumber returns the magic number from the Options field.
func (f Flag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// GetEndianEngine returns the endian engine recorded in the flag.
func (f Flag) GetEndianEngine() endian.EndianEngine {
	return endian.EngineFor(f.IsBigEndian())
}

// Validate checks that the flag describes a layout this package can decode.
//
// Returns:
//   - error: ErrInvalidMagicNumber for an unknown magic number, or
//     ErrInvalidHeaderFlags for reserved bits or an encoding, compression or
//     kind that does not fit the magic number
func (f Flag) Validate() error {
	if f.Options&ReservedBitsMask != 0 {
		return fmt.Errorf("%w: reserved option bits %#04x", errs.ErrInvalidHeaderFlags, f.Options&ReservedBitsMask)
	}

	switch f.GetMagicNumber() {
	case MagicStoreV1:
		if f.Encoding != format.TypeRaw {
			return fmt.Errorf("%w: store snapshot with %s encoding", errs.ErrInvalidHeaderFlags, f.Encoding)
		}
		if !f.Kind.Integer() {
			return fmt.Errorf("%w: store snapshot with element kind %s", errs.ErrInvalidHeaderFlags, f.Kind)
		}
	case MagicSequenceV1:
		if f.Encoding != format.TypeMsgpack {
			return fmt.Errorf("%w: sequence snapshot with %s encoding", errs.ErrInvalidHeaderFlags, f.Encoding)
		}
		if f.Kind != format.KindAny {
			return fmt.Errorf("%w: sequence snapshot with element kind %s", errs.ErrInvalidHeaderFlags, f.Kind)
		}
	default:
		return fmt.Errorf("%w: %#04x", errs.ErrInvalidMagicNumber, f.GetMagicNumber())
	}

	switch f.Compression {
	case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
		return nil
	default:
		return fmt.Errorf("%w: compression %s", errs.ErrInvalidHeaderFlags, f.Compression)
	}
}

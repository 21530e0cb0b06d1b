package bitbuf

import "math"

// Width names the integer type a bit field is decoded into.
type Width uint8

const (
	Uint8  Width = 0x1 // Uint8 decodes into an unsigned 8-bit integer.
	Uint16 Width = 0x2 // Uint16 decodes into an unsigned 16-bit integer.
	Uint32 Width = 0x3 // Uint32 decodes into an unsigned 32-bit integer.
	Uint64 Width = 0x4 // Uint64 decodes into an unsigned 64-bit integer.
	Int8   Width = 0x5 // Int8 decodes into a signed 8-bit integer.
	Int16  Width = 0x6 // Int16 decodes into a signed 16-bit integer.
	Int32  Width = 0x7 // Int32 decodes into a signed 32-bit integer.
	Int64  Width = 0x8 // Int64 decodes into a signed 64-bit integer.
)

// Bits returns the number of bits of the width, or 0 for an unknown width.
func (w Width) Bits() int {
	switch w {
	case Uint8, Int8:
		return 8
	case Uint16, Int16:
		return 16
	case Uint32, Int32:
		return 32
	case Uint64, Int64:
		return 64
	default:
		return 0
	}
}

// Signed reports whether the width decodes two's complement values.
func (w Width) Signed() bool {
	return w >= Int8 && w <= Int64
}

// Valid reports whether w is one of the defined widths.
func (w Width) Valid() bool {
	return w.Bits() != 0
}

func (w Width) String() string {
	switch w {
	case Uint8:
		return "u8"
	case Uint16:
		return "u16"
	case Uint32:
		return "u32"
	case Uint64:
		return "u64"
	case Int8:
		return "i8"
	case Int16:
		return "i16"
	case Int32:
		return "i32"
	case Int64:
		return "i64"
	default:
		return "Unknown"
	}
}

// maxUnsigned returns the largest unsigned value representable by w.
func (w Width) maxUnsigned() uint64 {
	if w.Bits() == 64 {
		return math.MaxUint64
	}

	return 1<<uint(w.Bits()) - 1
}

// signedRange returns the inclusive bounds of a signed width.
func (w Width) signedRange() (int64, int64) {
	if w.Bits() == 64 {
		return math.MinInt64, math.MaxInt64
	}
	half := int64(1) << uint(w.Bits()-1)

	return -half, half - 1
}

// Field is a decoded bit field together with the width it was decoded into.
type Field struct {
	bits  uint64
	width Width
}

// Width returns the width the field was decoded into.
func (f Field) Width() Width {
	return f.width
}

// Uint64 returns the field value widened to uint64.
//
// For signed widths the two's complement bit pattern of the sign-extended
// value is returned.
func (f Field) Uint64() uint64 {
	return f.bits
}

// Int64 returns the field value widened to int64.
//
// Unsigned values above math.MaxInt64 wrap around.
func (f Field) Int64() int64 {
	return int64(f.bits) //nolint:gosec // documented wrap-around
}

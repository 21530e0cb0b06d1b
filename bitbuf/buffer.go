// Package bitbuf provides a byte-backed, bit-addressable buffer with an append cursor.
//
// Bits are addressed MSB-first within each byte: bit position p lives in byte
// p/8 at bit 7-p%8. Multi-bit fields are written and read most significant bit
// first, so a field written at offset 0 reads back left to right exactly as it
// would be printed in binary.
//
// # Cursor Semantics
//
// The buffer keeps a cursor that append-mode writes use as their position.
// WriteBit always advances the cursor by one, including writes at an explicit
// offset, so after an absolute write the cursor tracks "bits touched" rather
// than "next free position". WriteBits resets the cursor to the end of the
// written field once it completes.
//
// # Signed Fields
//
// ReadBits decodes signed widths as two's complement of the field length: an
// 8-bit field 0b10110001 decodes to 177 as Uint8 and to -79 as Int8 or Int16.
//
// A Buffer is not safe for concurrent use.
package bitbuf

import (
	"fmt"
	"strings"

	"github.com/arloliu/segseq/errs"
)

// MaxFieldBits is the widest field WriteBits and ReadBits handle.
const MaxFieldBits = 64

// Buffer is a bit-addressable storage region backed by a byte slice.
type Buffer struct {
	data   []byte
	cursor uint64
}

// New creates a zero-filled Buffer with a capacity of byteSize*8 bits.
//
// Parameters:
//   - byteSize: Number of backing bytes
//
// Returns:
//   - *Buffer: New buffer with the cursor at position 0
func New(byteSize int) *Buffer {
	if byteSize < 0 {
		byteSize = 0
	}

	return &Buffer{data: make([]byte, byteSize)}
}

// Cap returns the capacity of the buffer in bits.
func (b *Buffer) Cap() uint64 {
	return uint64(len(b.data)) * 8
}

// Cursor returns the current append cursor.
func (b *Buffer) Cursor() uint64 {
	return b.cursor
}

// Bytes returns the backing byte slice.
//
// The returned slice is valid until the next ExtendBy call.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Reset zeroes every bit and moves the cursor back to 0, keeping the capacity.
func (b *Buffer) Reset() {
	clear(b.data)
	b.cursor = 0
}

// ReadBit returns the bit (0 or 1) at the absolute position pos.
//
// Returns:
//   - uint8: The bit value
//   - error: ErrOutOfRange if pos is not inside the buffer
func (b *Buffer) ReadBit(pos uint64) (uint8, error) {
	if pos >= b.Cap() {
		return 0, fmt.Errorf("%w: read bit %d, capacity %d", errs.ErrOutOfRange, pos, b.Cap())
	}

	return b.bit(pos), nil
}

// WriteBit sets (bit != 0) or clears (bit == 0) a single bit.
//
// In append mode the bit is written at the cursor and pos is ignored.
// The cursor advances by exactly one on every successful write.
//
// Parameters:
//   - pos: Absolute bit position, ignored in append mode
//   - bit: 0 clears the bit, any other value sets it
//   - appendMode: Write at the cursor instead of pos
//
// Returns:
//   - error: ErrOutOfRange if the resolved position is not inside the buffer
func (b *Buffer) WriteBit(pos uint64, bit uint8, appendMode bool) error {
	if appendMode {
		pos = b.cursor
	}
	if pos >= b.Cap() {
		return fmt.Errorf("%w: write bit %d, capacity %d", errs.ErrOutOfRange, pos, b.Cap())
	}

	b.setBit(pos, bit)
	b.cursor++

	return nil
}

// WriteBits writes the low bitCount bits of value, most significant bit first.
//
// The field starts at the cursor in append mode, or at pos otherwise. The whole
// range is validated before any bit is written, so a failed call leaves the
// buffer untouched. On success the cursor is set to start+bitCount.
//
// Parameters:
//   - pos: Absolute start position, ignored in append mode
//   - value: Source of the bits; only the low bitCount bits are used
//   - bitCount: Field width, 1 to 64
//   - appendMode: Start at the cursor instead of pos
//
// Returns:
//   - error: ErrInvalidBitCount or ErrOutOfRange
func (b *Buffer) WriteBits(pos uint64, value uint64, bitCount int, appendMode bool) error {
	if bitCount <= 0 || bitCount > MaxFieldBits {
		return fmt.Errorf("%w: %d", errs.ErrInvalidBitCount, bitCount)
	}

	start := pos
	if appendMode {
		start = b.cursor
	}
	end := start + uint64(bitCount)
	if end < start || end > b.Cap() {
		return fmt.Errorf("%w: write bits [%d, %d), capacity %d", errs.ErrOutOfRange, start, end, b.Cap())
	}

	for i := range bitCount {
		bit := uint8((value >> uint(bitCount-1-i)) & 1)
		if err := b.WriteBit(start+uint64(i), bit, false); err != nil {
			return err
		}
	}
	b.cursor = end

	return nil
}

// ReadBits decodes the bits in [from, until) into the integer width w.
//
// If useCursor is true, from is replaced by the current cursor. Unsigned widths
// decode the bits as a base-2 numeral; signed widths decode them as a two's
// complement number of until-from bits.
//
// Parameters:
//   - from: First bit position (inclusive), ignored when useCursor is true
//   - until: Last bit position (exclusive)
//   - useCursor: Start reading at the cursor
//   - w: Target integer width
//
// Returns:
//   - Field: The decoded value
//   - error: ErrOutOfRange, ErrInvalidBitCount or ErrParseOverflow
func (b *Buffer) ReadBits(from, until uint64, useCursor bool, w Width) (Field, error) {
	if !w.Valid() {
		return Field{}, fmt.Errorf("%w: unknown width %d", errs.ErrInvalidBitCount, w)
	}
	if useCursor {
		from = b.cursor
	}
	if until < from || until > b.Cap() {
		return Field{}, fmt.Errorf("%w: read bits [%d, %d), capacity %d", errs.ErrOutOfRange, from, until, b.Cap())
	}
	n := until - from
	if n == 0 || n > MaxFieldBits {
		return Field{}, fmt.Errorf("%w: %d", errs.ErrInvalidBitCount, n)
	}

	var raw uint64
	for pos := from; pos < until; pos++ {
		raw = raw<<1 | uint64(b.bit(pos))
	}

	return decode(raw, int(n), w)
}

// ExtendBy grows the buffer by n zero-filled bytes. The cursor is unchanged.
func (b *Buffer) ExtendBy(n int) {
	if n <= 0 {
		return
	}
	b.data = append(b.data, make([]byte, n)...)
}

// String renders every bit of the buffer as a list, e.g. "[1 0 1 1 0 0 0 1]".
func (b *Buffer) String() string {
	var sb strings.Builder
	sb.Grow(len(b.data)*16 + 2)
	sb.WriteByte('[')
	for pos := range b.Cap() {
		if pos > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte('0' + b.bit(pos))
	}
	sb.WriteByte(']')

	return sb.String()
}

// FormatRows renders the buffer as one line of eight binary digits per byte.
func (b *Buffer) FormatRows() string {
	var sb strings.Builder
	sb.Grow(len(b.data) * 9)
	for _, v := range b.data {
		fmt.Fprintf(&sb, "%08b\n", v)
	}

	return sb.String()
}

func (b *Buffer) bit(pos uint64) uint8 {
	return (b.data[pos/8] >> (7 - pos%8)) & 1
}

func (b *Buffer) setBit(pos uint64, bit uint8) {
	mask := byte(1) << (7 - pos%8)
	if bit != 0 {
		b.data[pos/8] |= mask
	} else {
		b.data[pos/8] &^= mask
	}
}

// decode interprets the low n bits of raw as a value of width w.
func decode(raw uint64, n int, w Width) (Field, error) {
	if !w.Signed() {
		if raw > w.maxUnsigned() {
			return Field{}, fmt.Errorf("%w: %d does not fit %s", errs.ErrParseOverflow, raw, w)
		}

		return Field{bits: raw, width: w}, nil
	}

	v := int64(raw) //nolint:gosec // reinterpretation is the two's complement decode for n == 64
	if n < MaxFieldBits && raw&(1<<uint(n-1)) != 0 {
		v = int64(raw) - int64(1)<<uint(n) //nolint:gosec // raw < 1<<n here
	}
	lo, hi := w.signedRange()
	if v < lo || v > hi {
		return Field{}, fmt.Errorf("%w: %d does not fit %s", errs.ErrParseOverflow, v, w)
	}

	return Field{bits: uint64(v), width: w}, nil //nolint:gosec // two's complement bit pattern
}

package snapshot

import (
	"fmt"

	"github.com/arloliu/segseq/errs"
	"github.com/arloliu/segseq/format"
)

// Header is the fixed-size header at the start of every snapshot.
type Header struct {
	// Flag identifies the payload layout. byte offset 0-4
	Flag Flag
	// Count is the number of elements in the encoded view. byte offset 8-15
	Count uint64
	// PayloadLength is the payload size before compression. byte offset 16-23
	PayloadLength uint64
	// Checksum is the xxHash64 of the uncompressed payload. byte offset 24-31
	Checksum uint64
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the header (must be exactly 32 bytes)
//
// Returns:
//   - error: ErrInvalidHeaderSize if data is not 32 bytes, or flag validation errors
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return fmt.Errorf("%w: got %d bytes, want %d", errs.ErrInvalidHeaderSize, len(data), HeaderSize)
	}

	// The options field is always little-endian; it selects the engine for the rest.
	h.Flag.Options = uint16(data[0]) | (uint16(data[1]) << 8)
	h.Flag.Encoding = format.EncodingType(data[2])
	h.Flag.Compression = format.CompressionType(data[3])
	h.Flag.Kind = format.ElementKind(data[4])
	if data[5]|data[6]|data[7] != 0 {
		return fmt.Errorf("%w: reserved header bytes are not zero", errs.ErrInvalidHeaderFlags)
	}

	engine := h.Flag.GetEndianEngine()
	h.Count = engine.Uint64(data[8:16])
	h.PayloadLength = engine.Uint64(data[16:24])
	h.Checksum = engine.Uint64(data[24:32])

	return h.Flag.Validate()
}

// AppendTo appends the serialized header to dst.
func (h *Header) AppendTo(dst []byte) []byte {
	engine := h.Flag.GetEndianEngine()

	dst = append(dst,
		byte(h.Flag.Options), byte(h.Flag.Options>>8),
		byte(h.Flag.Encoding),
		byte(h.Flag.Compression),
		byte(h.Flag.Kind),
		0, 0, 0,
	)
	dst = engine.AppendUint64(dst, h.Count)
	dst = engine.AppendUint64(dst, h.PayloadLength)
	dst = engine.AppendUint64(dst, h.Checksum)

	return dst
}

// Bytes serializes the header into a new 32-byte slice.
func (h *Header) Bytes() []byte {
	return h.AppendTo(make([]byte, 0, HeaderSize))
}

// ParseHeader parses a Header from the start of a snapshot.
//
// Parameters:
//   - data: Snapshot bytes (must be at least 32 bytes)
//
// Returns:
//   - Header: Parsed header
//   - error: ErrInvalidHeaderSize or flag validation errors
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: got %d bytes, want at least %d", errs.ErrInvalidHeaderSize, len(data), HeaderSize)
	}

	h := Header{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}

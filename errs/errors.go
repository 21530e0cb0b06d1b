// Package errs defines the sentinel errors shared by all segseq packages.
//
// Errors returned by segseq are either one of these sentinels or wrap one of
// them with additional context, so callers should test with errors.Is:
//
//	if _, err := seq.Read(i); errors.Is(err, errs.ErrOutOfBounds) {
//	    // handle
//	}
package errs

import (
	"errors"
	"fmt"
)

// Index and bit addressing errors.
var (
	// ErrOutOfBounds is returned when a logical index or slot index is past the end of a container.
	ErrOutOfBounds = errors.New("index out of bounds")
	// ErrOutOfRange is returned when a bit position or bit range is beyond the buffer capacity.
	ErrOutOfRange = errors.New("bit position out of range")
	// ErrInvalidBitCount is returned when a bit field width is zero or wider than 64 bits.
	ErrInvalidBitCount = errors.New("invalid bit count")
	// ErrParseOverflow is returned when a decoded bit field does not fit the requested integer width.
	ErrParseOverflow = errors.New("bit field overflows requested width")
)

// Slot and ownership errors.
var (
	// ErrSlotState is returned when an operation requires a slot in another state.
	ErrSlotState = errors.New("slot is in the wrong state")
	// ErrVacantSlot is returned when reading or writing a logical index whose slot is empty.
	ErrVacantSlot = fmt.Errorf("%w: slot is vacant", ErrSlotState)
	// ErrDeadSpace is returned when a logical index falls into length reserved by a removed segment.
	ErrDeadSpace = errors.New("logical index is in dead space")
	// ErrNotFound is returned when a segment handle has no ownership entry.
	ErrNotFound = errors.New("segment not found")
	// ErrDuplicateHandle is returned when a handle is registered twice.
	ErrDuplicateHandle = errors.New("segment handle already registered")
	// ErrNestedSegment is returned when segment contents would reference other segments.
	ErrNestedSegment = errors.New("nested segment references are not supported")
	// ErrNilSegment is returned when a nil segment is appended.
	ErrNilSegment = errors.New("segment is nil")
	// ErrSegmentAdopted is returned when a wrapped segment is appended more than once.
	ErrSegmentAdopted = errors.New("segment already adopted by a container")
	// ErrInvalidSelector is returned when a removal selector names neither a slot nor a handle.
	ErrInvalidSelector = errors.New("invalid segment selector")
	// ErrClosed is returned by every operation on a container after Close.
	ErrClosed = errors.New("container is closed")
	// ErrInvariant reports tag or ownership desynchronization. It indicates a bug, not bad input.
	ErrInvariant = errors.New("internal invariant violated")
)

// Primitive store errors.
var (
	// ErrConfigMismatch is returned when a value's width or signedness differs from the store kind.
	ErrConfigMismatch = errors.New("element kind does not match store configuration")
	// ErrInvalidOption is returned when a configuration option rejects its value.
	ErrInvalidOption = errors.New("invalid option")
	// ErrInvalidKind is returned when a store is configured with an unknown element kind.
	ErrInvalidKind = errors.New("invalid element kind")
)

// Snapshot errors.
var (
	// ErrInvalidHeaderSize is returned when snapshot data is shorter than the fixed header.
	ErrInvalidHeaderSize = errors.New("invalid snapshot header size")
	// ErrInvalidMagicNumber is returned when snapshot data does not start with the snapshot magic.
	ErrInvalidMagicNumber = errors.New("invalid snapshot magic number")
	// ErrInvalidHeaderFlags is returned when the snapshot header carries unknown encodings.
	ErrInvalidHeaderFlags = errors.New("invalid snapshot header flags")
	// ErrChecksumMismatch is returned when the decoded payload checksum does not match the header.
	ErrChecksumMismatch = errors.New("snapshot checksum mismatch")
	// ErrInvalidPayload is returned when the snapshot payload cannot be decoded.
	ErrInvalidPayload = errors.New("invalid snapshot payload")
)

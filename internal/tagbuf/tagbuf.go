// Package tagbuf records a 2-bit slot kind per physical slot in a bit buffer.
//
// It is the discriminant for slot arrays that store raw words without one:
// tag i must always equal the kind of slot i, and every slot mutation writes
// its tag in the same operation.
package tagbuf

import (
	"fmt"

	"github.com/arloliu/segseq/bitbuf"
	"github.com/arloliu/segseq/errs"
	"github.com/arloliu/segseq/format"
)

const (
	tagBits     = 2
	minGrowByte = 8
)

// Buffer is a growable array of 2-bit slot tags.
type Buffer struct {
	bits *bitbuf.Buffer
	n    int
}

// New creates a tag buffer with room for capacity tags before it grows.
func New(capacity int) *Buffer {
	return &Buffer{bits: bitbuf.New(bytesFor(capacity))}
}

// Len returns the number of tags.
func (t *Buffer) Len() int {
	return t.n
}

// Append adds a tag for a new slot at index Len().
func (t *Buffer) Append(kind format.SlotKind) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: invalid slot kind %d", errs.ErrInvariant, kind)
	}
	if need := bytesFor(t.n + 1); need > len(t.bits.Bytes()) {
		t.bits.ExtendBy(max(need-len(t.bits.Bytes()), len(t.bits.Bytes()), minGrowByte))
	}
	if err := t.bits.WriteBits(tagPos(t.n), uint64(kind), tagBits, false); err != nil {
		return err
	}
	t.n++

	return nil
}

// Set overwrites the tag of slot i.
func (t *Buffer) Set(i int, kind format.SlotKind) error {
	if i < 0 || i >= t.n {
		return fmt.Errorf("%w: tag %d, len %d", errs.ErrOutOfBounds, i, t.n)
	}
	if !kind.Valid() {
		return fmt.Errorf("%w: invalid slot kind %d", errs.ErrInvariant, kind)
	}

	return t.bits.WriteBits(tagPos(i), uint64(kind), tagBits, false)
}

// Get returns the tag of slot i.
func (t *Buffer) Get(i int) (format.SlotKind, error) {
	if i < 0 || i >= t.n {
		return format.SlotEmpty, fmt.Errorf("%w: tag %d, len %d", errs.ErrOutOfBounds, i, t.n)
	}
	pos := tagPos(i)
	f, err := t.bits.ReadBits(pos, pos+tagBits, false, bitbuf.Uint8)
	if err != nil {
		return format.SlotEmpty, err
	}
	kind := format.SlotKind(f.Uint64())
	if !kind.Valid() {
		return format.SlotEmpty, fmt.Errorf("%w: slot %d has tag %d", errs.ErrInvariant, i, kind)
	}

	return kind, nil
}

// Reset drops every tag, keeping the allocated bytes.
func (t *Buffer) Reset() {
	t.bits.Reset()
	t.n = 0
}

// Bytes returns the packed tags, four per byte, first slot in the high bits.
func (t *Buffer) Bytes() []byte {
	return t.bits.Bytes()[:(t.n*tagBits+7)/8]
}

func tagPos(i int) uint64 {
	return uint64(i) * tagBits //nolint:gosec // i is a non-negative slot index
}

func bytesFor(tags int) int {
	if tags <= 0 {
		return 1
	}

	return (tags*tagBits + 7) / 8
}
